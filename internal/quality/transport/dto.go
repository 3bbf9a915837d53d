package transport

import (
	"strings"
	"unicode"

	"dataquality_backend/internal/quality/scoring"
	"dataquality_backend/platform/phone"
	"dataquality_backend/platform/sanitize"

	"github.com/go-playground/validator/v10"
)

// PostcodeQueryRule is the validation tag for postcodes taken from the path.
const PostcodeQueryRule = "postcode_query"

const maxPostcodeQueryLen = 10

// Scoring

type ScoreRequest struct {
	Record map[string]any `json:"record" validate:"required"`
}

type BatchScoreRequest struct {
	Records []map[string]any `json:"records" validate:"required,min=1,dive,required"`
}

type ScoreResponse struct {
	Score           float64             `json:"score"`
	Subscores       scoring.Subscores   `json:"subscores"`
	Issues          map[string][]string `json:"issues"`
	Perfect         bool                `json:"perfect"`
	NormalizedPhone string              `json:"normalizedPhone,omitempty"`
}

type SubmitResponse struct {
	Record scoring.Record `json:"record"`
	Report ScoreResponse  `json:"report"`
}

type BatchScoreResponse struct {
	Results []ScoreResponse `json:"results"`
}

// Postcodes

type PostcodeURI struct {
	Postcode string `uri:"postcode" validate:"required,postcode_query"`
}

type ClassifyQuery struct {
	City string `form:"city" validate:"max=100"`
}

type MunicipalitiesResponse struct {
	Postcode       string   `json:"postcode"`
	Municipalities []string `json:"municipalities"`
}

// ToRecord converts a decoded JSON object into a Record. Only string values
// are kept; they are stripped of markup since messages echo them back.
func ToRecord(raw map[string]any) scoring.Record {
	values := make(map[string]string, len(raw))
	for key, value := range raw {
		if text, ok := value.(string); ok {
			values[key] = text
		}
	}
	return scoring.Record(sanitize.Values(values))
}

// NewScoreResponse flattens a report for the API. The phone number is echoed
// in E.164 form when it is valid.
func NewScoreResponse(record scoring.Record, report scoring.Report, region string) ScoreResponse {
	resp := ScoreResponse{
		Score:     report.Score,
		Subscores: report.Subscores,
		Issues:    report.Issues,
		Perfect:   report.Perfect(),
	}
	if number := record[scoring.FieldPhone]; phone.IsValid(number, region) {
		resp.NormalizedPhone = phone.NormalizeE164In(number, region)
	}
	return resp
}

// ValidatePostcodeQuery accepts letters, digits and inner spaces, up to ten
// characters.
func ValidatePostcodeQuery(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" || len(value) > maxPostcodeQueryLen {
		return false
	}
	for _, r := range value {
		if r > unicode.MaxASCII {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ' {
			return false
		}
	}
	return true
}
