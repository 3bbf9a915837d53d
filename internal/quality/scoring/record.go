package scoring

import "sort"

// Field names recognised in a Record.
const (
	FieldFirstName     = "first_name"
	FieldLastName      = "last_name"
	FieldEmail         = "email"
	FieldPhone         = "phone_number"
	FieldStreet        = "street"
	FieldPostcode      = "postcode"
	FieldCity          = "city"
	FieldLastConfirmed = "last_confirmed_date"

	// legacyLastConfirmed is the key older form submissions used.
	legacyLastConfirmed = "account_updated_confrimed_date"
)

// Issue categories of a Report.
const (
	CategoryCompleteness = "completeness"
	CategoryCorrectness  = "correctness"
	CategoryCurrency     = "currency"
	CategoryGeneral      = "general"
)

// RequiredFields are the fields counted for completeness, in reporting order.
var RequiredFields = []string{FieldEmail, FieldPhone, FieldStreet, FieldPostcode, FieldCity}

// Record is a customer record: field name to value. Absent and empty values
// are both treated as missing.
type Record map[string]string

// LastConfirmed returns the last-confirmed date, falling back to the legacy key.
func (r Record) LastConfirmed() string {
	if v := r[FieldLastConfirmed]; v != "" {
		return v
	}
	return r[legacyLastConfirmed]
}

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Subscores are the three components of the overall score, 0-100.
type Subscores struct {
	Completeness float64 `json:"completeness"`
	Correctness  float64 `json:"correctness"`
	Currency     float64 `json:"currency"`
}

// Report is the outcome of scoring a Record.
type Report struct {
	Score     float64             `json:"score"`
	Subscores Subscores           `json:"subscores"`
	Issues    map[string][]string `json:"issues"`
}

// Perfect reports whether the record is complete, correct and confirmed today.
func (r Report) Perfect() bool {
	return r.Score == 100
}

// Categories returns the issue categories present, sorted.
func (r Report) Categories() []string {
	out := make([]string, 0, len(r.Issues))
	for category := range r.Issues {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}
