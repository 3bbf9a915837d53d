package matcher

import "fmt"

// Status is the closed set of classification outcomes.
type Status int

const (
	// StatusAllGood means the postcode exists and belongs to the given municipality.
	StatusAllGood Status = iota
	// StatusMunicipalityMismatch means the postcode exists under another municipality.
	StatusMunicipalityMismatch
	// StatusPostcodeSuggest means the postcode is unknown but close to known ones.
	StatusPostcodeSuggest
	// StatusUnknown means neither field could be confirmed.
	StatusUnknown
)

var statusNames = map[Status]string{
	StatusAllGood:              "ALL_GOOD",
	StatusMunicipalityMismatch: "MUNICIPALITY_MISMATCH",
	StatusPostcodeSuggest:      "POSTCODE_SUGGEST",
	StatusUnknown:              "UNKNOWN",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	name, ok := statusNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown match status %d", int(s))
	}
	return []byte(name), nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(text []byte) error {
	for status, name := range statusNames {
		if name == string(text) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown match status %q", string(text))
}

// SuggestionKind tags what a Suggestion proposes.
type SuggestionKind string

const (
	SuggestionPostcode     SuggestionKind = "postcode"
	SuggestionMunicipality SuggestionKind = "municipality"
)

// Suggestion is a ranked correction proposal.
type Suggestion struct {
	Kind  SuggestionKind `json:"type"`
	Value string         `json:"value"`
	// Municipality is set for postcode suggestions.
	Municipality string  `json:"municipality,omitempty"`
	Score        float64 `json:"score"`
}

// Result is the outcome of Classify.
type Result struct {
	Postcode     string `json:"postcode"`
	Municipality string `json:"municipality"`
	Status       Status `json:"status"`
	// Expected is the municipality the dataset records for a known postcode.
	Expected    string       `json:"expectedMunicipality,omitempty"`
	Suggestions []Suggestion `json:"suggestions"`
}
