// Package matcher classifies a postcode/municipality pair against the
// reference index and proposes corrections for typos in either field.
package matcher

import (
	"math"
	"sort"
	"strings"

	"dataquality_backend/platform/fuzzy"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	suggestionLimit  = 3
	suggestionCutoff = 80.0
)

// Reference is the read-only view of the reference index the matcher needs.
type Reference interface {
	LookupExact(postcode string) (string, bool)
	CandidateMunicipalities(postcode string) []string
	AllMunicipalities() []string
	Postcodes() []string
	DisplayName(name string) string
}

// Matcher classifies postcode/municipality pairs. It is safe for concurrent use.
type Matcher struct {
	ref            Reference
	postcodes      []string
	municipalities []string
	titled         []string
}

// New creates a Matcher over ref. Candidate lists are captured once, so ref
// must not change afterwards.
func New(ref Reference) *Matcher {
	municipalities := ref.AllMunicipalities()
	caser := dutchTitle()
	titled := make([]string, len(municipalities))
	for i, name := range municipalities {
		titled[i] = caser.String(name)
	}

	return &Matcher{
		ref:            ref,
		postcodes:      ref.Postcodes(),
		municipalities: municipalities,
		titled:         titled,
	}
}

// Classify checks whether postcode exists and belongs to municipality.
//
//   - known postcode, same municipality: StatusAllGood
//   - known postcode, other municipality: StatusMunicipalityMismatch with municipality suggestions
//   - unknown postcode close to known ones: StatusPostcodeSuggest with postcode suggestions
//   - otherwise: StatusUnknown with municipality suggestions
func (m *Matcher) Classify(postcode, municipality string) Result {
	result := Result{
		Postcode:     postcode,
		Municipality: municipality,
		Suggestions:  []Suggestion{},
	}

	if correct, ok := m.ref.LookupExact(postcode); ok {
		result.Expected = correct
		if municipality == correct {
			result.Status = StatusAllGood
			return result
		}
		result.Status = StatusMunicipalityMismatch
		result.Suggestions = m.suggestMunicipalities(municipality)
		return result
	}

	if suggestions := m.suggestPostcodes(postcode); len(suggestions) > 0 {
		result.Status = StatusPostcodeSuggest
		result.Suggestions = suggestions
		return result
	}

	result.Status = StatusUnknown
	result.Suggestions = m.suggestMunicipalities(municipality)
	return result
}

// Likely returns the dataset spellings of the municipalities seen under the
// PC4 prefix of postcode, sorted.
func (m *Matcher) Likely(postcode string) []string {
	candidates := m.ref.CandidateMunicipalities(postcode)
	names := make([]string, 0, len(candidates))
	for _, lower := range candidates {
		names = append(names, m.ref.DisplayName(lower))
	}
	sort.Strings(names)
	return names
}

func (m *Matcher) suggestPostcodes(postcode string) []Suggestion {
	matches := fuzzy.Extract(strings.ToUpper(postcode), m.postcodes, fuzzy.WRatio, suggestionLimit, suggestionCutoff)

	suggestions := make([]Suggestion, 0, len(matches))
	for _, match := range matches {
		municipality, _ := m.ref.LookupExact(match.Value)
		suggestions = append(suggestions, Suggestion{
			Kind:         SuggestionPostcode,
			Value:        match.Value,
			Municipality: municipality,
			Score:        round1(match.Score),
		})
	}
	return suggestions
}

func (m *Matcher) suggestMunicipalities(municipality string) []Suggestion {
	query := dutchTitle().String(municipality)
	matches := fuzzy.Extract(query, m.titled, fuzzy.TokenSortRatio, suggestionLimit, suggestionCutoff)

	suggestions := make([]Suggestion, 0, len(matches))
	for _, match := range matches {
		suggestions = append(suggestions, Suggestion{
			Kind:  SuggestionMunicipality,
			Value: m.ref.DisplayName(m.municipalities[match.Index]),
			Score: round1(match.Score),
		})
	}
	return suggestions
}

// dutchTitle returns a fresh caser; casers keep state and cannot be shared.
func dutchTitle() cases.Caser {
	return cases.Title(language.Dutch)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
