// Package refdata holds the postcode/municipality reference index. An Index
// is built once from the static dataset and never mutated afterwards, so it
// can be shared by any number of concurrent readers without locking.
package refdata

import (
	"sort"
	"strings"
)

// PrefixLength is the number of postcode characters that identify a PC4 area.
const PrefixLength = 4

// Entry is a single (postcode, municipality) row of the dataset.
type Entry struct {
	Postcode     string
	Municipality string
}

// Index answers exact and prefix lookups over the reference dataset.
type Index struct {
	byPostcode     map[string]string
	postcodes      []string
	byPrefix       map[string][]string
	municipalities []string
	display        map[string]string
}

// NewIndex builds an Index from entries. The first entry seen for a postcode
// wins; later duplicates only contribute to the prefix index.
func NewIndex(entries []Entry) *Index {
	idx := &Index{
		byPostcode: make(map[string]string, len(entries)),
		postcodes:  make([]string, 0, len(entries)),
		display:    make(map[string]string),
	}

	prefixSets := make(map[string]map[string]struct{})
	for _, e := range entries {
		postcode := NormalizePostcode(e.Postcode)
		name := strings.TrimSpace(e.Municipality)
		if postcode == "" || name == "" {
			continue
		}

		if _, seen := idx.byPostcode[postcode]; !seen {
			idx.byPostcode[postcode] = name
			idx.postcodes = append(idx.postcodes, postcode)
		}

		lower := strings.ToLower(name)
		if _, seen := idx.display[lower]; !seen {
			idx.display[lower] = name
		}

		prefix := Prefix(postcode)
		set, ok := prefixSets[prefix]
		if !ok {
			set = make(map[string]struct{})
			prefixSets[prefix] = set
		}
		set[lower] = struct{}{}
	}

	idx.byPrefix = make(map[string][]string, len(prefixSets))
	for prefix, set := range prefixSets {
		idx.byPrefix[prefix] = sortedKeys(set)
	}

	all := make(map[string]struct{}, len(idx.display))
	for lower := range idx.display {
		all[lower] = struct{}{}
	}
	idx.municipalities = sortedKeys(all)

	return idx
}

// LookupExact returns the municipality of postcode, matched exactly.
func (i *Index) LookupExact(postcode string) (string, bool) {
	name, ok := i.byPostcode[postcode]
	return name, ok
}

// Contains reports whether postcode is in the dataset, matched exactly.
func (i *Index) Contains(postcode string) bool {
	_, ok := i.byPostcode[postcode]
	return ok
}

// CandidateMunicipalities returns the sorted lowercase municipality names
// seen under the PC4 prefix of postcode.
func (i *Index) CandidateMunicipalities(postcode string) []string {
	names := i.byPrefix[Prefix(NormalizePostcode(postcode))]
	return append([]string(nil), names...)
}

// AllMunicipalities returns every municipality name, lowercased, sorted and
// deduplicated.
func (i *Index) AllMunicipalities() []string {
	return append([]string(nil), i.municipalities...)
}

// Postcodes returns every known postcode in dataset order.
func (i *Index) Postcodes() []string {
	return append([]string(nil), i.postcodes...)
}

// DisplayName returns the dataset spelling of a lowercase municipality name,
// or name itself when it is unknown.
func (i *Index) DisplayName(name string) string {
	if display, ok := i.display[strings.ToLower(name)]; ok {
		return display
	}
	return name
}

// Len returns the number of distinct postcodes.
func (i *Index) Len() int {
	return len(i.postcodes)
}

// MunicipalityCount returns the number of distinct municipalities.
func (i *Index) MunicipalityCount() int {
	return len(i.municipalities)
}

// NormalizePostcode upper-cases a postcode and removes whitespace.
func NormalizePostcode(postcode string) string {
	return strings.ToUpper(strings.Join(strings.Fields(postcode), ""))
}

// Prefix returns the first PrefixLength characters of postcode.
func Prefix(postcode string) string {
	runes := []rune(postcode)
	if len(runes) <= PrefixLength {
		return postcode
	}
	return string(runes[:PrefixLength])
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
