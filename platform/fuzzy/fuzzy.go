// Package fuzzy provides approximate string similarity scorers and a ranked
// extraction helper. Scores are percentages in [0,100].
// This is part of the platform layer and contains no business logic.
package fuzzy

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

const (
	// unbaseScale down-weights token based scores relative to a plain ratio.
	unbaseScale = 0.95
	// lenRatioPartial is the length ratio from which WRatio considers substrings.
	lenRatioPartial = 1.5
	// lenRatioLong is the length ratio from which partial scores are heavily damped.
	lenRatioLong = 8.0
)

// Scorer compares two strings and returns a similarity in [0,100].
type Scorer func(a, b string) float64

// Match is a scored candidate returned by Extract.
type Match struct {
	Value string
	Score float64
	// Index is the position of Value in the choices passed to Extract.
	Index int
}

// Ratio is the normalized Levenshtein similarity of a and b.
func Ratio(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longest := max(la, lb)
	if longest == 0 {
		return 100
	}
	d := levenshtein.ComputeDistance(a, b)
	return 100 * (1 - float64(d)/float64(longest))
}

// PartialRatio returns the best Ratio of the shorter string against every
// equally long window of the longer one.
func PartialRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == 0 {
		if len(rb) == 0 {
			return 100
		}
		return 0
	}
	if len(ra) == len(rb) {
		return Ratio(a, b)
	}

	short := string(ra)
	best := 0.0
	for i := 0; i+len(ra) <= len(rb); i++ {
		score := Ratio(short, string(rb[i:i+len(ra)]))
		if score > best {
			best = score
			if best == 100 {
				break
			}
		}
	}
	return best
}

// TokenSortRatio compares a and b after sorting their whitespace separated
// tokens, so word order does not matter.
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortedTokens(a), sortedTokens(b))
}

// TokenSetRatio compares the shared tokens of a and b against each side's
// remaining tokens. A string whose tokens are a subset of the other's scores 100.
func TokenSetRatio(a, b string) float64 {
	setA, setB := tokenSet(a), tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	var inter, onlyA, onlyB []string
	for tok := range setA {
		if setB[tok] {
			inter = append(inter, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range setB {
		if !setA[tok] {
			onlyB = append(onlyB, tok)
		}
	}
	if len(inter) > 0 && (len(onlyA) == 0 || len(onlyB) == 0) {
		return 100
	}

	sort.Strings(inter)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	sect := strings.Join(inter, " ")
	combinedA := strings.TrimSpace(sect + " " + strings.Join(onlyA, " "))
	combinedB := strings.TrimSpace(sect + " " + strings.Join(onlyB, " "))

	best := Ratio(combinedA, combinedB)
	if sect != "" {
		best = max(best, Ratio(sect, combinedA), Ratio(sect, combinedB))
	}
	return best
}

// WRatio combines the scorers above, weighting them by how different the
// string lengths are. Empty input scores 0.
func WRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	lenRatio := float64(max(la, lb)) / float64(min(la, lb))
	multiToken := strings.ContainsFunc(a, isSpace) || strings.ContainsFunc(b, isSpace)

	best := Ratio(a, b)
	if lenRatio < lenRatioPartial {
		if !multiToken {
			return best
		}
		return max(best,
			TokenSortRatio(a, b)*unbaseScale,
			TokenSetRatio(a, b)*unbaseScale,
		)
	}

	partialScale := 0.9
	if lenRatio >= lenRatioLong {
		partialScale = 0.6
	}

	best = max(best, PartialRatio(a, b)*partialScale)
	if multiToken {
		best = max(best, PartialRatio(sortedTokens(a), sortedTokens(b))*unbaseScale*partialScale)
	}
	return best
}

// Extract scores every choice against query and returns those scoring at
// least cutoff, best first. Equal scores keep the order of choices. A
// non-positive limit returns every match.
func Extract(query string, choices []string, scorer Scorer, limit int, cutoff float64) []Match {
	matches := make([]Match, 0)
	for i, choice := range choices {
		score := scorer(query, choice)
		if score >= cutoff {
			matches = append(matches, Match{Value: choice, Score: score, Index: i})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func sortedTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		set[tok] = true
	}
	return set
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
