// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used for numbers written without a country code.
const DefaultRegion = "NL"

// NormalizeE164 formats a phone number to E.164 using DefaultRegion.
// If parsing fails, it returns the trimmed input.
func NormalizeE164(input string) string {
	return NormalizeE164In(input, DefaultRegion)
}

// NormalizeE164In formats a phone number to E.164, resolving numbers without
// a country code against region. If parsing fails, it returns the trimmed input.
func NormalizeE164In(input, region string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, ok := parseValid(trimmed, region)
	if !ok {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

// IsValid reports whether input parses as a valid phone number. Numbers with
// a leading "+" carry their own country code; all others are read as
// numbers of region.
func IsValid(input, region string) bool {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return false
	}
	_, ok := parseValid(trimmed, region)
	return ok
}

func parseValid(input, region string) (number *phonenumbers.PhoneNumber, ok bool) {
	defer func() {
		// the metadata-driven parser can panic on pathological input
		if r := recover(); r != nil {
			number, ok = nil, false
		}
	}()

	parsed, err := phonenumbers.Parse(input, strings.ToUpper(region))
	if err != nil {
		return nil, false
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return nil, false
	}
	return parsed, true
}
