// Package validate holds the pure field validators used by the scorer.
// Invalid input is a finding, not an error: every function here is total.
package validate

import (
	"regexp"

	"dataquality_backend/platform/phone"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9.-]+$`)

// IsValidEmail reports whether s looks like local@domain.tld.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsValidPhone reports whether s is a valid phone number. Numbers without a
// country code are read as numbers of region.
func IsValidPhone(s, region string) bool {
	return phone.IsValid(s, region)
}
