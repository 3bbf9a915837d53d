package scoring

import (
	"fmt"
	"math"
	"strings"
	"time"

	"dataquality_backend/internal/quality/matcher"
	"dataquality_backend/internal/quality/validate"
)

const (
	msgPostcodeMissing  = "Postcode is missing."
	msgCityMissing      = "City is missing."
	msgEmailMissing     = "Please enter your email address."
	msgEmailInvalid     = "Please check that your email is correct. An incorrect email address means you can't receive important updates and alerts concerning your account"
	msgPhoneMissing     = "Phone number is missing."
	msgPhoneInvalid     = "Please check that this is your phone number, also include the country code e.g. +31"
	msgConfirmedPrefix  = "Your personal information was last updated or confirmed "
	msgMismatchTemplate = "Postcode and city do not match either because it is an incorrect city or there is a typo. Do you mean: '%s'."
)

// dateLayouts are tried in order; layouts without a zone are read in the
// location of the scoring clock.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-01-2006",
}

// check is the outcome of one correctness check. passed is decided by the
// check itself, never inferred from the wording of its issues.
type check struct {
	passed bool
	issues []string
}

func (s *Scorer) checkAddress(r Record) check {
	postcode, city := r[FieldPostcode], r[FieldCity]

	if postcode != "" && city != "" {
		result := s.matcher.Classify(postcode, city)
		switch result.Status {
		case matcher.StatusAllGood:
			return check{passed: true}
		case matcher.StatusMunicipalityMismatch:
			return check{issues: []string{fmt.Sprintf(msgMismatchTemplate, result.Expected)}}
		case matcher.StatusPostcodeSuggest:
			issues := []string{fmt.Sprintf("Postcode '%s' not found.", postcode)}
			if len(result.Suggestions) > 0 {
				top := result.Suggestions[0]
				issues = append(issues, fmt.Sprintf("Did you mean postcode '%s' for '%s'?", top.Value, top.Municipality))
			}
			return check{issues: issues}
		}
		return check{issues: []string{fmt.Sprintf("Postcode '%s' and city '%s' could not be confirmed. Please check.", postcode, city)}}
	}

	var issues []string
	if postcode == "" {
		issues = append(issues, msgPostcodeMissing)
	}
	if city == "" {
		issues = append(issues, msgCityMissing)
		if postcode != "" {
			if hint := cityHint(postcode, s.matcher.Likely(postcode)); hint != "" {
				issues = append(issues, hint)
			}
		}
	}
	return check{issues: issues}
}

func cityHint(postcode string, cities []string) string {
	switch len(cities) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("Based on postcode '%s', the city is likely '%s'.", postcode, cities[0])
	default:
		return fmt.Sprintf("Based on postcode '%s', possible cities include: %s.", postcode, joinOr(cities))
	}
}

// joinOr renders "A, or B" and "A, B, or C".
func joinOr(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", or " + items[len(items)-1]
	}
}

func checkEmail(r Record) check {
	email := r[FieldEmail]
	if validate.IsValidEmail(email) {
		return check{passed: true}
	}
	if email == "" {
		return check{issues: []string{msgEmailMissing}}
	}
	return check{issues: []string{msgEmailInvalid}}
}

func (s *Scorer) checkPhone(r Record) check {
	number := r[FieldPhone]
	if validate.IsValidPhone(number, s.region) {
		return check{passed: true}
	}
	if number == "" {
		return check{issues: []string{msgPhoneMissing}}
	}
	return check{issues: []string{msgPhoneInvalid}}
}

// currencyScore returns the 0-1 currency of a last-confirmed date and the
// matching message. ok is false when raw is absent or unparsable.
func currencyScore(raw string, now time.Time) (score float64, msg string, ok bool) {
	confirmed, ok := parseDate(raw, now.Location())
	if !ok {
		return 0, "", false
	}

	days := ageDays(confirmed, now)
	score = math.Max(0, 1-float64(days)/currencyHorizonDays)
	return score, msgConfirmedPrefix + relativeAge(days), true
}

func parseDate(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ageDays is the number of whole days elapsed since t, never negative. Both
// times are compared on the wall clock of now's location so a DST switch in
// between does not shift the count.
func ageDays(t, now time.Time) int {
	elapsed := wallClock(now).Sub(wallClock(t.In(now.Location())))
	days := int(math.Floor(elapsed.Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
