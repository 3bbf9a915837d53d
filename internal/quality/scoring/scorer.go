// Package scoring computes the data quality report of a customer record.
//
// The overall score weighs three subscores:
//   - completeness (40%): share of required fields that are filled in
//   - correctness (40%): share of the address, email and phone checks that pass
//   - currency (20%): linear decay over a year since the record was last confirmed
package scoring

import (
	"fmt"
	"math"
	"strings"
	"time"

	"dataquality_backend/internal/quality/matcher"
	"dataquality_backend/platform/phone"
)

const (
	weightCompleteness = 0.4
	weightCorrectness  = 0.4
	weightCurrency     = 0.2

	currencyHorizonDays = 365

	msgUpToDate = "Your data appears up to date!"
)

// Classifier is the postcode/municipality matcher used by the address check.
type Classifier interface {
	Classify(postcode, municipality string) matcher.Result
	Likely(postcode string) []string
}

// Scorer produces Reports. It holds no mutable state and is safe for
// concurrent use.
type Scorer struct {
	matcher Classifier
	region  string
	now     func() time.Time
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithClock overrides the time source used for currency.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		s.now = now
	}
}

// WithPhoneRegion sets the region used for phone numbers without a country code.
func WithPhoneRegion(region string) Option {
	return func(s *Scorer) {
		if region != "" {
			s.region = strings.ToUpper(region)
		}
	}
}

// New creates a Scorer backed by m.
func New(m Classifier, opts ...Option) *Scorer {
	s := &Scorer{
		matcher: m,
		region:  phone.DefaultRegion,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the current time of the scorer's clock.
func (s *Scorer) Now() time.Time {
	return s.now()
}

// Region returns the default phone region.
func (s *Scorer) Region() string {
	return s.region
}

// Score scores r at the current time.
func (s *Scorer) Score(r Record) Report {
	return s.ScoreAt(r, s.now())
}

// ScoreAt scores r as if it were now.
func (s *Scorer) ScoreAt(r Record, now time.Time) Report {
	missing := missingFields(r)
	completeness := 1 - float64(len(missing))/float64(len(RequiredFields))

	checks := []check{
		s.checkAddress(r),
		checkEmail(r),
		s.checkPhone(r),
	}
	passed := 0
	var correctnessIssues []string
	for _, c := range checks {
		if c.passed {
			passed++
		}
		correctnessIssues = append(correctnessIssues, c.issues...)
	}
	correctness := float64(passed) / float64(len(checks))

	currency, currencyMsg, confirmed := currencyScore(r.LastConfirmed(), now)

	overall := weightCompleteness*completeness + weightCorrectness*correctness + weightCurrency*currency

	issues := make(map[string][]string)
	if len(missing) > 0 {
		issues[CategoryCompleteness] = missing
	}
	if len(correctnessIssues) > 0 {
		issues[CategoryCorrectness] = correctnessIssues
	}
	if confirmed {
		issues[CategoryCurrency] = []string{currencyMsg}
	}
	if len(issues) == 0 {
		issues[CategoryGeneral] = []string{msgUpToDate}
	}

	return Report{
		Score: percent(overall),
		Subscores: Subscores{
			Completeness: percent(completeness),
			Correctness:  percent(correctness),
			Currency:     percent(currency),
		},
		Issues: issues,
	}
}

func missingFields(r Record) []string {
	var missing []string
	for _, field := range RequiredFields {
		if r[field] == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// percent converts a 0-1 fraction to 0-100 with one decimal.
func percent(fraction float64) float64 {
	return math.Round(fraction*1000) / 10
}

// relativeAge renders an age in days the way the form shows it. Week and
// month counts are always plural ("1 weeks ago").
func relativeAge(days int) string {
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "1 day ago"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return fmt.Sprintf("%d weeks ago", days/7)
	case days < currencyHorizonDays:
		return fmt.Sprintf("%d months ago", days/30)
	default:
		return "over a year ago"
	}
}
