package scoring

import (
	"reflect"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"dataquality_backend/internal/quality/matcher"
	"dataquality_backend/internal/refdata"
)

var fixedNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestScorer() *Scorer {
	idx := refdata.NewIndex([]refdata.Entry{
		{Postcode: "3584CS", Municipality: "Utrecht"},
		{Postcode: "3584CH", Municipality: "Utrecht"},
		{Postcode: "3584ZZ", Municipality: "De Bilt"},
		{Postcode: "1012AB", Municipality: "Amsterdam"},
		{Postcode: "3431AA", Municipality: "Nieuwegein"},
	})
	return New(matcher.New(idx), WithClock(func() time.Time { return fixedNow }))
}

func validRecord() Record {
	return Record{
		FieldFirstName: "Femke",
		FieldLastName:  "Bol",
		FieldEmail:     "femke.bol@example.nl",
		FieldPhone:     "+31612345678",
		FieldStreet:    "Heidelberglaan 8",
		FieldPostcode:  "3584CS",
		FieldCity:      "Utrecht",
	}
}

func TestScoreValidRecordWithoutDate(t *testing.T) {
	report := newTestScorer().Score(validRecord())

	want := Subscores{Completeness: 100, Correctness: 100, Currency: 0}
	if report.Subscores != want {
		t.Fatalf("expected %+v, got %+v", want, report.Subscores)
	}
	if report.Score != 80 {
		t.Fatalf("expected score 80, got %.1f", report.Score)
	}
	wantIssues := map[string][]string{CategoryGeneral: {msgUpToDate}}
	if !reflect.DeepEqual(report.Issues, wantIssues) {
		t.Fatalf("expected %v, got %v", wantIssues, report.Issues)
	}
}

func TestScorePerfectRecord(t *testing.T) {
	rec := validRecord()
	rec[FieldLastConfirmed] = "2024-06-15"

	report := newTestScorer().Score(rec)
	if report.Score != 100 || !report.Perfect() {
		t.Fatalf("expected a perfect score, got %.1f", report.Score)
	}
	want := map[string][]string{CategoryCurrency: {msgConfirmedPrefix + "today"}}
	if !reflect.DeepEqual(report.Issues, want) {
		t.Fatalf("expected %v, got %v", want, report.Issues)
	}
}

func TestCompletenessCountsMissingFields(t *testing.T) {
	cases := []struct {
		blank []string
		want  float64
	}{
		{nil, 100},
		{[]string{FieldStreet}, 80},
		{[]string{FieldStreet, FieldEmail}, 60},
		{[]string{FieldStreet, FieldEmail, FieldPhone}, 40},
		{[]string{FieldStreet, FieldEmail, FieldPhone, FieldCity}, 20},
		{RequiredFields, 0},
	}

	s := newTestScorer()
	for _, tc := range cases {
		rec := validRecord()
		for _, field := range tc.blank {
			delete(rec, field)
		}
		report := s.Score(rec)
		if report.Subscores.Completeness != tc.want {
			t.Errorf("blank %v: expected completeness %.1f, got %.1f", tc.blank, tc.want, report.Subscores.Completeness)
		}
		if len(tc.blank) > 0 && len(report.Issues[CategoryCompleteness]) != len(tc.blank) {
			t.Errorf("blank %v: expected %d missing fields, got %v", tc.blank, len(tc.blank), report.Issues[CategoryCompleteness])
		}
	}
}

func TestCompletenessReportsFieldsInFixedOrder(t *testing.T) {
	report := newTestScorer().Score(Record{FieldStreet: "Heidelberglaan 8"})

	want := []string{FieldEmail, FieldPhone, FieldPostcode, FieldCity}
	if !reflect.DeepEqual(report.Issues[CategoryCompleteness], want) {
		t.Fatalf("expected %v, got %v", want, report.Issues[CategoryCompleteness])
	}
}

func TestEndToEndExampleRecord(t *testing.T) {
	rec := Record{
		FieldFirstName:     "Femke",
		FieldLastName:      "Bol",
		FieldEmail:         "femke2.bol",
		FieldPhone:         "+32512345678",
		FieldStreet:        "",
		FieldPostcode:      "3584CS",
		FieldCity:          "Utrcht",
		FieldLastConfirmed: "2024-06-15",
	}

	report := newTestScorer().Score(rec)

	if !reflect.DeepEqual(report.Issues[CategoryCompleteness], []string{FieldStreet}) {
		t.Fatalf("expected street to be missing, got %v", report.Issues[CategoryCompleteness])
	}

	correctness := report.Issues[CategoryCorrectness]
	want := []string{
		"Postcode and city do not match either because it is an incorrect city or there is a typo. Do you mean: 'Utrecht'.",
		msgEmailInvalid,
		msgPhoneInvalid,
	}
	if !reflect.DeepEqual(correctness, want) {
		t.Fatalf("expected %q, got %q", want, correctness)
	}

	if !reflect.DeepEqual(report.Issues[CategoryCurrency], []string{msgConfirmedPrefix + "today"}) {
		t.Fatalf("unexpected currency issues %v", report.Issues[CategoryCurrency])
	}

	wantSub := Subscores{Completeness: 80, Correctness: 0, Currency: 100}
	if report.Subscores != wantSub {
		t.Fatalf("expected %+v, got %+v", wantSub, report.Subscores)
	}
	if report.Score != 52 {
		t.Fatalf("expected overall 52.0, got %.1f", report.Score)
	}
	if report.Score <= 0 || report.Score >= 100 {
		t.Fatalf("expected overall strictly between 0 and 100")
	}
}

func TestCorrectnessIsIndependentPerCheck(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(Record)
		want   float64
	}{
		{"all valid", func(Record) {}, 100},
		{"bad email", func(r Record) { r[FieldEmail] = "a@b" }, 66.7},
		{"bad phone", func(r Record) { r[FieldPhone] = "123" }, 66.7},
		{"bad city", func(r Record) { r[FieldCity] = "Amsterdam" }, 66.7},
		{"missing city", func(r Record) { delete(r, FieldCity) }, 66.7},
		{"bad email and phone", func(r Record) { r[FieldEmail] = ""; r[FieldPhone] = "" }, 33.3},
	}

	s := newTestScorer()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := validRecord()
			tc.mutate(rec)
			if got := s.Score(rec).Subscores.Correctness; got != tc.want {
				t.Fatalf("expected correctness %.1f, got %.1f", tc.want, got)
			}
		})
	}
}

func TestAddressMessages(t *testing.T) {
	cases := []struct {
		name     string
		postcode string
		city     string
		want     []string
	}{
		{
			name:     "postcode suggestion",
			postcode: "3584CX",
			city:     "Utrecht",
			want: []string{
				"Postcode '3584CX' not found.",
				"Did you mean postcode '3584CS' for 'Utrecht'?",
			},
		},
		{
			name:     "unknown",
			postcode: "9999ZZ",
			city:     "Atlantis",
			want:     []string{"Postcode '9999ZZ' and city 'Atlantis' could not be confirmed. Please check."},
		},
		{
			name:     "missing postcode",
			postcode: "",
			city:     "Utrecht",
			want:     []string{msgPostcodeMissing},
		},
		{
			name:     "missing both",
			postcode: "",
			city:     "",
			want:     []string{msgPostcodeMissing, msgCityMissing},
		},
		{
			name:     "missing city, single candidate",
			postcode: "1012AB",
			city:     "",
			want:     []string{msgCityMissing, "Based on postcode '1012AB', the city is likely 'Amsterdam'."},
		},
		{
			name:     "missing city, several candidates",
			postcode: "3584CS",
			city:     "",
			want:     []string{msgCityMissing, "Based on postcode '3584CS', possible cities include: De Bilt, or Utrecht."},
		},
		{
			name:     "missing city, no candidates",
			postcode: "9999ZZ",
			city:     "",
			want:     []string{msgCityMissing},
		},
	}

	s := newTestScorer()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := validRecord()
			rec[FieldPostcode] = tc.postcode
			rec[FieldCity] = tc.city
			got := s.Score(rec).Issues[CategoryCorrectness]
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestEmailAndPhoneMessages(t *testing.T) {
	s := newTestScorer()

	rec := validRecord()
	rec[FieldEmail] = ""
	rec[FieldPhone] = "0612"
	got := s.Score(rec).Issues[CategoryCorrectness]
	want := []string{msgEmailMissing, msgPhoneInvalid}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}

	rec[FieldEmail] = "femke@"
	rec[FieldPhone] = ""
	got = s.Score(rec).Issues[CategoryCorrectness]
	want = []string{msgEmailInvalid, msgPhoneMissing}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRelativeAge(t *testing.T) {
	cases := []struct {
		days int
		want string
	}{
		{0, "today"},
		{1, "1 day ago"},
		{2, "2 days ago"},
		{6, "6 days ago"},
		{7, "1 weeks ago"},
		{13, "1 weeks ago"},
		{14, "2 weeks ago"},
		{29, "4 weeks ago"},
		{30, "1 months ago"},
		{59, "1 months ago"},
		{60, "2 months ago"},
		{364, "12 months ago"},
		{365, "over a year ago"},
		{800, "over a year ago"},
	}

	for _, tc := range cases {
		if got := relativeAge(tc.days); got != tc.want {
			t.Errorf("relativeAge(%d) = %q, want %q", tc.days, got, tc.want)
		}
	}
}

func TestCurrencyDecay(t *testing.T) {
	cases := []struct {
		date string
		want float64
	}{
		{"2024-06-15", 100},
		{"2024-06-14", 99.7},
		{"2024-03-17", 75.3},
		{"2023-06-17", 0.3},
		{"2023-06-15", 0},
		{"2020-01-01", 0},
		{"2030-01-01", 100},
		{"2024-06-15T08:00:00Z", 100},
		{"2024-06-14 09:00:00", 99.7},
		{"14-06-2024", 99.7},
	}

	s := newTestScorer()
	for _, tc := range cases {
		rec := validRecord()
		rec[FieldLastConfirmed] = tc.date
		if got := s.Score(rec).Subscores.Currency; got != tc.want {
			t.Errorf("date %s: expected currency %.1f, got %.1f", tc.date, tc.want, got)
		}
	}
}

func TestUnparsableDateDegradesGracefully(t *testing.T) {
	rec := validRecord()
	rec[FieldLastConfirmed] = "last tuesday"

	report := newTestScorer().Score(rec)
	if report.Subscores.Currency != 0 {
		t.Fatalf("expected currency 0, got %.1f", report.Subscores.Currency)
	}
	if _, ok := report.Issues[CategoryCurrency]; ok {
		t.Fatalf("expected no currency message for an unparsable date")
	}
}

func TestLegacyConfirmedKey(t *testing.T) {
	rec := validRecord()
	rec[legacyLastConfirmed] = "2024-06-01"

	report := newTestScorer().Score(rec)
	msgs := report.Issues[CategoryCurrency]
	if len(msgs) != 1 || !strings.HasSuffix(msgs[0], "2 weeks ago") {
		t.Fatalf("expected legacy key to be honoured, got %v", msgs)
	}
}

func TestCurrencyNeverIncreasesOverTime(t *testing.T) {
	s := newTestScorer()
	rec := validRecord()
	rec[FieldLastConfirmed] = "2024-05-01"

	earlier := s.ScoreAt(rec, fixedNow)
	later := s.ScoreAt(rec, fixedNow.Add(10*time.Hour))
	muchLater := s.ScoreAt(rec, fixedNow.Add(40*24*time.Hour))

	if earlier.Subscores.Completeness != later.Subscores.Completeness ||
		earlier.Subscores.Correctness != later.Subscores.Correctness {
		t.Fatalf("expected non-currency subscores to be stable")
	}
	if later.Subscores.Currency > earlier.Subscores.Currency {
		t.Fatalf("currency increased from %.1f to %.1f", earlier.Subscores.Currency, later.Subscores.Currency)
	}
	if muchLater.Subscores.Currency >= earlier.Subscores.Currency {
		t.Fatalf("expected currency to decay, got %.1f then %.1f", earlier.Subscores.Currency, muchLater.Subscores.Currency)
	}
}

func TestScoreDoesNotMutateRecord(t *testing.T) {
	rec := validRecord()
	before := rec.Clone()

	newTestScorer().Score(rec)
	if !reflect.DeepEqual(rec, before) {
		t.Fatalf("record was mutated")
	}
}

func TestJoinOr(t *testing.T) {
	cases := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"A"}, "A"},
		{[]string{"A", "B"}, "A, or B"},
		{[]string{"A", "B", "C"}, "A, B, or C"},
	}
	for _, tc := range cases {
		if got := joinOr(tc.in); got != tc.want {
			t.Errorf("joinOr(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestOptions(t *testing.T) {
	s := New(nil, WithPhoneRegion("be"))
	if s.Region() != "BE" {
		t.Fatalf("expected region BE, got %q", s.Region())
	}
	if New(nil, WithPhoneRegion("")).Region() != "NL" {
		t.Fatalf("expected empty region to keep the NL default")
	}
}

func TestAgeDaysAcrossDaylightSaving(t *testing.T) {
	amsterdam, err := time.LoadLocation("Europe/Amsterdam")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	cases := []struct {
		confirmed string
		now       time.Time
		want      int
	}{
		{"2024-03-31", time.Date(2024, 4, 1, 0, 30, 0, 0, amsterdam), 1},
		{"2024-03-01", time.Date(2024, 4, 7, 0, 30, 0, 0, amsterdam), 37},
		{"2024-10-26", time.Date(2024, 10, 27, 23, 30, 0, 0, amsterdam), 1},
		{"2024-03-31 12:00:00", time.Date(2024, 4, 1, 11, 0, 0, 0, amsterdam), 0},
	}

	for _, tc := range cases {
		confirmed, ok := parseDate(tc.confirmed, amsterdam)
		if !ok {
			t.Fatalf("parse %s", tc.confirmed)
		}
		if got := ageDays(confirmed, tc.now); got != tc.want {
			t.Errorf("confirmed %s, now %s: expected %d days, got %d", tc.confirmed, tc.now, tc.want, got)
		}
	}
}

func TestYesterdayAcrossDaylightSavingIsNotToday(t *testing.T) {
	amsterdam, err := time.LoadLocation("Europe/Amsterdam")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	rec := validRecord()
	rec[FieldLastConfirmed] = "2024-03-31"

	report := newTestScorer().ScoreAt(rec, time.Date(2024, 4, 1, 0, 30, 0, 0, amsterdam))
	want := []string{msgConfirmedPrefix + "1 day ago"}
	if !reflect.DeepEqual(report.Issues[CategoryCurrency], want) {
		t.Fatalf("expected %q, got %q", want, report.Issues[CategoryCurrency])
	}
	if report.Subscores.Currency != 99.7 {
		t.Fatalf("expected currency 99.7, got %.1f", report.Subscores.Currency)
	}
}
