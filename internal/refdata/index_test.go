package refdata

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func loadFixture(t *testing.T) *Index {
	t.Helper()
	idx, err := Load(filepath.Join("testdata", "pc6.csv"))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return idx
}

func TestLoadBuildsExactLookup(t *testing.T) {
	idx := loadFixture(t)

	if idx.Len() != 9 {
		t.Fatalf("expected 9 distinct postcodes, got %d", idx.Len())
	}
	got, ok := idx.LookupExact("3584CS")
	if !ok || got != "Utrecht" {
		t.Fatalf("expected first-seen Utrecht for 3584CS, got %q (%v)", got, ok)
	}
	if !idx.Contains("1012AB") {
		t.Fatalf("expected 1012AB to be known")
	}
	if idx.Contains("3584cs") {
		t.Fatalf("expected exact lookups to be case-sensitive")
	}
	if _, ok := idx.LookupExact("9999ZZ"); ok {
		t.Fatalf("expected 9999ZZ to be unknown")
	}
}

func TestCandidateMunicipalities(t *testing.T) {
	idx := loadFixture(t)

	want := []string{"de bilt", "utrecht", "zeist"}
	if got := idx.CandidateMunicipalities("3584CS"); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := idx.CandidateMunicipalities("3584"); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected a bare prefix to work, got %v", got)
	}
	if got := idx.CandidateMunicipalities("1012 xx"); !reflect.DeepEqual(got, []string{"amsterdam"}) {
		t.Fatalf("expected amsterdam, got %v", got)
	}
	if got := idx.CandidateMunicipalities("9999ZZ"); len(got) != 0 {
		t.Fatalf("expected no candidates, got %v", got)
	}
}

func TestAllMunicipalitiesSortedAndDeduplicated(t *testing.T) {
	idx := loadFixture(t)

	want := []string{"'s-gravenhage", "'s-hertogenbosch", "amsterdam", "de bilt", "nieuwegein", "utrecht", "zeist"}
	if got := idx.AllMunicipalities(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if idx.DisplayName("'s-hertogenbosch") != "'s-Hertogenbosch" {
		t.Fatalf("expected dataset spelling, got %q", idx.DisplayName("'s-hertogenbosch"))
	}
	if idx.DisplayName("Nowhere") != "Nowhere" {
		t.Fatalf("expected unknown names to pass through")
	}
}

func TestReturnedSlicesAreCopies(t *testing.T) {
	idx := loadFixture(t)

	all := idx.AllMunicipalities()
	all[0] = "mutated"
	if idx.AllMunicipalities()[0] == "mutated" {
		t.Fatalf("expected index to be immutable through returned slices")
	}
}

func TestLoadReaderSemicolonAndAliases(t *testing.T) {
	data := "\ufeffPostcode;Gemeentenaam;Extra\n" +
		"3584 cs;Utrecht;x\n" +
		"short\n" +
		";Empty;x\n"

	idx, err := LoadReader(strings.NewReader(data), "inline")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !idx.Contains("3584CS") {
		t.Fatalf("expected postcode to be normalized to 3584CS")
	}
	if idx.Len() != 1 {
		t.Fatalf("expected short and empty rows to be skipped, got %d entries", idx.Len())
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	noColumn := filepath.Join(dir, "nocol.csv")
	if err := os.WriteFile(noColumn, []byte("PC6,Buurt\n3584CS,x\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	headerOnly := filepath.Join(dir, "header.csv")
	if err := os.WriteFile(headerOnly, []byte("PC6,GemNaam\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	empty := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(empty, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		path string
		want error
	}{
		{"missing file", filepath.Join(dir, "absent.csv"), os.ErrNotExist},
		{"missing column", noColumn, ErrMissingColumn},
		{"header only", headerOnly, ErrEmptyDataset},
		{"empty file", empty, ErrEmptyDataset},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(tc.path)
			var loadErr *DatasetLoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("expected DatasetLoadError, got %v", err)
			}
			if loadErr.Source != tc.path {
				t.Fatalf("expected source %q, got %q", tc.path, loadErr.Source)
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v in chain, got %v", tc.want, err)
			}
		})
	}
}
