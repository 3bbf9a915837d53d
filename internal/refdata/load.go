package refdata

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	// ErrMissingColumn is returned when the header lacks a postcode or municipality column.
	ErrMissingColumn = errors.New("required column missing")
	// ErrEmptyDataset is returned when no usable rows were read.
	ErrEmptyDataset = errors.New("dataset contains no usable entries")
)

var (
	postcodeColumns     = []string{"pc6", "postcode", "postcode6"}
	municipalityColumns = []string{"gemnaam", "gemeentenaam", "municipality", "gemeente"}
)

// DatasetLoadError reports that the reference dataset could not be loaded.
// The scoring engine cannot run without it.
type DatasetLoadError struct {
	Source string
	Err    error
}

func (e *DatasetLoadError) Error() string {
	return fmt.Sprintf("load reference dataset %s: %v", e.Source, e.Err)
}

func (e *DatasetLoadError) Unwrap() error {
	return e.Err
}

// Load reads the CSV dataset at path.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DatasetLoadError{Source: path, Err: err}
	}
	defer f.Close()

	return LoadReader(f, path)
}

// LoadReader reads a CSV dataset from r. The header row must name a postcode
// and a municipality column; the delimiter (',' or ';') is taken from the
// header. source is only used in error messages.
func LoadReader(r io.Reader, source string) (*Index, error) {
	entries, err := readEntries(r)
	if err != nil {
		return nil, &DatasetLoadError{Source: source, Err: err}
	}

	idx := NewIndex(entries)
	if idx.Len() == 0 {
		return nil, &DatasetLoadError{Source: source, Err: ErrEmptyDataset}
	}
	return idx, nil
}

func readEntries(r io.Reader) ([]Entry, error) {
	br := bufio.NewReader(r)
	header, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = strings.TrimPrefix(header, "\ufeff")
	if strings.TrimSpace(header) == "" {
		return nil, ErrEmptyDataset
	}

	reader := csv.NewReader(io.MultiReader(strings.NewReader(header), br))
	reader.Comma = detectDelimiter(header)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	columns, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}
	pcCol := findColumn(columns, postcodeColumns)
	if pcCol < 0 {
		return nil, fmt.Errorf("%w: postcode (one of %s)", ErrMissingColumn, strings.Join(postcodeColumns, ", "))
	}
	gemCol := findColumn(columns, municipalityColumns)
	if gemCol < 0 {
		return nil, fmt.Errorf("%w: municipality (one of %s)", ErrMissingColumn, strings.Join(municipalityColumns, ", "))
	}

	var entries []Entry
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse row: %w", err)
		}
		if pcCol >= len(record) || gemCol >= len(record) {
			continue
		}
		entries = append(entries, Entry{Postcode: record[pcCol], Municipality: record[gemCol]})
	}

	return entries, nil
}

func detectDelimiter(header string) rune {
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}
	return ','
}

func findColumn(columns []string, names []string) int {
	for _, name := range names {
		for i, col := range columns {
			if strings.EqualFold(strings.TrimSpace(col), name) {
				return i
			}
		}
	}
	return -1
}
