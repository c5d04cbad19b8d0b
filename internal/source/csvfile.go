package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// CSVFile reads the spreadsheet export from a local CSV file with a
// header row.
type CSVFile struct {
	path string
}

// NewCSVFile creates a CSVFile source for the given path.
func NewCSVFile(path string) *CSVFile {
	return &CSVFile{path: path}
}

// FetchRows reads the whole file and returns its records as header-keyed
// maps. Short records leave the trailing fields absent; the parsers
// default them downstream.
func (s *CSVFile) FetchRows(ctx context.Context) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening case export %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading case export %s: %w", s.path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	if len(header) > 0 {
		// Strip a UTF-8 BOM left behind by spreadsheet tools.
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
