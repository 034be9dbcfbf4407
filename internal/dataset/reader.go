package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// TSVFile holds one parsed tab-separated file: the header row and the data
// rows that follow it. Rows are positional; meaning comes from the header
// via Schema.
type TSVFile struct {
	Path   string
	Header []string
	Rows   [][]string
}

// ReadTSV reads a tab-separated UTF-8 file, tolerating a leading byte-order
// mark. The header row is split off; fully empty rows are dropped here and
// counted by the caller via the returned row slice length vs. file length.
func ReadTSV(path string) (*TSVFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return parseTSV(f, path)
}

func parseTSV(r io.Reader, path string) (*TSVFile, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1 // Column-count validation happens per row in Schema
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse %s: file is empty", path)
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	return &TSVFile{
		Path:   path,
		Header: header,
		Rows:   records[1:],
	}, nil
}

// isEmptyRow reports whether every field in the row is blank
func isEmptyRow(row []string) bool {
	for _, field := range row {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
