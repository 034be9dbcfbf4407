package dataset

import (
	"fmt"
)

// Column names in the claims TSV. Evidence columns are evidence_1..evidence_k.
const (
	ColLanguage   = "language"
	ColSite       = "site"
	ColClaimDate  = "claimDate"
	ColReviewDate = "reviewDate"
	ColClaimant   = "claimant"
	ColClaim      = "claim"
	ColLabel      = "label"
)

// Schema maps declared column names to positions in a validated header.
// Rows are accessed by name, never by raw position, so a reordered or
// extended header does not silently shift meaning.
type Schema struct {
	index         map[string]int
	evidenceCount int
	minColumns    int
}

// NewSchema validates a header against the declared claim-file columns and
// returns a Schema for row access. It fails with a precise error naming the
// first missing column and the file it came from.
func NewSchema(file *TSVFile, evidenceCount int) (*Schema, error) {
	if evidenceCount < 1 {
		return nil, fmt.Errorf("evidence count must be at least 1, got %d", evidenceCount)
	}

	index := make(map[string]int, len(file.Header))
	for i, name := range file.Header {
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("%s: duplicate column %q in header", file.Path, name)
		}
		index[name] = i
	}

	required := []string{ColLanguage, ColSite, ColClaimDate, ColReviewDate, ColClaimant, ColClaim, ColLabel}
	for i := 1; i <= evidenceCount; i++ {
		required = append(required, evidenceColumn(i))
	}

	minColumns := 0
	for _, name := range required {
		pos, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%s: header is missing required column %q (have %d columns)", file.Path, name, len(file.Header))
		}
		if pos+1 > minColumns {
			minColumns = pos + 1
		}
	}

	return &Schema{
		index:         index,
		evidenceCount: evidenceCount,
		minColumns:    minColumns,
	}, nil
}

// EvidenceCount returns the configured evidence count
func (s *Schema) EvidenceCount() int {
	return s.evidenceCount
}

// RowComplete reports whether the row has enough columns to cover every
// required field. Short rows must be skipped by the caller, never indexed.
func (s *Schema) RowComplete(row []string) bool {
	return len(row) >= s.minColumns
}

// Field returns the named field of a row. The row must have passed
// RowComplete for required columns.
func (s *Schema) Field(row []string, name string) string {
	pos, ok := s.index[name]
	if !ok || pos >= len(row) {
		return ""
	}
	return row[pos]
}

// Evidence returns the i-th (1-based) evidence passage of a row
func (s *Schema) Evidence(row []string, i int) string {
	return s.Field(row, evidenceColumn(i))
}

func evidenceColumn(i int) string {
	return fmt.Sprintf("evidence_%d", i)
}
