// Package yearfilter reshapes a raw claims TSV into per-year JSON splits
// restricted to binary true/false verdicts.
package yearfilter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/factprep/internal/dataset"
)

// Record is one output object in a per-year JSON array
type Record struct {
	AnnotationID string `json:"annotation_id"` // Constant placeholder, kept for downstream schema compatibility
	ExpSplit     string `json:"exp_split"`     // Always "test"
	Text         string `json:"text"`          // The claim text
	Label        int    `json:"label"`         // false -> 0, true -> 1
	LabelID      string `json:"label_id"`      // Original label string
}

// Result summarizes one written year file
type Result struct {
	Year  string
	Path  string
	Count int
}

// Filter splits a claims TSV by claim-date year
type Filter struct {
	years   []string
	prefix  string
	verbose bool
}

// NewFilter creates a filter for the given 4-digit years
func NewFilter(years []string, prefix string, verbose bool) *Filter {
	return &Filter{
		years:   years,
		prefix:  prefix,
		verbose: verbose,
	}
}

// Run reads inputPath, keeps rows whose label is exactly "true" or "false"
// and whose claim date starts with a configured year, and writes one JSON
// array per year into outDir as {prefix}{year}_test.json. A year with no
// matching rows still gets an empty array file.
func (f *Filter) Run(inputPath, outDir string) ([]Result, error) {
	file, err := dataset.ReadTSV(inputPath)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(file.Header))
	for i, name := range file.Header {
		index[name] = i
	}
	for _, name := range []string{dataset.ColClaimDate, dataset.ColClaim, dataset.ColLabel} {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%s: header is missing required column %q", inputPath, name)
		}
	}

	byYear := make(map[string][]Record, len(f.years))
	for _, year := range f.years {
		byYear[year] = []Record{}
	}

	skipped := 0
	for _, row := range file.Rows {
		field := func(name string) string {
			pos := index[name]
			if pos >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[pos])
		}
		if len(row) == 0 {
			continue
		}

		label := field(dataset.ColLabel)
		if label != "true" && label != "false" {
			skipped++
			continue
		}

		date := field(dataset.ColClaimDate)
		if len(date) < 4 {
			skipped++
			continue
		}
		year := date[:4]
		if _, wanted := byYear[year]; !wanted {
			skipped++
			continue
		}

		numeric := 0
		if label == "true" {
			numeric = 1
		}
		byYear[year] = append(byYear[year], Record{
			AnnotationID: "placeholder",
			ExpSplit:     "test",
			Text:         field(dataset.ColClaim),
			Label:        numeric,
			LabelID:      label,
		})
	}

	results := make([]Result, 0, len(f.years))
	for _, year := range f.years {
		path := filepath.Join(outDir, f.prefix+year+"_test.json")
		data, err := json.MarshalIndent(byYear[year], "", "    ")
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", path, err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		results = append(results, Result{Year: year, Path: path, Count: len(byYear[year])})
	}

	if f.verbose {
		for _, r := range results {
			fmt.Fprintf(os.Stderr, "✓ %s: %d records\n", r.Path, r.Count)
		}
		fmt.Fprintf(os.Stderr, "Rows outside the requested years/labels: %d\n", skipped)
	}

	return results, nil
}
