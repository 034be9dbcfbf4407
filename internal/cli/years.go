package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/factprep/internal/yearfilter"
)

var (
	yearsInput  string
	yearsOutDir string
	yearsList   []string
	yearsPrefix string
)

// yearsCmd represents the years command
var yearsCmd = &cobra.Command{
	Use:   "years",
	Short: "Filter a claims TSV into per-year JSON splits",
	Long: `Years reads a raw claims TSV, keeps only rows with binary true/false
verdicts, groups them by the 4-digit year prefix of the claim date, and
writes one JSON array per requested year.

Each output record carries annotation_id, exp_split, text, a 0/1 label,
and the original label string as label_id.

Example:
  factprep years --input test.all.tsv
  factprep years --input test.all.tsv --years 2020,2019 --prefix Bi --out-dir ./splits`,
	Args: cobra.NoArgs,
	RunE: runYears,
}

func init() {
	rootCmd.AddCommand(yearsCmd)

	yearsCmd.Flags().StringVar(&yearsInput, "input", "test.all.tsv", "input claims TSV")
	yearsCmd.Flags().StringVar(&yearsOutDir, "out-dir", ".", "output directory for JSON files")
	yearsCmd.Flags().StringSliceVar(&yearsList, "years", []string{"2020", "2018", "2016"}, "4-digit years to keep")
	yearsCmd.Flags().StringVar(&yearsPrefix, "prefix", "Bi", "output file name prefix")
}

func runYears(cmd *cobra.Command, args []string) error {
	for _, year := range yearsList {
		if len(year) != 4 {
			return fmt.Errorf("invalid year %q: want a 4-digit year", year)
		}
	}

	if err := os.MkdirAll(yearsOutDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	filter := yearfilter.NewFilter(yearsList, yearsPrefix, verbose)
	results, err := filter.Run(yearsInput, yearsOutDir)
	if err != nil {
		return fmt.Errorf("year filter: %w", err)
	}

	total := 0
	for _, result := range results {
		fmt.Fprintf(os.Stderr, "✓ %s (%d records)\n", result.Path, result.Count)
		total += result.Count
	}
	fmt.Fprintf(os.Stderr, "Wrote %d records across %d files\n", total, len(results))

	return nil
}
