package dataset

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/ppiankov/factprep/internal/model"
)

// Loader reads train/dev/test claim files per source, builds examples, and
// maintains the label vocabulary across the three phases: training scan
// (vocabulary grows), freeze, filtered scan (unknown labels handled per
// policy). Phases must run in that order for a source; the loader holds no
// locks, sequencing is the caller's responsibility.
type Loader struct {
	dataDir       string
	evidenceCount int
	useMetadata   bool
	stripHTML     bool
	policy        model.UnknownLabelPolicy
	remapTarget   string
	shuffle       bool
	seed          int64
	verbose       bool

	vocab *model.Vocabulary
}

// NewLoader creates a loader bound to an explicit vocabulary context
func NewLoader(cfg *model.Config, vocab *model.Vocabulary) *Loader {
	return &Loader{
		dataDir:       cfg.Data.Dir,
		evidenceCount: cfg.Data.EvidenceCount,
		useMetadata:   cfg.Data.UseMetadata,
		stripHTML:     cfg.Data.StripHTML,
		policy:        cfg.Labels.Unknown,
		remapTarget:   cfg.Labels.RemapTarget,
		shuffle:       cfg.Shuffle.Enabled,
		seed:          cfg.Shuffle.Seed,
		verbose:       cfg.Output.Verbose,
		vocab:         vocab,
	}
}

// Vocabulary returns the loader's vocabulary context
func (l *Loader) Vocabulary() *model.Vocabulary {
	return l.vocab
}

// Labels returns the sorted label list for a source
func (l *Loader) Labels(source string) []string {
	return l.vocab.Labels(source)
}

// LoadTrain reads train.{source}.tsv and adds every observed label to the
// source's vocabulary. Before Freeze no example is rejected; after Freeze an
// unseen label is a data-integrity error. When shuffling is enabled the
// example order is randomized reproducibly from the configured seed.
func (l *Loader) LoadTrain(source string) ([]model.ClaimExample, model.SplitStats, error) {
	var stats model.SplitStats

	path := filepath.Join(l.dataDir, fmt.Sprintf("train.%s.tsv", source))
	examples, err := l.scan(path, "train", func(ex *model.ClaimExample) (bool, error) {
		if err := l.vocab.Add(source, ex.Label); err != nil {
			return false, err
		}
		return true, nil
	}, &stats)
	if err != nil {
		return nil, stats, err
	}

	if l.shuffle {
		rng := rand.New(rand.NewSource(l.seed))
		rng.Shuffle(len(examples), func(i, j int) {
			examples[i], examples[j] = examples[j], examples[i]
		})
	}

	if l.verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d train examples from source %s (%d short rows, %d empty rows skipped)\n",
			len(examples), source, stats.ShortRows, stats.EmptyRows)
	}
	return examples, stats, nil
}

// LoadDev reads dev.{source}.tsv, or the override filename when non-empty,
// and applies the unknown-label policy against the frozen vocabulary.
func (l *Loader) LoadDev(source, filename string) ([]model.ClaimExample, model.SplitStats, error) {
	if filename == "" {
		filename = fmt.Sprintf("dev.%s.tsv", source)
	}
	return l.loadFiltered(filepath.Join(l.dataDir, filename), source, "dev")
}

// LoadTest reads test.{source}.tsv and applies the unknown-label policy
// against the frozen vocabulary.
func (l *Loader) LoadTest(source string) ([]model.ClaimExample, model.SplitStats, error) {
	return l.loadFiltered(filepath.Join(l.dataDir, fmt.Sprintf("test.%s.tsv", source)), source, "test")
}

func (l *Loader) loadFiltered(path, source, split string) ([]model.ClaimExample, model.SplitStats, error) {
	var stats model.SplitStats

	if l.policy == model.PolicyRemap && !l.vocab.Contains(source, l.remapTarget) {
		return nil, stats, fmt.Errorf("remap target %q not in vocabulary for source %q", l.remapTarget, source)
	}

	examples, err := l.scan(path, split, func(ex *model.ClaimExample) (bool, error) {
		if l.vocab.Contains(source, ex.Label) {
			return true, nil
		}
		switch l.policy {
		case model.PolicyFail:
			return false, fmt.Errorf("%s: label %q not in vocabulary for source %q", path, ex.Label, source)
		case model.PolicyRemap:
			ex.Label = l.remapTarget
			stats.Remapped++
			return true, nil
		default:
			stats.Skipped++
			return false, nil
		}
	}, &stats)
	if err != nil {
		return nil, stats, err
	}

	if l.verbose {
		fmt.Fprintf(os.Stderr, "For source %s, %s examples skipped: %d, examples left: %d\n",
			source, split, stats.Skipped, len(examples))
	}
	return examples, stats, nil
}

// scan is the shared read-validate-build loop. keep decides per example
// whether it enters the output; it may mutate the example (remap policy).
func (l *Loader) scan(path, split string, keep func(*model.ClaimExample) (bool, error), stats *model.SplitStats) ([]model.ClaimExample, error) {
	file, err := ReadTSV(path)
	if err != nil {
		return nil, err
	}

	schema, err := NewSchema(file, l.evidenceCount)
	if err != nil {
		return nil, err
	}
	builder := NewBuilder(schema, l.useMetadata, l.stripHTML)

	var examples []model.ClaimExample
	for i, row := range file.Rows {
		if isEmptyRow(row) {
			stats.EmptyRows++
			continue
		}
		if !schema.RowComplete(row) {
			stats.ShortRows++
			if l.verbose {
				fmt.Fprintf(os.Stderr, "Warning: %s row %d has %d columns, skipping\n", path, i+2, len(row))
			}
			continue
		}

		example := builder.Build(row, fmt.Sprintf("%s-%d", split, i+1))
		ok, err := keep(&example)
		if err != nil {
			return nil, err
		}
		if ok {
			examples = append(examples, example)
		}
	}

	stats.Kept = len(examples)
	return examples, nil
}
