package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/factprep/internal/cache"
	"github.com/ppiankov/factprep/internal/dataset"
	"github.com/ppiankov/factprep/internal/encode"
	"github.com/ppiankov/factprep/internal/model"
	"github.com/ppiankov/factprep/internal/worker"
)

var (
	dataDir       string
	sources       []string
	splits        []string
	devFile       string
	strategyName  string
	maxLength     int
	evidenceCount int
	useMetadata   bool
	keepHTML      bool
	shuffle       bool
	shuffleSeed   int64
	unknownPolicy string
	remapTarget   string
	encodingName  string
	padID         int
	outDir        string
	workers       int
	noCache       bool
	cacheDir      string
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Convert claim TSVs into tokenized multiple-choice features",
	Long: `Encode reads {split}.{source}.tsv files and produces fixed-shape
feature records for a multiple-choice classifier:

- Scan every source's training file and build its label vocabulary
- Freeze vocabularies into sorted label lists
- Load dev/test files, handling out-of-vocabulary labels per policy
- Tokenize each claim with its evidence under the chosen pairing strategy
- Write {split}.{source}.features.json and labels.{source}.json

Example:
  factprep encode --data-dir ./data --sources pomt,snes
  factprep encode --data-dir ./data --sources pomt --strategy claim-evidence --max-length 256
  factprep encode --data-dir ./data --sources pomt --splits dev --dev-file ood.tsv`,
	Args: cobra.NoArgs,
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	// Input flags
	encodeCmd.Flags().StringVar(&dataDir, "data-dir", ".", "directory containing {split}.{source}.tsv files")
	encodeCmd.Flags().StringSliceVar(&sources, "sources", nil, "comma-separated data sources (required)")
	encodeCmd.Flags().StringSliceVar(&splits, "splits", []string{"train", "dev", "test"}, "splits to encode")
	encodeCmd.Flags().StringVar(&devFile, "dev-file", "", "explicit dev filename override")
	encodeCmd.Flags().IntVar(&evidenceCount, "evidences", 3, "evidence passages per claim")
	encodeCmd.Flags().BoolVar(&useMetadata, "use-metadata", false, "append provenance metadata to claim text")
	encodeCmd.Flags().BoolVar(&keepHTML, "keep-html", false, "keep residual markup in scraped fields")

	// Label flags
	encodeCmd.Flags().StringVar(&unknownPolicy, "unknown-labels", string(model.PolicySkip), "dev/test labels outside the training vocabulary: skip, fail, or remap")
	encodeCmd.Flags().StringVar(&remapTarget, "remap-to", "other", "fallback label for --unknown-labels=remap")

	// Shuffle flags
	encodeCmd.Flags().BoolVar(&shuffle, "shuffle", false, "shuffle training examples")
	encodeCmd.Flags().Int64Var(&shuffleSeed, "seed", 42, "shuffle seed")

	// Encoding flags
	encodeCmd.Flags().StringVar(&strategyName, "strategy", string(encode.StrategyEvidencePair), "pairing strategy: evidence-pair or claim-evidence")
	encodeCmd.Flags().IntVar(&maxLength, "max-length", 128, "fixed token sequence length per choice")
	encodeCmd.Flags().StringVar(&encodingName, "encoding", "cl100k_base", "tiktoken encoding name")
	encodeCmd.Flags().IntVar(&padID, "pad-id", 0, "token id used for padding")

	// Output and execution flags
	encodeCmd.Flags().StringVar(&outDir, "out-dir", ".", "output directory for feature files")
	encodeCmd.Flags().IntVar(&workers, "workers", 4, "concurrent encode workers")
	encodeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the token-sequence cache")
	encodeCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "token cache directory (default: $HOME/.factprep/cache)")

	_ = encodeCmd.MarkFlagRequired("sources")
}

func runEncode(cmd *cobra.Command, args []string) error {
	strategy, err := encode.ParseStrategy(strategyName)
	if err != nil {
		return err
	}

	cfg := buildEncodeConfig()
	if err := validatePolicy(cfg.Labels.Unknown); err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	vocab := model.NewVocabulary()
	loader := dataset.NewLoader(cfg, vocab)

	// Phase 1: training scan builds the per-source vocabularies. This must
	// finish for every source before anything encodes.
	trainExamples := make(map[string][]model.ClaimExample, len(sources))
	for _, source := range sources {
		examples, _, err := loader.LoadTrain(source)
		if err != nil {
			return fmt.Errorf("train scan %s: %w", source, err)
		}
		trainExamples[source] = examples
	}

	// Phase 2: freeze. Vocabularies are read-only from here on.
	vocab.Freeze()

	if verbose {
		printLabelCounts(vocab)
	}

	for _, source := range sources {
		path := filepath.Join(outDir, fmt.Sprintf("labels.%s.json", source))
		if err := encode.WriteLabels(vocab.Labels(source), path); err != nil {
			return err
		}
	}

	// Phase 3: encode each requested (source, split) as an independent job.
	tokenizer := encode.NewTiktokenTokenizer(encodingName, padID, tokenStore(cfg))
	encoder := encode.NewEncoder(tokenizer, maxLength, verbose)

	var jobs []*worker.EncodeJob
	for _, source := range sources {
		for _, split := range splits {
			job := &worker.EncodeJob{
				Source:   source,
				Split:    split,
				Loader:   loader,
				Encoder:  encoder,
				Strategy: strategy,
				OutDir:   outDir,
			}
			switch split {
			case "train":
				job.Examples = trainExamples[source]
			case "dev":
				job.DevFile = devFile
			case "test":
			default:
				return fmt.Errorf("unknown split %q (want train, dev, or test)", split)
			}
			jobs = append(jobs, job)
		}
	}

	results := worker.RunEncodeJobs(jobs, workers)

	failures := 0
	for _, result := range results {
		if result.Err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s.%s: %v\n", result.Split, result.Source, result.Err)
			continue
		}
		fmt.Fprintf(os.Stderr, "✓ %s (%d features", result.Path, result.Features)
		if result.Skipped > 0 {
			fmt.Fprintf(os.Stderr, ", %d skipped", result.Skipped)
		}
		fmt.Fprintf(os.Stderr, ")\n")
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d encode jobs failed", failures, len(results))
	}
	return nil
}

// buildEncodeConfig merges defaults with the encode command's flags
func buildEncodeConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Data.Dir = dataDir
	cfg.Data.EvidenceCount = evidenceCount
	cfg.Data.UseMetadata = useMetadata
	cfg.Data.StripHTML = !keepHTML
	cfg.Labels.Unknown = model.UnknownLabelPolicy(unknownPolicy)
	cfg.Labels.RemapTarget = remapTarget
	cfg.Encode.Strategy = strategyName
	cfg.Encode.MaxLength = maxLength
	cfg.Encode.Encoding = encodingName
	cfg.Encode.PadID = padID
	cfg.Cache.Enabled = !noCache
	cfg.Cache.Dir = cacheDir
	cfg.Workers.Count = workers
	cfg.Output.Dir = outDir
	cfg.Output.Verbose = verbose
	cfg.Shuffle.Enabled = shuffle
	cfg.Shuffle.Seed = shuffleSeed
	return cfg
}

func validatePolicy(policy model.UnknownLabelPolicy) error {
	switch policy {
	case model.PolicySkip, model.PolicyFail, model.PolicyRemap:
		return nil
	default:
		return fmt.Errorf("unknown label policy %q (want skip, fail, or remap)", policy)
	}
}

// tokenStore builds the token-sequence cache, or nil when disabled
func tokenStore(cfg *model.Config) cache.Cache {
	if !cfg.Cache.Enabled {
		return nil
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.TTL)
		}
		dir = filepath.Join(home, ".factprep", "cache")
	}
	return cache.NewLayeredCache(cfg.Cache.TTL, dir, cfg.Cache.TTL)
}

// printLabelCounts mirrors the training-scan summary: per-source label
// counts in sorted order
func printLabelCounts(vocab *model.Vocabulary) {
	fmt.Fprintf(os.Stderr, "Label counts:\n")
	for _, source := range vocab.Sources() {
		counts := vocab.Counts(source)
		labels := make([]string, 0, len(counts))
		for label := range counts {
			labels = append(labels, label)
		}
		sort.Strings(labels)

		parts := make([]string, 0, len(labels))
		for _, label := range labels {
			parts = append(parts, fmt.Sprintf("%s=%d", label, counts[label]))
		}
		fmt.Fprintf(os.Stderr, "  %s: %s\n", source, strings.Join(parts, ", "))
	}
}
