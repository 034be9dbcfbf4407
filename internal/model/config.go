package model

import "time"

// Config is the complete factprep configuration
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Labels  LabelConfig   `yaml:"labels"`
	Encode  EncodeConfig  `yaml:"encode"`
	Cache   CacheConfig   `yaml:"cache"`
	Workers WorkerConfig  `yaml:"workers"`
	Years   YearsConfig   `yaml:"years"`
	Output  OutputConfig  `yaml:"output"`
	Shuffle ShuffleConfig `yaml:"shuffle"`
}

// DataConfig controls how claim TSVs are read
type DataConfig struct {
	Dir           string `yaml:"dir"`            // Directory containing {split}.{source}.tsv files
	EvidenceCount int    `yaml:"evidence_count"` // Fixed number of evidence passages per claim
	UseMetadata   bool   `yaml:"use_metadata"`   // Append provenance metadata to claim text
	StripHTML     bool   `yaml:"strip_html"`     // Reduce scraped fields to visible text
}

// UnknownLabelPolicy decides what happens to dev/test examples whose label
// is absent from the frozen training vocabulary
type UnknownLabelPolicy string

const (
	PolicySkip  UnknownLabelPolicy = "skip"  // Count and drop (default)
	PolicyFail  UnknownLabelPolicy = "fail"  // Abort the load
	PolicyRemap UnknownLabelPolicy = "remap" // Rewrite to a configured fallback label
)

// LabelConfig controls unknown-label handling
type LabelConfig struct {
	Unknown     UnknownLabelPolicy `yaml:"unknown"`
	RemapTarget string             `yaml:"remap_target"` // Fallback label for the remap policy
}

// EncodeConfig controls feature encoding
type EncodeConfig struct {
	Strategy  string `yaml:"strategy"`   // "evidence-pair" or "claim-evidence"
	MaxLength int    `yaml:"max_length"` // Fixed token sequence length per choice
	Encoding  string `yaml:"encoding"`   // tiktoken encoding name
	PadID     int    `yaml:"pad_id"`     // Token id used for padding
}

// CacheConfig controls token-sequence caching
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// WorkerConfig controls encode-job concurrency
type WorkerConfig struct {
	Count int `yaml:"count"`
}

// YearsConfig controls the per-year JSON split filter
type YearsConfig struct {
	Years  []string `yaml:"years"`
	Prefix string   `yaml:"prefix"` // Output file name prefix, e.g. "Bi" -> Bi2020_test.json
}

// OutputConfig controls where results are written
type OutputConfig struct {
	Dir     string `yaml:"dir"`
	Verbose bool   `yaml:"verbose"`
}

// ShuffleConfig controls training-set example shuffling
type ShuffleConfig struct {
	Enabled bool  `yaml:"enabled"`
	Seed    int64 `yaml:"seed"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir:           ".",
			EvidenceCount: 3,
			UseMetadata:   false,
			StripHTML:     true,
		},
		Labels: LabelConfig{
			Unknown:     PolicySkip,
			RemapTarget: "other",
		},
		Encode: EncodeConfig{
			Strategy:  "evidence-pair",
			MaxLength: 128,
			Encoding:  "cl100k_base",
			PadID:     0,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "",
			TTL:     24 * time.Hour,
		},
		Workers: WorkerConfig{
			Count: 4,
		},
		Years: YearsConfig{
			Years:  []string{"2020", "2018", "2016"},
			Prefix: "Bi",
		},
		Output: OutputConfig{
			Dir:     ".",
			Verbose: false,
		},
		Shuffle: ShuffleConfig{
			Enabled: false,
			Seed:    42,
		},
	}
}
