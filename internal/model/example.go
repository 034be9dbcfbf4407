package model

// ClaimExample represents a single claim with its supporting evidence,
// ready for feature encoding. Instances are not mutated after construction.
type ClaimExample struct {
	ID        string   `json:"id"`                 // Unique id within the split (e.g., "train-42")
	Claim     string   `json:"claim"`              // The claim text itself
	Evidences []string `json:"evidences"`          // Always exactly the configured evidence count
	Label     string   `json:"label"`              // Lower-cased verdict label
	Metadata  string   `json:"metadata,omitempty"` // Human-readable provenance string
}

// FeatureRecord is one encoded multiple-choice example. The outer dimension
// of each field is the number of choices; every inner sequence has exactly
// max-length entries.
type FeatureRecord struct {
	ID            string  `json:"id"`
	InputIDs      [][]int `json:"input_ids"`
	AttentionMask [][]int `json:"attention_mask,omitempty"`
	SegmentIDs    [][]int `json:"segment_ids,omitempty"`
	Label         int     `json:"label"` // Index into the source's frozen label list
}

// SplitStats reports what a filtered load kept and dropped.
// Counts are always surfaced to the caller; no silent data loss.
type SplitStats struct {
	Kept      int `json:"kept"`
	Skipped   int `json:"skipped"`    // Examples dropped for out-of-vocabulary labels
	ShortRows int `json:"short_rows"` // Rows failing minimum-column validation
	EmptyRows int `json:"empty_rows"`
	Remapped  int `json:"remapped"`   // Labels rewritten under the remap policy
}
