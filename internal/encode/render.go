package encode

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ppiankov/factprep/internal/model"
)

// WriteFeatures writes feature records to path as an indented JSON array
func WriteFeatures(features []model.FeatureRecord, path string) error {
	return writeJSON(features, path)
}

// WriteLabels writes a frozen label list to path. Downstream consumers map
// label indices back to strings through this file.
func WriteLabels(labels []string, path string) error {
	return writeJSON(labels, path)
}

func writeJSON(v interface{}, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
