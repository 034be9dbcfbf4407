package dataset

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ppiankov/factprep/internal/model"
)

func writeClaims(t *testing.T, dir, name string, rows ...[]string) {
	t.Helper()
	var b strings.Builder
	b.WriteString(strings.Join(claimHeader, "\t"))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteString("\n")
	}
	writeFile(t, dir, name, b.String())
}

func claimRow(claim, label string) []string {
	return []string{"en", "example.org", "evidence one", "evidence two", "evidence three",
		"2020-01-01", "2020-02-01", "somebody", claim, label}
}

func testConfig(dir string) *model.Config {
	cfg := model.DefaultConfig()
	cfg.Data.Dir = dir
	cfg.Data.StripHTML = false
	return cfg
}

func TestLoader_TrainBuildsVocabulary(t *testing.T) {
	dir := t.TempDir()
	writeClaims(t, dir, "train.X.tsv",
		claimRow("claim one", "true"),
		claimRow("claim two", "false"),
		claimRow("claim three", "TRUE"))

	vocab := model.NewVocabulary()
	loader := NewLoader(testConfig(dir), vocab)

	examples, stats, err := loader.LoadTrain("X")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(examples) != 3 {
		t.Fatalf("Expected 3 examples, got %d", len(examples))
	}
	if stats.Kept != 3 {
		t.Errorf("Expected kept=3, got %d", stats.Kept)
	}

	vocab.Freeze()
	if got := loader.Labels("X"); !reflect.DeepEqual(got, []string{"false", "true"}) {
		t.Errorf("Expected vocabulary [false true], got %v", got)
	}
}

func TestLoader_DevSkipsUnknownLabels(t *testing.T) {
	dir := t.TempDir()
	writeClaims(t, dir, "train.X.tsv",
		claimRow("c1", "true"),
		claimRow("c2", "false"),
		claimRow("c3", "true"))
	writeClaims(t, dir, "dev.X.tsv",
		claimRow("d1", "true"),
		claimRow("d2", "unknown"))

	vocab := model.NewVocabulary()
	loader := NewLoader(testConfig(dir), vocab)

	if _, _, err := loader.LoadTrain("X"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	vocab.Freeze()

	examples, stats, err := loader.LoadDev("X", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(examples) != 1 {
		t.Errorf("Expected 1 kept example, got %d", len(examples))
	}
	if stats.Skipped != 1 {
		t.Errorf("Expected skip count 1, got %d", stats.Skipped)
	}
	if examples[0].Label != "true" {
		t.Errorf("Expected kept label true, got %q", examples[0].Label)
	}
}

func TestLoader_UnknownLabelFailPolicy(t *testing.T) {
	dir := t.TempDir()
	writeClaims(t, dir, "train.X.tsv", claimRow("c1", "true"))
	writeClaims(t, dir, "test.X.tsv", claimRow("t1", "mostly true"))

	cfg := testConfig(dir)
	cfg.Labels.Unknown = model.PolicyFail

	vocab := model.NewVocabulary()
	loader := NewLoader(cfg, vocab)
	if _, _, err := loader.LoadTrain("X"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	vocab.Freeze()

	if _, _, err := loader.LoadTest("X"); err == nil {
		t.Fatal("Expected error under fail policy, got nil")
	}
}

func TestLoader_UnknownLabelRemapPolicy(t *testing.T) {
	dir := t.TempDir()
	writeClaims(t, dir, "train.X.tsv",
		claimRow("c1", "true"),
		claimRow("c2", "other"))
	writeClaims(t, dir, "test.X.tsv", claimRow("t1", "half true"))

	cfg := testConfig(dir)
	cfg.Labels.Unknown = model.PolicyRemap
	cfg.Labels.RemapTarget = "other"

	vocab := model.NewVocabulary()
	loader := NewLoader(cfg, vocab)
	if _, _, err := loader.LoadTrain("X"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	vocab.Freeze()

	examples, stats, err := loader.LoadTest("X")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(examples) != 1 || examples[0].Label != "other" {
		t.Fatalf("Expected remapped label other, got %v", examples)
	}
	if stats.Remapped != 1 {
		t.Errorf("Expected remap count 1, got %d", stats.Remapped)
	}
}

func TestLoader_RemapTargetMustBeInVocabulary(t *testing.T) {
	dir := t.TempDir()
	writeClaims(t, dir, "train.X.tsv", claimRow("c1", "true"))
	writeClaims(t, dir, "test.X.tsv", claimRow("t1", "half true"))

	cfg := testConfig(dir)
	cfg.Labels.Unknown = model.PolicyRemap
	cfg.Labels.RemapTarget = "other" // never seen in training

	vocab := model.NewVocabulary()
	loader := NewLoader(cfg, vocab)
	if _, _, err := loader.LoadTrain("X"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	vocab.Freeze()

	if _, _, err := loader.LoadTest("X"); err == nil {
		t.Fatal("Expected configuration error for out-of-vocabulary remap target, got nil")
	}
}

func TestLoader_TrainAfterFreezeRejectsNewLabel(t *testing.T) {
	dir := t.TempDir()
	writeClaims(t, dir, "train.X.tsv", claimRow("c1", "true"))

	vocab := model.NewVocabulary()
	loader := NewLoader(testConfig(dir), vocab)
	if _, _, err := loader.LoadTrain("X"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	vocab.Freeze()

	// Re-scan against a frozen vocabulary with a new label: integrity error
	writeClaims(t, dir, "train.X.tsv",
		claimRow("c1", "true"),
		claimRow("c2", "brand new label"))
	if _, _, err := loader.LoadTrain("X"); err == nil {
		t.Fatal("Expected data-integrity error, got nil")
	}
}

func TestLoader_SkipsShortAndEmptyRows(t *testing.T) {
	dir := t.TempDir()
	var b strings.Builder
	b.WriteString(strings.Join(claimHeader, "\t") + "\n")
	b.WriteString(strings.Join(claimRow("good claim", "true"), "\t") + "\n")
	b.WriteString("\n")                  // empty row
	b.WriteString("en\tsite\tonly\n")    // short row
	writeFile(t, dir, "train.X.tsv", b.String())

	vocab := model.NewVocabulary()
	loader := NewLoader(testConfig(dir), vocab)

	examples, stats, err := loader.LoadTrain("X")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(examples) != 1 {
		t.Errorf("Expected 1 example, got %d", len(examples))
	}
	if stats.ShortRows != 1 {
		t.Errorf("Expected 1 short row, got %d", stats.ShortRows)
	}
}

func TestLoader_ShuffleIsSeeded(t *testing.T) {
	dir := t.TempDir()
	rows := make([][]string, 0, 20)
	for i := 0; i < 20; i++ {
		rows = append(rows, claimRow(strings.Repeat("x", i+1), "true"))
	}
	writeClaims(t, dir, "train.X.tsv", rows...)

	cfg := testConfig(dir)
	cfg.Shuffle.Enabled = true
	cfg.Shuffle.Seed = 7

	first, _, err := NewLoader(cfg, model.NewVocabulary()).LoadTrain("X")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, _, err := NewLoader(cfg, model.NewVocabulary()).LoadTrain("X")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical order for identical seeds")
	}

	ordered := true
	for i := range first {
		if first[i].ID != second[i].ID {
			ordered = false
			break
		}
	}
	if !ordered {
		t.Error("Expected deterministic shuffle")
	}
}

func TestLoader_DevFilenameOverride(t *testing.T) {
	dir := t.TempDir()
	writeClaims(t, dir, "train.X.tsv", claimRow("c1", "true"))
	writeClaims(t, dir, "ood.tsv", claimRow("d1", "true"))

	vocab := model.NewVocabulary()
	loader := NewLoader(testConfig(dir), vocab)
	if _, _, err := loader.LoadTrain("X"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	vocab.Freeze()

	examples, _, err := loader.LoadDev("X", "ood.tsv")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(examples) != 1 {
		t.Errorf("Expected 1 example from override file, got %d", len(examples))
	}
}

func TestLoader_MissingFile(t *testing.T) {
	loader := NewLoader(testConfig(t.TempDir()), model.NewVocabulary())
	if _, _, err := loader.LoadTrain("absent"); err == nil {
		t.Fatal("Expected error for missing train file, got nil")
	}
}
