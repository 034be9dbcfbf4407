package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestReadTSV_HeaderAndRows(t *testing.T) {
	path := writeFile(t, t.TempDir(), "data.tsv",
		"language\tsite\tclaim\nen\texample.org\tthe sky is blue\nfr\tautre.fr\tle ciel est bleu\n")

	file, err := ReadTSV(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(file.Header) != 3 || file.Header[0] != "language" {
		t.Errorf("Unexpected header: %v", file.Header)
	}
	if len(file.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(file.Rows))
	}
	if file.Rows[1][2] != "le ciel est bleu" {
		t.Errorf("Unexpected field: %q", file.Rows[1][2])
	}
}

func TestReadTSV_ByteOrderMark(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bom.tsv",
		"\uFEFFlanguage\tclaim\nen\tsomething happened\n")

	file, err := ReadTSV(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if file.Header[0] != "language" {
		t.Errorf("Expected BOM to be stripped from first column, got %q", file.Header[0])
	}
}

func TestReadTSV_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.tsv")
	_, err := ReadTSV(path)
	if err == nil {
		t.Fatal("Expected error for missing file, got nil")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("Expected error to carry the path, got %v", err)
	}
}

func TestReadTSV_EmptyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.tsv", "")
	if _, err := ReadTSV(path); err == nil {
		t.Fatal("Expected error for empty file, got nil")
	}
}

func TestReadTSV_VariableColumnCounts(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ragged.tsv",
		"a\tb\tc\n1\t2\t3\nshort\n")

	file, err := ReadTSV(path)
	if err != nil {
		t.Fatalf("Expected ragged rows to parse, got %v", err)
	}
	if len(file.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(file.Rows))
	}
	if len(file.Rows[1]) != 1 {
		t.Errorf("Expected short row to keep 1 field, got %d", len(file.Rows[1]))
	}
}

func TestIsEmptyRow(t *testing.T) {
	if !isEmptyRow([]string{"", "  ", "\t"}) {
		t.Error("Expected blank row to be empty")
	}
	if isEmptyRow([]string{"", "x"}) {
		t.Error("Expected row with content to be non-empty")
	}
}
