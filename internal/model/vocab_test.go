package model

import (
	"reflect"
	"testing"
)

func TestVocabulary_BuildAndFreeze(t *testing.T) {
	v := NewVocabulary()

	for _, label := range []string{"true", "false", "true"} {
		if err := v.Add("X", label); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	labels := v.Labels("X")
	if !reflect.DeepEqual(labels, []string{"false", "true"}) {
		t.Errorf("Expected [false true], got %v", labels)
	}

	v.Freeze()
	if !v.Frozen() {
		t.Error("Expected vocabulary to be frozen")
	}

	// Labels after freeze stay sorted and deduplicated
	labels = v.Labels("X")
	if !reflect.DeepEqual(labels, []string{"false", "true"}) {
		t.Errorf("Expected [false true] after freeze, got %v", labels)
	}
}

func TestVocabulary_LabelsSorted(t *testing.T) {
	v := NewVocabulary()
	for _, label := range []string{"partly true", "false", "misleading", "true"} {
		if err := v.Add("src", label); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}
	v.Freeze()

	expected := []string{"false", "misleading", "partly true", "true"}
	if got := v.Labels("src"); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestVocabulary_AddAfterFreeze(t *testing.T) {
	v := NewVocabulary()
	if err := v.Add("X", "true"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	v.Freeze()

	// Known label is fine (re-run of a training scan)
	if err := v.Add("X", "true"); err != nil {
		t.Errorf("Expected no error for known label after freeze, got %v", err)
	}

	// Unknown label is a data-integrity error
	if err := v.Add("X", "unknown"); err == nil {
		t.Error("Expected error for unknown label after freeze, got nil")
	}
}

func TestVocabulary_Counts(t *testing.T) {
	v := NewVocabulary()
	for _, label := range []string{"true", "false", "true", "true"} {
		if err := v.Add("X", label); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	counts := v.Counts("X")
	if counts["true"] != 3 || counts["false"] != 1 {
		t.Errorf("Expected true=3 false=1, got %v", counts)
	}
}

func TestVocabulary_PerSourceIsolation(t *testing.T) {
	v := NewVocabulary()
	_ = v.Add("a", "true")
	_ = v.Add("b", "pants on fire")
	v.Freeze()

	if v.Contains("a", "pants on fire") {
		t.Error("Label from source b leaked into source a")
	}
	if !v.Contains("b", "pants on fire") {
		t.Error("Expected source b to contain its own label")
	}

	if got := v.Sources(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Expected sources [a b], got %v", got)
	}
}

func TestVocabulary_FreezeIdempotent(t *testing.T) {
	v := NewVocabulary()
	_ = v.Add("X", "true")
	v.Freeze()
	v.Freeze()

	if got := v.Labels("X"); len(got) != 1 || got[0] != "true" {
		t.Errorf("Expected [true], got %v", got)
	}
}
