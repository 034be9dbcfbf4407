package model

import (
	"fmt"
	"sort"
)

// Vocabulary collects per-source label sets during training scans and
// freezes them into sorted label lists. It is an explicit context object:
// independent runs use independent vocabularies, nothing is process-global.
//
// Lifecycle: Add during training scans, then Freeze once, then read-only.
type Vocabulary struct {
	sets   map[string]map[string]struct{}
	counts map[string]map[string]int
	frozen map[string][]string
}

// NewVocabulary creates an empty vocabulary
func NewVocabulary() *Vocabulary {
	return &Vocabulary{
		sets:   make(map[string]map[string]struct{}),
		counts: make(map[string]map[string]int),
	}
}

// Add records an observed training label for a source.
// Returns an error when called after Freeze with a label outside the frozen
// set for that source; this is a data-integrity check, not a runtime path.
func (v *Vocabulary) Add(source, label string) error {
	if v.frozen != nil {
		if !v.Contains(source, label) {
			return fmt.Errorf("label %q not in frozen vocabulary for source %q", label, source)
		}
		v.counts[source][label]++
		return nil
	}

	if _, ok := v.sets[source]; !ok {
		v.sets[source] = make(map[string]struct{})
		v.counts[source] = make(map[string]int)
	}
	v.sets[source][label] = struct{}{}
	v.counts[source][label]++
	return nil
}

// Freeze sorts every source's label set into an immutable ordered list.
// Calling Freeze twice is a no-op.
func (v *Vocabulary) Freeze() {
	if v.frozen != nil {
		return
	}
	v.frozen = make(map[string][]string, len(v.sets))
	for source, set := range v.sets {
		labels := make([]string, 0, len(set))
		for label := range set {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		v.frozen[source] = labels
	}
}

// Frozen reports whether Freeze has been called
func (v *Vocabulary) Frozen() bool {
	return v.frozen != nil
}

// Labels returns the sorted label list for a source. It always returns the
// frozen ordered list, never the unordered set; before Freeze it sorts a
// snapshot of the current set.
func (v *Vocabulary) Labels(source string) []string {
	if v.frozen != nil {
		return v.frozen[source]
	}
	labels := make([]string, 0, len(v.sets[source]))
	for label := range v.sets[source] {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Contains reports whether a label is in the source's vocabulary
func (v *Vocabulary) Contains(source, label string) bool {
	if v.frozen != nil {
		for _, l := range v.frozen[source] {
			if l == label {
				return true
			}
		}
		return false
	}
	_, ok := v.sets[source][label]
	return ok
}

// Counts returns per-label training counts for a source
func (v *Vocabulary) Counts(source string) map[string]int {
	out := make(map[string]int, len(v.counts[source]))
	for label, n := range v.counts[source] {
		out[label] = n
	}
	return out
}

// Sources returns the sources seen so far, sorted
func (v *Vocabulary) Sources() []string {
	var sources []string
	if v.frozen != nil {
		for source := range v.frozen {
			sources = append(sources, source)
		}
	} else {
		for source := range v.sets {
			sources = append(sources, source)
		}
	}
	sort.Strings(sources)
	return sources
}
