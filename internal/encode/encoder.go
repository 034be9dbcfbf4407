package encode

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/ppiankov/factprep/internal/model"
)

// Strategy selects how a claim and its evidence are paired into choices
type Strategy string

const (
	// StrategyEvidencePair encodes each evidence passage paired with the
	// claim (claim first segment, evidence second): evidence-count choices.
	StrategyEvidencePair Strategy = "evidence-pair"

	// StrategyClaimEvidence encodes the claim alone as choice 0, then each
	// evidence passage alone: evidence-count + 1 choices.
	StrategyClaimEvidence Strategy = "claim-evidence"
)

// ParseStrategy validates a strategy name
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyEvidencePair, StrategyClaimEvidence:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown strategy %q (want %q or %q)", s, StrategyEvidencePair, StrategyClaimEvidence)
	}
}

// Encoder converts claim examples into fixed-shape feature records
type Encoder struct {
	tok       Tokenizer
	maxLength int
	verbose   bool
	progress  *rate.Limiter
}

// NewEncoder creates an encoder over a tokenizing capability
func NewEncoder(tok Tokenizer, maxLength int, verbose bool) *Encoder {
	return &Encoder{
		tok:       tok,
		maxLength: maxLength,
		progress:  rate.NewLimiter(rate.Every(time.Second), 1),
		verbose:   verbose,
	}
}

// Convert encodes examples under the given strategy. The label list must be
// the frozen vocabulary for the examples' source: label at position i maps
// to index i. Attention masks and segment ids are included only when the
// tokenizer produced them for every choice of the first example; divergence
// after that is a tokenizer contract violation, not something to paper over
// per example. Truncated choices are warned about and still emitted.
func (e *Encoder) Convert(examples []model.ClaimExample, labels []string, strategy Strategy) ([]model.FeatureRecord, error) {
	labelMap := make(map[string]int, len(labels))
	for i, label := range labels {
		labelMap[label] = i
	}

	withMask, withSegments := false, false
	truncated := 0

	features := make([]model.FeatureRecord, 0, len(examples))
	for n, example := range examples {
		choices, err := e.encodeChoices(example, strategy)
		if err != nil {
			return nil, fmt.Errorf("example %s: %w", example.ID, err)
		}

		for _, choice := range choices {
			if len(choice.InputIDs) != e.maxLength {
				return nil, fmt.Errorf("example %s: tokenizer returned %d ids, want %d", example.ID, len(choice.InputIDs), e.maxLength)
			}
			if choice.Truncated {
				truncated++
			}
		}

		if n == 0 {
			withMask, err = batchDecision(choices, func(in Input) bool { return in.AttentionMask != nil }, "attention mask")
			if err != nil {
				return nil, fmt.Errorf("example %s: %w", example.ID, err)
			}
			withSegments, err = batchDecision(choices, func(in Input) bool { return in.SegmentIDs != nil }, "segment ids")
			if err != nil {
				return nil, fmt.Errorf("example %s: %w", example.ID, err)
			}
		}

		index, ok := labelMap[example.Label]
		if !ok {
			return nil, fmt.Errorf("example %s: label %q not in label list", example.ID, example.Label)
		}

		record := model.FeatureRecord{
			ID:       example.ID,
			InputIDs: make([][]int, len(choices)),
			Label:    index,
		}
		if withMask {
			record.AttentionMask = make([][]int, len(choices))
		}
		if withSegments {
			record.SegmentIDs = make([][]int, len(choices))
		}

		for i, choice := range choices {
			record.InputIDs[i] = choice.InputIDs
			if withMask {
				if choice.AttentionMask == nil {
					return nil, fmt.Errorf("example %s: tokenizer stopped returning attention masks", example.ID)
				}
				record.AttentionMask[i] = choice.AttentionMask
			}
			if withSegments {
				if choice.SegmentIDs == nil {
					return nil, fmt.Errorf("example %s: tokenizer stopped returning segment ids", example.ID)
				}
				record.SegmentIDs[i] = choice.SegmentIDs
			}
		}

		features = append(features, record)

		if e.verbose && e.progress.Allow() {
			fmt.Fprintf(os.Stderr, "Encoded %d/%d examples\n", n+1, len(examples))
		}
	}

	if truncated > 0 && e.verbose {
		fmt.Fprintf(os.Stderr, "Warning: %d choices were truncated to max length %d; consider a larger max length\n", truncated, e.maxLength)
	}

	return features, nil
}

// encodeChoices produces the ordered tokenized choices for one example
func (e *Encoder) encodeChoices(example model.ClaimExample, strategy Strategy) ([]Input, error) {
	var choices []Input

	switch strategy {
	case StrategyEvidencePair:
		for _, evidence := range example.Evidences {
			in, err := e.tok.Tokenize(example.Claim, evidence, e.maxLength)
			if err != nil {
				return nil, err
			}
			choices = append(choices, in)
		}
	case StrategyClaimEvidence:
		in, err := e.tok.Tokenize(example.Claim, "", e.maxLength)
		if err != nil {
			return nil, err
		}
		choices = append(choices, in)
		for _, evidence := range example.Evidences {
			in, err := e.tok.Tokenize(evidence, "", e.maxLength)
			if err != nil {
				return nil, err
			}
			choices = append(choices, in)
		}
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}

	return choices, nil
}

// batchDecision decides, from the first example's choices, whether an
// optional field is carried for the whole batch. Partial availability
// within the example is a configuration error.
func batchDecision(choices []Input, present func(Input) bool, field string) (bool, error) {
	count := 0
	for _, choice := range choices {
		if present(choice) {
			count++
		}
	}
	switch count {
	case 0:
		return false, nil
	case len(choices):
		return true, nil
	default:
		return false, fmt.Errorf("tokenizer returned %s for %d of %d choices; all or none required", field, count, len(choices))
	}
}
