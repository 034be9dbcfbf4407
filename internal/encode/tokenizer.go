package encode

// Input is one tokenized choice: a fixed-length token id sequence with
// optional attention mask and segment ids of the same length.
type Input struct {
	InputIDs      []int
	AttentionMask []int // nil when the tokenizer does not produce masks
	SegmentIDs    []int // nil when the tokenizer does not produce segment ids
	Truncated     bool  // Whether tokens were dropped to fit max length
}

// Tokenizer converts text into fixed-length token id sequences. An empty
// textB means single-segment encoding. Implementations must pad or truncate
// to exactly maxLength.
type Tokenizer interface {
	Tokenize(textA, textB string, maxLength int) (Input, error)
}

// BuildInput assembles raw token ids for one or two segments into a padded
// fixed-length Input. Pairs are truncated longest-first when they exceed
// maxLength; masks are 1 for real tokens and 0 for padding; segment ids are
// 0 for the first segment and padding, 1 for the second.
func BuildInput(idsA, idsB []int, maxLength, padID int) Input {
	truncated := truncatePair(&idsA, &idsB, maxLength)

	ids := make([]int, 0, maxLength)
	mask := make([]int, 0, maxLength)
	segments := make([]int, 0, maxLength)

	for _, id := range idsA {
		ids = append(ids, id)
		mask = append(mask, 1)
		segments = append(segments, 0)
	}
	for _, id := range idsB {
		ids = append(ids, id)
		mask = append(mask, 1)
		segments = append(segments, 1)
	}
	for len(ids) < maxLength {
		ids = append(ids, padID)
		mask = append(mask, 0)
		segments = append(segments, 0)
	}

	return Input{
		InputIDs:      ids,
		AttentionMask: mask,
		SegmentIDs:    segments,
		Truncated:     truncated,
	}
}

// truncatePair trims the longer of the two sequences one token at a time
// until they fit, so both segments keep proportional coverage
func truncatePair(idsA, idsB *[]int, maxLength int) bool {
	truncated := false
	for len(*idsA)+len(*idsB) > maxLength {
		truncated = true
		if len(*idsA) >= len(*idsB) && len(*idsA) > 0 {
			*idsA = (*idsA)[:len(*idsA)-1]
		} else {
			*idsB = (*idsB)[:len(*idsB)-1]
		}
	}
	return truncated
}
