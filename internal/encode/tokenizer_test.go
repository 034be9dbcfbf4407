package encode

import "testing"

func TestBuildInput_PadsToMaxLength(t *testing.T) {
	in := BuildInput([]int{11, 12, 13}, nil, 8, 0)

	if len(in.InputIDs) != 8 {
		t.Fatalf("Expected 8 ids, got %d", len(in.InputIDs))
	}
	if in.Truncated {
		t.Error("Expected no truncation")
	}

	for i, want := range []int{11, 12, 13, 0, 0, 0, 0, 0} {
		if in.InputIDs[i] != want {
			t.Errorf("Position %d: expected %d, got %d", i, want, in.InputIDs[i])
		}
	}
	for i, want := range []int{1, 1, 1, 0, 0, 0, 0, 0} {
		if in.AttentionMask[i] != want {
			t.Errorf("Mask position %d: expected %d, got %d", i, want, in.AttentionMask[i])
		}
	}
}

func TestBuildInput_SegmentIDs(t *testing.T) {
	in := BuildInput([]int{1, 2}, []int{3, 4, 5}, 8, 0)

	want := []int{0, 0, 1, 1, 1, 0, 0, 0}
	for i := range want {
		if in.SegmentIDs[i] != want[i] {
			t.Errorf("Segment position %d: expected %d, got %d", i, want[i], in.SegmentIDs[i])
		}
	}
	if len(in.SegmentIDs) != 8 || len(in.AttentionMask) != 8 {
		t.Error("Expected mask and segments to match max length")
	}
}

func TestBuildInput_TruncatesPairLongestFirst(t *testing.T) {
	idsA := []int{1, 2, 3, 4, 5, 6}
	idsB := []int{7, 8}

	in := BuildInput(idsA, idsB, 6, 0)

	if !in.Truncated {
		t.Fatal("Expected truncation flag")
	}
	if len(in.InputIDs) != 6 {
		t.Fatalf("Expected 6 ids, got %d", len(in.InputIDs))
	}

	// The longer segment loses tokens first: A shrinks to 4, B keeps 2
	segA, segB := 0, 0
	for _, s := range in.SegmentIDs {
		switch s {
		case 0:
			segA++
		case 1:
			segB++
		}
	}
	if segB != 2 {
		t.Errorf("Expected second segment to keep 2 tokens, got %d", segB)
	}
}

func TestBuildInput_TruncatesSingleSegment(t *testing.T) {
	ids := make([]int, 20)
	for i := range ids {
		ids[i] = i + 1
	}

	in := BuildInput(ids, nil, 5, 0)
	if !in.Truncated {
		t.Error("Expected truncation flag")
	}
	if len(in.InputIDs) != 5 {
		t.Errorf("Expected 5 ids, got %d", len(in.InputIDs))
	}
}

func TestBuildInput_CustomPadID(t *testing.T) {
	in := BuildInput([]int{9}, nil, 3, -1)
	if in.InputIDs[1] != -1 || in.InputIDs[2] != -1 {
		t.Errorf("Expected pad id -1, got %v", in.InputIDs)
	}
}
