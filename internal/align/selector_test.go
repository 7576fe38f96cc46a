package align

import (
	"testing"

	"subsync/internal/subtitle"
)

func TestCandidatesOrdersByNormalizedLength(t *testing.T) {
	track := subtitle.Track{
		{Index: 1, Start: 1, End: 2, Text: "short"},
		{Index: 2, Start: 3, End: 4, Text: "a considerably longer piece of dialogue"},
		{Index: 3, Start: 5, End: 6, Text: "medium length line"},
	}

	seq := Candidates(track)
	if seq.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", seq.Len())
	}

	var order []int
	for {
		cue, ok := seq.Next()
		if !ok {
			break
		}
		order = append(order, cue.Index)
	}
	want := []int{2, 3, 1}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("candidate order = %v, want %v", order, want)
		}
	}
}

func TestCandidatesIsStableForEqualLengths(t *testing.T) {
	track := subtitle.Track{
		{Index: 1, Text: "same size"},
		{Index: 2, Text: "SAME SIZE"},
		{Index: 3, Text: "same size"},
	}

	seq := Candidates(track)
	for want := 1; want <= 3; want++ {
		cue, ok := seq.Next()
		if !ok {
			t.Fatalf("Next() exhausted at index %d", want)
		}
		if cue.Index != want {
			t.Errorf("tie-broken order: got cue %d, want %d", cue.Index, want)
		}
	}
}

func TestCandidatesNormalizationIgnoresPunctuation(t *testing.T) {
	// Punctuation padding must not outrank real words.
	track := subtitle.Track{
		{Index: 1, Text: "!!!???...---"},
		{Index: 2, Text: "actual words"},
	}

	seq := Candidates(track)
	cue, _ := seq.Next()
	if cue.Index != 2 {
		t.Errorf("first candidate = cue %d, want 2", cue.Index)
	}
}

func TestCandidatesResetRewinds(t *testing.T) {
	track := subtitle.Track{
		{Index: 1, Text: "one line of text"},
		{Index: 2, Text: "two"},
	}

	seq := Candidates(track)
	first, _ := seq.Next()
	seq.Next()
	if _, ok := seq.Next(); ok {
		t.Fatal("Next() after exhaustion returned a cue")
	}

	seq.Reset()
	again, ok := seq.Next()
	if !ok || again.Index != first.Index {
		t.Errorf("after Reset: got cue %d ok=%v, want cue %d", again.Index, ok, first.Index)
	}
}

func TestCandidatesDoesNotMutateTrack(t *testing.T) {
	track := subtitle.Track{
		{Index: 1, Text: "bb"},
		{Index: 2, Text: "aaaa"},
	}
	Candidates(track)

	if track[0].Index != 1 || track[1].Index != 2 {
		t.Errorf("input track reordered: %v", track)
	}
}
