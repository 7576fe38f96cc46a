package align

import (
	"sort"

	"subsync/internal/subtitle"
	"subsync/internal/textutil"
)

// CandidateSeq is a restartable sequence of cues to attempt recognition
// against, ordered by descending normalized text length with the original
// track order as tie-break. Longer cues are likelier to carry the minimum
// word count, so they come first to avoid wasted recognition calls.
type CandidateSeq struct {
	cues []subtitle.Cue
	next int
}

// Candidates orders the track's cues for recognition attempts. The input
// track is not modified; the returned sequence is a deterministic, stable
// permutation of it.
func Candidates(track subtitle.Track) *CandidateSeq {
	type keyed struct {
		cue    subtitle.Cue
		length int
	}
	items := make([]keyed, len(track))
	for i, cue := range track {
		items[i] = keyed{cue: cue, length: len(textutil.Normalize(cue.Text))}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].length > items[j].length
	})

	cues := make([]subtitle.Cue, len(items))
	for i, item := range items {
		cues[i] = item.cue
	}
	return &CandidateSeq{cues: cues}
}

// Next returns the following candidate, or false when exhausted.
func (s *CandidateSeq) Next() (subtitle.Cue, bool) {
	if s.next >= len(s.cues) {
		return subtitle.Cue{}, false
	}
	cue := s.cues[s.next]
	s.next++
	return cue, true
}

// Reset rewinds the sequence to its first candidate.
func (s *CandidateSeq) Reset() {
	s.next = 0
}

// Len returns the total number of candidates.
func (s *CandidateSeq) Len() int {
	return len(s.cues)
}
