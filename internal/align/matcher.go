package align

import (
	"subsync/internal/media"
	"subsync/internal/subtitle"
	"subsync/internal/textutil"
)

// OutcomeKind discriminates match outcomes.
type OutcomeKind int

const (
	// OutcomeInconclusive means the window told us nothing about the cue
	// (no speech, or nothing recognizable after normalization).
	OutcomeInconclusive OutcomeKind = iota
	// OutcomeConfirmed means the recognized speech belongs to the cue.
	OutcomeConfirmed
	// OutcomeRejected means the window failed a threshold.
	OutcomeRejected
)

// Rejection reasons carried on MatchOutcome.
const (
	ReasonLowConfidence       = "low confidence"
	ReasonInsufficientOverlap = "insufficient overlap"
)

// MatchOutcome is the confidence matcher's verdict. Anchor is only
// meaningful when Kind is OutcomeConfirmed; Reason only when Rejected.
type MatchOutcome struct {
	Kind   OutcomeKind
	Reason string
	Anchor Anchor
}

// EvaluateMatch decides whether a recognition result from the audio window
// starting at windowStart confirms the cue. Both thresholds are inclusive:
// confidence exactly at MinConfidence and overlap exactly at MinWordOverlap
// confirm. Deterministic and side-effect free.
func EvaluateMatch(cue subtitle.Cue, result media.Result, windowStart float64, opts Options) MatchOutcome {
	if result.Kind != media.ResultRecognized {
		return MatchOutcome{Kind: OutcomeInconclusive}
	}
	if result.Confidence < opts.MinConfidence {
		return MatchOutcome{Kind: OutcomeRejected, Reason: ReasonLowConfidence}
	}

	recognized := textutil.WordSet(result.Transcript)
	if len(recognized) == 0 {
		return MatchOutcome{Kind: OutcomeInconclusive}
	}

	cueWords := textutil.WordSet(cue.Text)
	// Short cues are too likely to match by accident, whatever the overlap.
	if len(cueWords) < opts.MinWordOverlap {
		return MatchOutcome{Kind: OutcomeRejected, Reason: ReasonInsufficientOverlap}
	}
	if textutil.OverlapCount(cueWords, recognized) < opts.MinWordOverlap {
		return MatchOutcome{Kind: OutcomeRejected, Reason: ReasonInsufficientOverlap}
	}

	// Overlap cannot pinpoint word-level timing, so the anchor's true time
	// is the window start.
	return MatchOutcome{
		Kind: OutcomeConfirmed,
		Anchor: Anchor{
			SubtitleTime: cue.Start,
			VideoTime:    windowStart,
		},
	}
}
