package align

import (
	"time"

	"subsync/internal/config"
)

// Options are the immutable per-job engine settings. Jobs receive a value
// copy; nothing mutates options after construction.
type Options struct {
	// Language is the recognition language tag (e.g. "en-US").
	Language string
	// MinConfidence is the inclusive lower bound on provider confidence.
	MinConfidence float64
	// MinWordOverlap is the inclusive lower bound on distinct shared
	// words; cues with fewer words are never used as anchors.
	MinWordOverlap int
	// WindowSeconds is the recognized audio window length.
	WindowSeconds float64
	// SearchSpan is how far past a cue's stated time windows are probed
	// before moving to the next candidate.
	SearchSpan float64
	// MinAnchorSeparation is the minimum subtitle-time distance between
	// the two anchors used to solve a transform.
	MinAnchorSeparation float64
	// MaxCandidates caps how many cues a job attempts before giving up.
	MaxCandidates int
	// MinScale and MaxScale bound the plausible transform scale; results
	// outside the range are refused as suspicious.
	MinScale float64
	MaxScale float64
	// RetryBackoff is the wait before the single retry of a transient
	// recognition failure.
	RetryBackoff time.Duration
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default().Sync)
}

// OptionsFromConfig converts the sync configuration section into engine
// options.
func OptionsFromConfig(sync config.Sync) Options {
	return Options{
		Language:            sync.Language,
		MinConfidence:       sync.MinConfidence,
		MinWordOverlap:      sync.MinWordOverlap,
		WindowSeconds:       sync.WindowSeconds,
		SearchSpan:          sync.SearchSpanSeconds,
		MinAnchorSeparation: sync.MinAnchorSeparationSeconds,
		MaxCandidates:       sync.MaxCandidates,
		MinScale:            sync.MinScale,
		MaxScale:            sync.MaxScale,
		RetryBackoff:        time.Duration(sync.RetryBackoffSeconds * float64(time.Second)),
	}
}
