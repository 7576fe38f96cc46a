package align

import (
	"fmt"
	"math"

	"subsync/internal/services"
	"subsync/internal/subtitle"
)

// Anchor is a confirmed correspondence between a cue's stated subtitle time
// and the true video time its speech was recognized at.
type Anchor struct {
	SubtitleTime float64
	VideoTime    float64
}

// Transform maps subtitle time to video time:
// videoTime = Scale*subtitleTime + Offset. Scale is always positive.
type Transform struct {
	Scale  float64
	Offset float64
}

// Solve derives the transform from two anchors. Anchors whose subtitle
// times are equal or closer than minSeparation fail with a degenerate
// anchors error; so does a non-positive scale, which would break the
// strictly monotonic time mapping.
func Solve(a, b Anchor, minSeparation float64) (Transform, error) {
	separation := math.Abs(b.SubtitleTime - a.SubtitleTime)
	if separation == 0 {
		return Transform{}, services.Wrap(services.ErrDegenerateAnchors, "solver", "solve", "anchors share the same subtitle time", nil)
	}
	if separation < minSeparation {
		return Transform{}, services.Wrap(services.ErrDegenerateAnchors, "solver", "solve",
			fmt.Sprintf("anchors %.3fs apart, need at least %.3fs", separation, minSeparation), nil)
	}

	scale := (b.VideoTime - a.VideoTime) / (b.SubtitleTime - a.SubtitleTime)
	if scale <= 0 {
		return Transform{}, services.Wrap(services.ErrDegenerateAnchors, "solver", "solve",
			fmt.Sprintf("anchors imply non-increasing time mapping (scale %.6f)", scale), nil)
	}
	offset := a.VideoTime - scale*a.SubtitleTime
	return Transform{Scale: scale, Offset: offset}, nil
}

// Map converts a subtitle time to video time.
func (t Transform) Map(seconds float64) float64 {
	return t.Scale*seconds + t.Offset
}

// Inverse returns the transform mapping video time back to subtitle time.
func (t Transform) Inverse() Transform {
	return Transform{Scale: 1 / t.Scale, Offset: -t.Offset / t.Scale}
}

// Plausible reports whether the scale falls inside [min, max]. Known drift
// causes are framerate family mismatches, so anything far from identity is
// more likely a false anchor than a real drift.
func (t Transform) Plausible(min, max float64) bool {
	return t.Scale >= min && t.Scale <= max
}

// Apply maps every cue's start and end through the transform, returning a
// new track. The input track is never mutated, so callers can compare
// before/after or retry with different anchors.
func (t Transform) Apply(track subtitle.Track) subtitle.Track {
	out := make(subtitle.Track, len(track))
	for i, cue := range track {
		out[i] = subtitle.Cue{
			Index: cue.Index,
			Start: t.Map(cue.Start),
			End:   t.Map(cue.End),
			Text:  cue.Text,
		}
	}
	return out
}

func (t Transform) String() string {
	return fmt.Sprintf("scale=%.6f offset=%+.3fs", t.Scale, t.Offset)
}
