package align

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"subsync/internal/logging"
	"subsync/internal/media"
	"subsync/internal/services"
	"subsync/internal/subtitle"
)

// State identifies where a sync job is in its lifecycle.
type State string

const (
	StateSampling  State = "sampling"
	StateSolving   State = "solving"
	StateApplying  State = "applying"
	StateDone      State = "done"
	StateExhausted State = "exhausted"
	StateAborted   State = "aborted"
	StateCancelled State = "cancelled"
)

// StateFunc receives job state transitions. Implementations must return
// quickly; the job calls them synchronously.
type StateFunc func(State)

// Outcome is the result of a successful sync job.
type Outcome struct {
	// Track is the transformed cue list; the input track is untouched.
	Track subtitle.Track
	// Transform is the mapping that produced Track, kept for display.
	Transform Transform
	// Anchors are the two confirmed correspondences the transform came from.
	Anchors [2]Anchor
	// Attempts is how many candidate cues were tried.
	Attempts int
}

// Job aligns one subtitle track against one video file. A job holds no
// state across runs and shares nothing with other jobs.
type Job struct {
	extractor  media.AudioExtractor
	recognizer media.Recognizer
	opts       Options
	logger     *slog.Logger
	onState    StateFunc
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewJob builds a sync job around the two external collaborators. A nil
// logger is replaced with a no-op logger.
func NewJob(extractor media.AudioExtractor, recognizer media.Recognizer, opts Options, logger *slog.Logger) *Job {
	return &Job{
		extractor:  extractor,
		recognizer: recognizer,
		opts:       opts,
		logger:     logging.NewComponentLogger(logger, "sync-job"),
		sleep:      sleepContext,
	}
}

// WithStateFunc registers a state transition callback.
func (j *Job) WithStateFunc(fn StateFunc) *Job {
	j.onState = fn
	return j
}

// Run drives the job to completion: sample candidates until two anchors far
// enough apart confirm, solve the transform, and apply it to a copy of the
// track. Failures come back as typed errors; the input track is never
// mutated.
func (j *Job) Run(ctx context.Context, track subtitle.Track, videoPath string) (Outcome, error) {
	j.setState(StateSampling)

	anchors, attempts, err := j.sample(ctx, track, videoPath)
	if err != nil {
		return Outcome{Attempts: attempts}, err
	}

	a, b, ok := bestPair(anchors, j.opts.MinAnchorSeparation)
	if !ok {
		j.setState(StateExhausted)
		return Outcome{Attempts: attempts}, services.Wrap(services.ErrExhausted, "job", "sampling",
			fmt.Sprintf("confirmed %d anchor(s) in %d attempts, need two at least %.0fs apart", len(anchors), attempts, j.opts.MinAnchorSeparation), nil)
	}

	j.setState(StateSolving)
	transform, err := Solve(a, b, j.opts.MinAnchorSeparation)
	if err != nil {
		j.setState(StateAborted)
		return Outcome{Attempts: attempts}, err
	}
	if !transform.Plausible(j.opts.MinScale, j.opts.MaxScale) {
		j.setState(StateAborted)
		return Outcome{Attempts: attempts}, services.Wrap(services.ErrSuspiciousTransform, "job", "solving",
			fmt.Sprintf("%s outside plausible scale range [%.2f, %.2f]", transform, j.opts.MinScale, j.opts.MaxScale), nil)
	}

	j.setState(StateApplying)
	out := transform.Apply(track)

	j.setState(StateDone)
	j.logger.Info("sync complete", logging.Args(
		logging.String("transform", transform.String()),
		logging.Int("attempts", attempts),
	)...)
	return Outcome{Track: out, Transform: transform, Anchors: [2]Anchor{a, b}, Attempts: attempts}, nil
}

// sample pulls candidates until a usable anchor pair exists or candidates
// run out. Only permanent provider failures and cancellation abort it.
func (j *Job) sample(ctx context.Context, track subtitle.Track, videoPath string) ([]Anchor, int, error) {
	seq := Candidates(track)
	var anchors []Anchor
	attempts := 0

	for attempts < j.opts.MaxCandidates {
		if err := ctx.Err(); err != nil {
			j.setState(StateCancelled)
			return anchors, attempts, services.Wrap(services.ErrCancelled, "job", "sampling", "", err)
		}
		cue, ok := seq.Next()
		if !ok {
			break
		}
		attempts++

		anchor, confirmed, err := j.probeCandidate(ctx, cue, videoPath)
		if err != nil {
			return anchors, attempts, err
		}
		if !confirmed {
			continue
		}
		anchors = append(anchors, anchor)
		j.logger.Debug("anchor confirmed", logging.Args(
			logging.Int("cue", cue.Index),
			logging.Float64("subtitle_time", anchor.SubtitleTime),
			logging.Float64("video_time", anchor.VideoTime),
		)...)
		if _, _, ok := bestPair(anchors, j.opts.MinAnchorSeparation); ok {
			return anchors, attempts, nil
		}
	}
	return anchors, attempts, nil
}

// probeCandidate scans recognition windows forward from the cue's stated
// time across the search span. The first confirmed window wins; its start is
// the anchor's true video time.
func (j *Job) probeCandidate(ctx context.Context, cue subtitle.Cue, videoPath string) (Anchor, bool, error) {
	probes := 1
	if j.opts.WindowSeconds > 0 {
		probes = int(j.opts.SearchSpan/j.opts.WindowSeconds) + 1
	}

	for k := 0; k < probes; k++ {
		if err := ctx.Err(); err != nil {
			j.setState(StateCancelled)
			return Anchor{}, false, services.Wrap(services.ErrCancelled, "job", "sampling", "", err)
		}
		windowStart := cue.Start + float64(k)*j.opts.WindowSeconds

		clip, err := j.extractor.ExtractWindow(ctx, videoPath, windowStart, j.opts.WindowSeconds)
		if err != nil {
			// One bad window must not abort the job.
			j.logger.Warn("extraction failed, skipping candidate", logging.Args(
				logging.Int("cue", cue.Index),
				logging.Float64("window_start", windowStart),
				logging.Error(err),
			)...)
			return Anchor{}, false, nil
		}
		if clip.Empty() {
			// Past end of media; later probes only get further past it.
			return Anchor{}, false, nil
		}

		result, err := j.recognize(ctx, clip)
		switch {
		case err == nil:
		case errors.Is(err, services.ErrPermanent):
			j.setState(StateAborted)
			return Anchor{}, false, err
		case ctx.Err() != nil:
			j.setState(StateCancelled)
			return Anchor{}, false, services.Wrap(services.ErrCancelled, "job", "sampling", "", ctx.Err())
		default:
			// Still failing after the retry: treat like a rejection and
			// keep sampling.
			j.logger.Warn("recognition failed", logging.Args(
				logging.Int("cue", cue.Index),
				logging.Float64("window_start", windowStart),
				logging.Error(err),
			)...)
			continue
		}

		outcome := EvaluateMatch(cue, result, windowStart, j.opts)
		switch outcome.Kind {
		case OutcomeConfirmed:
			return outcome.Anchor, true, nil
		case OutcomeRejected:
			j.logger.Debug("window rejected", logging.Args(
				logging.Int("cue", cue.Index),
				logging.Float64("window_start", windowStart),
				logging.String("reason", outcome.Reason),
			)...)
		}
	}
	return Anchor{}, false, nil
}

// recognize calls the provider, retrying a transient failure once after the
// configured backoff.
func (j *Job) recognize(ctx context.Context, clip media.AudioClip) (media.Result, error) {
	result, err := j.recognizer.Recognize(ctx, clip, j.opts.Language)
	if err == nil || !errors.Is(err, services.ErrTransient) {
		return result, err
	}
	if j.opts.RetryBackoff > 0 {
		if sleepErr := j.sleep(ctx, j.opts.RetryBackoff); sleepErr != nil {
			return media.Result{}, sleepErr
		}
	}
	return j.recognizer.Recognize(ctx, clip, j.opts.Language)
}

func (j *Job) setState(state State) {
	j.logger.Debug("state transition", logging.Args(logging.String("state", string(state)))...)
	if j.onState != nil {
		j.onState(state)
	}
}

// bestPair returns the anchor pair with the widest subtitle-time separation
// when that separation meets the minimum.
func bestPair(anchors []Anchor, minSeparation float64) (Anchor, Anchor, bool) {
	var a, b Anchor
	best := 0.0
	for i := 0; i < len(anchors); i++ {
		for k := i + 1; k < len(anchors); k++ {
			sep := math.Abs(anchors[i].SubtitleTime - anchors[k].SubtitleTime)
			if sep > best {
				best = sep
				a, b = anchors[i], anchors[k]
			}
		}
	}
	if best < minSeparation || best == 0 {
		return Anchor{}, Anchor{}, false
	}
	return a, b, true
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
