package batch

import (
	"context"
	"sync"
	"time"

	"subsync/internal/media"
)

// throttledRecognizer spaces provider calls at least interval apart across
// every worker sharing it. Each caller reserves the next slot under the
// mutex, then waits out its own delay without blocking other reservations.
type throttledRecognizer struct {
	inner    media.Recognizer
	interval time.Duration

	mu   sync.Mutex
	next time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// ThrottleRecognizer wraps inner so concurrent callers collectively stay
// under the provider's rate limit. A non-positive interval returns inner
// unchanged.
func ThrottleRecognizer(inner media.Recognizer, interval time.Duration) media.Recognizer {
	if interval <= 0 {
		return inner
	}
	return &throttledRecognizer{
		inner:    inner,
		interval: interval,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

func (t *throttledRecognizer) Recognize(ctx context.Context, clip media.AudioClip, language string) (media.Result, error) {
	wait := t.reserve()
	if wait > 0 {
		if err := t.sleep(ctx, wait); err != nil {
			return media.Result{}, err
		}
	}
	return t.inner.Recognize(ctx, clip, language)
}

func (t *throttledRecognizer) reserve() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	slot := t.next
	if slot.Before(now) {
		slot = now
	}
	t.next = slot.Add(t.interval)
	return slot.Sub(now)
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
