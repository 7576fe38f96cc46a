package batch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"subsync/internal/media"
)

type countingRecognizer struct {
	mu    sync.Mutex
	calls int
}

func (r *countingRecognizer) Recognize(context.Context, media.AudioClip, string) (media.Result, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	return media.Result{Kind: media.ResultNoSpeech}, nil
}

func TestThrottleRecognizerSpacesSlots(t *testing.T) {
	inner := &countingRecognizer{}
	recognizer := ThrottleRecognizer(inner, 100*time.Millisecond).(*throttledRecognizer)

	now := time.Unix(1000, 0)
	recognizer.now = func() time.Time { return now }

	var waits []time.Duration
	recognizer.sleep = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}

	clip := media.AudioClip{Data: []byte("pcm")}
	for i := 0; i < 3; i++ {
		if _, err := recognizer.Recognize(context.Background(), clip, "en-US"); err != nil {
			t.Fatalf("Recognize %d: %v", i, err)
		}
	}

	// First call goes straight through; with a frozen clock each later
	// call queues one interval behind the previous slot.
	want := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}
	if len(waits) != len(want) {
		t.Fatalf("slept %d times (%v), want %d", len(waits), waits, len(want))
	}
	for i := range want {
		if waits[i] != want[i] {
			t.Errorf("wait %d = %v, want %v", i, waits[i], want[i])
		}
	}
	if inner.calls != 3 {
		t.Errorf("inner called %d times, want 3", inner.calls)
	}
}

func TestThrottleRecognizerCancelledWhileWaiting(t *testing.T) {
	inner := &countingRecognizer{}
	recognizer := ThrottleRecognizer(inner, time.Hour).(*throttledRecognizer)

	ctx, cancel := context.WithCancel(context.Background())
	clip := media.AudioClip{Data: []byte("pcm")}

	// Consume the free slot, then cancel before the next slot opens.
	if _, err := recognizer.Recognize(ctx, clip, "en-US"); err != nil {
		t.Fatalf("first Recognize: %v", err)
	}
	cancel()
	if _, err := recognizer.Recognize(ctx, clip, "en-US"); !errors.Is(err, context.Canceled) {
		t.Fatalf("second Recognize = %v, want context.Canceled", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner called %d times, want 1", inner.calls)
	}
}

func TestThrottleRecognizerNonPositiveIntervalIsPassthrough(t *testing.T) {
	inner := &countingRecognizer{}
	if got := ThrottleRecognizer(inner, 0); got != media.Recognizer(inner) {
		t.Error("zero interval should return the inner recognizer unchanged")
	}
}
