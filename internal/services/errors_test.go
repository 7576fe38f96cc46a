package services

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapPreservesMarkerAndCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(ErrTransient, "recognizer", "recognize", "request failed", cause)

	if !errors.Is(err, ErrTransient) {
		t.Fatalf("expected marker ErrTransient in chain, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause in chain, got %v", err)
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := Wrap(ErrExhausted, "job", "sampling", "no candidates left", nil)
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
	want := "candidates exhausted: job: sampling: no candidates left"
	if err.Error() != want {
		t.Fatalf("error = %q, want %q", err.Error(), want)
	}
}

func TestWrapNilMarkerFallsBackToInternal(t *testing.T) {
	err := Wrap(nil, "batch", "worker", "panic recovered", nil)
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal fallback, got %v", err)
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{Wrap(ErrParse, "subtitle", "decode", "", nil), "parse"},
		{Wrap(ErrExtraction, "extractor", "window", "", nil), "extraction"},
		{Wrap(ErrTransient, "recognizer", "", "", nil), "transient-provider"},
		{Wrap(ErrPermanent, "recognizer", "", "", nil), "permanent-provider"},
		{Wrap(ErrDegenerateAnchors, "solver", "", "", nil), "degenerate-anchors"},
		{Wrap(ErrSuspiciousTransform, "job", "", "", nil), "suspicious-transform"},
		{Wrap(ErrExhausted, "job", "", "", nil), "exhausted"},
		{Wrap(ErrCancelled, "batch", "", "", nil), "cancelled"},
		{fmt.Errorf("untagged"), "internal"},
	}
	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
