package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrParse marks unreadable or malformed subtitle input, including a
	// wrong caller-selected encoding.
	ErrParse = errors.New("subtitle parse error")
	// ErrExtraction marks a failed audio window extraction. Jobs treat it
	// as non-fatal and skip the candidate.
	ErrExtraction = errors.New("audio extraction error")
	// ErrTransient marks a retryable recognition provider failure.
	ErrTransient = errors.New("transient provider failure")
	// ErrPermanent marks a non-retryable provider failure such as an
	// exhausted quota or an unsupported language.
	ErrPermanent = errors.New("permanent provider failure")
	// ErrDegenerateAnchors marks anchor pairs too close in subtitle time
	// to derive a stable transform.
	ErrDegenerateAnchors = errors.New("degenerate anchors")
	// ErrSuspiciousTransform marks a solved transform whose scale falls
	// outside the configured plausible range.
	ErrSuspiciousTransform = errors.New("suspicious transform")
	// ErrExhausted marks a job that ran out of candidates before
	// confirming two anchors.
	ErrExhausted = errors.New("candidates exhausted")
	// ErrCancelled marks work abandoned due to caller cancellation.
	ErrCancelled = errors.New("cancelled")
	// ErrValidation marks rejected caller input.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks unusable configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrInternal marks unexpected engine faults recovered at an
	// isolation boundary.
	ErrInternal = errors.New("internal failure")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrInternal
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind returns a short stable label for the error's sentinel marker, used in
// batch reports so users see which failure class occurred per file.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrExtraction):
		return "extraction"
	case errors.Is(err, ErrTransient):
		return "transient-provider"
	case errors.Is(err, ErrPermanent):
		return "permanent-provider"
	case errors.Is(err, ErrDegenerateAnchors):
		return "degenerate-anchors"
	case errors.Is(err, ErrSuspiciousTransform):
		return "suspicious-transform"
	case errors.Is(err, ErrExhausted):
		return "exhausted"
	case errors.Is(err, ErrCancelled):
		return "cancelled"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	default:
		return "internal"
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
