package config

import (
	"fmt"
	"strings"

	"subsync/internal/services"
)

func (c *Config) normalize() {
	def := Default()

	if strings.TrimSpace(c.Sync.Language) == "" {
		c.Sync.Language = def.Sync.Language
	}
	if strings.TrimSpace(c.Sync.Encoding) == "" {
		c.Sync.Encoding = def.Sync.Encoding
	}
	if c.Sync.MinConfidence == 0 {
		c.Sync.MinConfidence = def.Sync.MinConfidence
	}
	if c.Sync.MinWordOverlap == 0 {
		c.Sync.MinWordOverlap = def.Sync.MinWordOverlap
	}
	if c.Sync.WindowSeconds == 0 {
		c.Sync.WindowSeconds = def.Sync.WindowSeconds
	}
	if c.Sync.SearchSpanSeconds == 0 {
		c.Sync.SearchSpanSeconds = def.Sync.SearchSpanSeconds
	}
	if c.Sync.MinAnchorSeparationSeconds == 0 {
		c.Sync.MinAnchorSeparationSeconds = def.Sync.MinAnchorSeparationSeconds
	}
	if c.Sync.MaxCandidates == 0 {
		c.Sync.MaxCandidates = def.Sync.MaxCandidates
	}
	if c.Sync.MinScale == 0 {
		c.Sync.MinScale = def.Sync.MinScale
	}
	if c.Sync.MaxScale == 0 {
		c.Sync.MaxScale = def.Sync.MaxScale
	}
	if c.Sync.RetryBackoffSeconds == 0 {
		c.Sync.RetryBackoffSeconds = def.Sync.RetryBackoffSeconds
	}
	if c.Batch.Concurrency == 0 {
		c.Batch.Concurrency = def.Batch.Concurrency
	}
	if c.Batch.RecognizerIntervalMS == 0 {
		c.Batch.RecognizerIntervalMS = def.Batch.RecognizerIntervalMS
	}
	if strings.TrimSpace(c.Recognizer.BaseURL) == "" {
		c.Recognizer.BaseURL = def.Recognizer.BaseURL
	}
	if c.Recognizer.RequestTimeoutSeconds == 0 {
		c.Recognizer.RequestTimeoutSeconds = def.Recognizer.RequestTimeoutSeconds
	}
	if strings.TrimSpace(c.Tools.FFmpeg) == "" {
		c.Tools.FFmpeg = def.Tools.FFmpeg
	}
	if strings.TrimSpace(c.Tools.FFprobe) == "" {
		c.Tools.FFprobe = def.Tools.FFprobe
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = def.Paths.LogDir
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		c.Paths.HistoryDB = def.Paths.HistoryDB
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = def.Logging.Level
	}
	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = def.Logging.Format
	}
	if c.Notifications.RequestTimeout == 0 {
		c.Notifications.RequestTimeout = def.Notifications.RequestTimeout
	}

	c.Paths.LogDir = expandHome(c.Paths.LogDir)
	c.Paths.HistoryDB = expandHome(c.Paths.HistoryDB)
}

// Validate rejects settings the engine cannot operate with.
func (c *Config) Validate() error {
	fail := func(field, detail string) error {
		return services.Wrap(services.ErrConfiguration, "config", field, detail, nil)
	}

	if c.Sync.MinConfidence <= 0 || c.Sync.MinConfidence > 1 {
		return fail("sync.min_confidence", fmt.Sprintf("must be in (0, 1], got %v", c.Sync.MinConfidence))
	}
	if c.Sync.MinWordOverlap < 1 {
		return fail("sync.min_word_overlap", fmt.Sprintf("must be at least 1, got %d", c.Sync.MinWordOverlap))
	}
	if c.Sync.WindowSeconds <= 0 {
		return fail("sync.window_seconds", fmt.Sprintf("must be positive, got %v", c.Sync.WindowSeconds))
	}
	if c.Sync.SearchSpanSeconds < 0 {
		return fail("sync.search_span_seconds", fmt.Sprintf("must not be negative, got %v", c.Sync.SearchSpanSeconds))
	}
	if c.Sync.MinAnchorSeparationSeconds <= 0 {
		return fail("sync.min_anchor_separation_seconds", fmt.Sprintf("must be positive, got %v", c.Sync.MinAnchorSeparationSeconds))
	}
	if c.Sync.MaxCandidates < 1 {
		return fail("sync.max_candidates", fmt.Sprintf("must be at least 1, got %d", c.Sync.MaxCandidates))
	}
	if c.Sync.MinScale <= 0 || c.Sync.MaxScale <= c.Sync.MinScale {
		return fail("sync.min_scale", fmt.Sprintf("require 0 < min_scale < max_scale, got %v and %v", c.Sync.MinScale, c.Sync.MaxScale))
	}
	if c.Sync.RetryBackoffSeconds < 0 {
		return fail("sync.retry_backoff_seconds", fmt.Sprintf("must not be negative, got %v", c.Sync.RetryBackoffSeconds))
	}
	if c.Batch.Concurrency < 1 {
		return fail("batch.concurrency", fmt.Sprintf("must be at least 1, got %d", c.Batch.Concurrency))
	}
	if c.Batch.RecognizerIntervalMS < 0 {
		return fail("batch.recognizer_interval_ms", fmt.Sprintf("must not be negative, got %d", c.Batch.RecognizerIntervalMS))
	}
	if c.Recognizer.RequestTimeoutSeconds < 1 {
		return fail("recognizer.request_timeout_seconds", fmt.Sprintf("must be at least 1, got %d", c.Recognizer.RequestTimeoutSeconds))
	}
	return nil
}
