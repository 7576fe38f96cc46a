// Package testsupport provides helpers shared by package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"subsync/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Recognizer.APIKey = "test"
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.HistoryDB = filepath.Join(base, "history.db")
	cfg.Batch.Concurrency = 1

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithRecognizerURL points the speech provider at a test server.
func WithRecognizerURL(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Recognizer.BaseURL = url
	}
}

// WithNtfyTopic enables notifications against a test server.
func WithNtfyTopic(topic string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Notifications.NtfyTopic = topic
	}
}
