package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Sync holds the alignment engine thresholds.
type Sync struct {
	Language                   string  `toml:"language"`
	Encoding                   string  `toml:"encoding"`
	MinConfidence              float64 `toml:"min_confidence"`
	MinWordOverlap             int     `toml:"min_word_overlap"`
	WindowSeconds              float64 `toml:"window_seconds"`
	SearchSpanSeconds          float64 `toml:"search_span_seconds"`
	MinAnchorSeparationSeconds float64 `toml:"min_anchor_separation_seconds"`
	MaxCandidates              int     `toml:"max_candidates"`
	MinScale                   float64 `toml:"min_scale"`
	MaxScale                   float64 `toml:"max_scale"`
	RetryBackoffSeconds        float64 `toml:"retry_backoff_seconds"`
}

// Batch holds orchestrator concurrency and provider backpressure settings.
type Batch struct {
	Concurrency          int `toml:"concurrency"`
	RecognizerIntervalMS int `toml:"recognizer_interval_ms"`
}

// Recognizer holds speech recognition provider settings.
type Recognizer struct {
	APIKey                string `toml:"api_key"`
	BaseURL               string `toml:"base_url"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
}

// Paths holds directory and database locations.
type Paths struct {
	LogDir    string `toml:"log_dir"`
	HistoryDB string `toml:"history_db"`
}

// Tools holds external binary locations.
type Tools struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

// Logging holds logger construction settings.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Notifications holds ntfy push notification settings.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	Batch          bool   `toml:"batch"`
	Errors         bool   `toml:"errors"`
}

// Config is the root configuration document.
type Config struct {
	Sync          Sync          `toml:"sync"`
	Batch         Batch         `toml:"batch"`
	Recognizer    Recognizer    `toml:"recognizer"`
	Paths         Paths         `toml:"paths"`
	Tools         Tools         `toml:"tools"`
	Logging       Logging       `toml:"logging"`
	Notifications Notifications `toml:"notifications"`
}

// DefaultPath returns the default configuration file location.
func DefaultPath() string {
	return expandHome("~/.config/subsync/config.toml")
}

// Load reads the TOML file at path, fills defaults for unset values, and
// validates the result. A missing file yields the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path = strings.TrimSpace(path); path == "" {
		path = DefaultPath()
	}
	data, err := os.ReadFile(expandHome(path))
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// Defaults apply.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WriteSample writes the embedded sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	path = expandHome(path)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure config directory: %w", err)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

// EnsureDirectories creates the directories the application writes to.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir, filepath.Dir(c.Paths.HistoryDB)}
	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure directory %s: %w", dir, err)
		}
	}
	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
