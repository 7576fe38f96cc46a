package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"subsync/internal/services"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Sync.MinConfidence != 0.70 {
		t.Errorf("MinConfidence = %v, want 0.70", cfg.Sync.MinConfidence)
	}
	if cfg.Sync.MinWordOverlap != 3 {
		t.Errorf("MinWordOverlap = %v, want 3", cfg.Sync.MinWordOverlap)
	}
	if cfg.Sync.WindowSeconds != 2.5 {
		t.Errorf("WindowSeconds = %v, want 2.5", cfg.Sync.WindowSeconds)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Batch.Concurrency != 2 {
		t.Errorf("Concurrency = %d, want default 2", cfg.Batch.Concurrency)
	}
}

func TestLoadOverridesAndFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[sync]
min_confidence = 0.85
language = "fr-FR"

[batch]
concurrency = 4
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sync.MinConfidence != 0.85 {
		t.Errorf("MinConfidence = %v, want 0.85", cfg.Sync.MinConfidence)
	}
	if cfg.Sync.Language != "fr-FR" {
		t.Errorf("Language = %q, want fr-FR", cfg.Sync.Language)
	}
	if cfg.Batch.Concurrency != 4 {
		t.Errorf("Concurrency = %d, want 4", cfg.Batch.Concurrency)
	}
	// Unset values fall back to defaults.
	if cfg.Sync.MinWordOverlap != 3 {
		t.Errorf("MinWordOverlap = %d, want default 3", cfg.Sync.MinWordOverlap)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"confidence above one", "[sync]\nmin_confidence = 1.5\n"},
		{"negative overlap", "[sync]\nmin_word_overlap = -1\n"},
		{"inverted scale bounds", "[sync]\nmin_scale = 2.0\nmax_scale = 0.5\n"},
		{"negative concurrency", "[batch]\nconcurrency = -3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, err := Load(path)
			if !errors.Is(err, services.ErrConfiguration) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if err := WriteSample(path); err == nil {
		t.Fatal("expected error when sample already exists")
	}
}
