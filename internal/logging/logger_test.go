package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsoleHandlerHoistsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	NewComponentLogger(logger, "job").Info("candidate confirmed", Args(
		Int("cue", 12),
		Float64("confidence", 0.91),
	)...)

	line := buf.String()
	if !strings.Contains(line, "INFO job: candidate confirmed") {
		t.Errorf("line missing component prefix: %q", line)
	}
	if !strings.Contains(line, "cue=12") || !strings.Contains(line, "confidence=0.91") {
		t.Errorf("line missing attrs: %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("msg", Args(String("reason", "low confidence"))...)
	if !strings.Contains(buf.String(), `reason="low confidence"`) {
		t.Errorf("expected quoted value, got %q", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("visible")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hello")
	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Errorf("unexpected json output: %q", buf.String())
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	// Must not panic and must not write anywhere.
	NewNop().Error("ignored", Args(Error(nil))...)
}
