package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subsync/internal/subtitle"
)

// WriteSRT serializes the track to path, creating parent directories.
func WriteSRT(t testing.TB, path string, track subtitle.Track) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create directory for %s: %v", path, err)
	}
	data, err := subtitle.Serialize(track, "utf-8")
	if err != nil {
		t.Fatalf("serialize subtitle %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write subtitle %s: %v", path, err)
	}
}

// SampleTrack returns n cues spaced ten seconds apart with distinct,
// recognizer-friendly text.
func SampleTrack(n int) subtitle.Track {
	track := make(subtitle.Track, n)
	for i := range track {
		start := float64(i) * 10
		track[i] = subtitle.Cue{
			Index: i + 1,
			Start: start,
			End:   start + 3,
			Text:  fmt.Sprintf("this is spoken line number %d of the sample dialogue", i+1),
		}
	}
	return track
}

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create directory for %s: %v", path, err)
	}
	data := strings.Repeat("x", int(size))
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}
