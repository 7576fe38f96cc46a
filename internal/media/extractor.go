package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"subsync/internal/services"
)

// FFmpegCommand is the default binary used for audio extraction.
const FFmpegCommand = "ffmpeg"

// extractSampleRate is the output sample rate recognition providers expect.
const extractSampleRate = 16000

// wavHeaderBytes is the size of a canonical RIFF/WAVE header; an output file
// no larger than this carries no samples.
const wavHeaderBytes = 44

// FFmpegExtractor extracts mono 16 kHz WAV windows by shelling out to ffmpeg.
type FFmpegExtractor struct {
	binary  string
	workDir string
	runner  func(ctx context.Context, name string, args ...string) error
}

// NewFFmpegExtractor creates an extractor writing temporary windows under
// workDir (the system temp directory when empty).
func NewFFmpegExtractor(binary, workDir string) *FFmpegExtractor {
	if binary == "" {
		binary = FFmpegCommand
	}
	return &FFmpegExtractor{binary: binary, workDir: workDir}
}

// WithCommandRunner sets a custom command runner (for testing).
func (e *FFmpegExtractor) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) *FFmpegExtractor {
	e.runner = runner
	return e
}

// ExtractWindow extracts durationSec seconds of audio starting at startSec.
// A window past the end of the media yields an empty clip, not an error.
func (e *FFmpegExtractor) ExtractWindow(ctx context.Context, videoPath string, startSec, durationSec float64) (AudioClip, error) {
	if durationSec <= 0 {
		return AudioClip{}, services.Wrap(services.ErrExtraction, "extractor", "window", fmt.Sprintf("invalid duration %v", durationSec), nil)
	}
	if startSec < 0 {
		startSec = 0
	}

	dir := e.workDir
	if dir == "" {
		dir = os.TempDir()
	}
	tmp, err := os.CreateTemp(dir, "subsync_window_*.wav")
	if err != nil {
		return AudioClip{}, services.Wrap(services.ErrExtraction, "extractor", "window", "create temp file", err)
	}
	dest := tmp.Name()
	tmp.Close()
	defer os.Remove(dest)

	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-ss", fmt.Sprintf("%.3f", startSec),
		"-t", fmt.Sprintf("%.3f", durationSec),
		"-i", videoPath,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", extractSampleRate),
		"-c:a", "pcm_s16le",
		dest,
	}
	if err := e.run(ctx, e.binary, args...); err != nil {
		return AudioClip{}, services.Wrap(services.ErrExtraction, "extractor", "window", fmt.Sprintf("start=%.3fs duration=%.3fs", startSec, durationSec), err)
	}

	data, err := os.ReadFile(dest)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return AudioClip{SampleRate: extractSampleRate}, nil
	case err != nil:
		return AudioClip{}, services.Wrap(services.ErrExtraction, "extractor", "window", "read extracted audio", err)
	}
	if len(data) <= wavHeaderBytes {
		// Window at or past end of media: clipped to nothing.
		return AudioClip{SampleRate: extractSampleRate}, nil
	}
	return AudioClip{Data: data, SampleRate: extractSampleRate}, nil
}

func (e *FFmpegExtractor) run(ctx context.Context, name string, args ...string) error {
	if e.runner != nil {
		return e.runner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
