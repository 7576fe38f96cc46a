package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"subsync/internal/align"
	"subsync/internal/config"
	"subsync/internal/media"
	"subsync/internal/media/ffprobe"
	"subsync/internal/services"
	"subsync/internal/subtitle"
)

// syncRunner performs one subtitle-to-video alignment end to end: parse,
// align, serialize. Both the sync and batch commands share it; the batch
// command swaps in a throttled recognizer.
type syncRunner struct {
	cfg        *config.Config
	logger     *slog.Logger
	extractor  media.AudioExtractor
	recognizer media.Recognizer
	encoding   string
	opts       align.Options
}

func newSyncRunner(cfg *config.Config, logger *slog.Logger) *syncRunner {
	timeout := time.Duration(cfg.Recognizer.RequestTimeoutSeconds) * time.Second
	return &syncRunner{
		cfg:        cfg,
		logger:     logger,
		extractor:  media.NewFFmpegExtractor(cfg.Tools.FFmpeg, ""),
		recognizer: media.NewWebSpeechRecognizer(cfg.Recognizer.APIKey, cfg.Recognizer.BaseURL, timeout),
		encoding:   cfg.Sync.Encoding,
		opts:       align.OptionsFromConfig(cfg.Sync),
	}
}

// syncOne aligns subtitlePath against videoPath and writes the corrected
// track to outputPath in the runner's encoding.
func (r *syncRunner) syncOne(ctx context.Context, subtitlePath, videoPath, outputPath string, onState align.StateFunc) (align.Outcome, error) {
	data, err := os.ReadFile(subtitlePath)
	if err != nil {
		return align.Outcome{}, fmt.Errorf("read subtitle %s: %w", subtitlePath, err)
	}
	track, err := subtitle.Parse(data, r.encoding)
	if err != nil {
		return align.Outcome{}, err
	}

	probe, err := ffprobe.Inspect(ctx, r.cfg.Tools.FFprobe, videoPath)
	if err != nil {
		return align.Outcome{}, services.Wrap(services.ErrValidation, "runner", "probe", "inspect video", err)
	}
	if !probe.HasAudio() {
		return align.Outcome{}, services.Wrap(services.ErrValidation, "runner", "probe",
			fmt.Sprintf("%s has no audio stream to recognize", videoPath), nil)
	}

	job := align.NewJob(r.extractor, r.recognizer, r.opts, r.logger)
	if onState != nil {
		job = job.WithStateFunc(onState)
	}
	outcome, err := job.Run(ctx, track, videoPath)
	if err != nil {
		return outcome, err
	}

	serialized, err := subtitle.Serialize(outcome.Track, r.encoding)
	if err != nil {
		return outcome, err
	}
	if err := os.WriteFile(outputPath, serialized, 0o644); err != nil {
		return outcome, fmt.Errorf("write synced subtitle %s: %w", outputPath, err)
	}
	return outcome, nil
}
