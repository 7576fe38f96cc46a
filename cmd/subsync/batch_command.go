package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"subsync/internal/align"
	"subsync/internal/batch"
	"subsync/internal/fileutil"
	"subsync/internal/history"
	"subsync/internal/notifications"
	"subsync/internal/services"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var encodingFlag string
	var languageFlag string
	var concurrencyFlag int

	cmd := &cobra.Command{
		Use:   "batch <subtitle-dir> <video-dir>",
		Short: "Align every subtitle in a directory to its video by sorted basename",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			subtitles, err := fileutil.ListSubtitles(args[0])
			if err != nil {
				return err
			}
			videos, err := fileutil.ListVideos(args[1])
			if err != nil {
				return err
			}
			pairings, err := batch.Pair(subtitles, videos)
			if err != nil {
				return err
			}

			runner := newSyncRunner(cfg, logger)
			if enc := strings.TrimSpace(encodingFlag); enc != "" {
				runner.encoding = enc
			}
			if lang := strings.TrimSpace(languageFlag); lang != "" {
				runner.opts.Language = lang
			}
			// One shared throttle keeps all workers under the provider's
			// rate limit.
			interval := time.Duration(cfg.Batch.RecognizerIntervalMS) * time.Millisecond
			runner.recognizer = batch.ThrottleRecognizer(runner.recognizer, interval)

			concurrency := cfg.Batch.Concurrency
			if concurrencyFlag > 0 {
				concurrency = concurrencyFlag
			}

			run := func(ctx context.Context, item batch.Pairing, onState align.StateFunc) (batch.ItemOutcome, error) {
				output := fileutil.OutputPath(item.SubtitlePath, fileutil.BatchSyncedSuffix)
				outcome, err := runner.syncOne(ctx, item.SubtitlePath, item.VideoPath, output, onState)
				return batch.ItemOutcome{
					Transform:  outcome.Transform,
					Attempts:   outcome.Attempts,
					OutputPath: output,
				}, err
			}

			notifier := notifications.NewService(cfg)
			if cfg.Notifications.Batch {
				_ = notifier.NotifyBatchStarted(cmd.Context(), len(pairings))
			}

			sink := newPrintSink(cmd.OutOrStdout(), len(pairings))
			orch := batch.NewOrchestrator(concurrency, run, sink, logger)
			result := orch.Run(cmd.Context(), pairings)

			for _, item := range result.Items {
				record := history.Record{
					RunID:        result.RunID.String(),
					SubtitlePath: item.Pairing.SubtitlePath,
					VideoPath:    item.Pairing.VideoPath,
					Status:       string(item.Status),
					Attempts:     item.Attempts,
					OutputPath:   item.OutputPath,
				}
				if item.Status == batch.StatusCompleted {
					record.Scale = sql.NullFloat64{Float64: item.Transform.Scale, Valid: true}
					record.Offset = sql.NullFloat64{Float64: item.Transform.Offset, Valid: true}
				} else if item.Err != nil {
					record.ErrorMessage = item.Err.Error()
				}
				appendHistory(cmd, cfg.Paths.HistoryDB, record)
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderBatchResult(result))

			if cfg.Notifications.Batch {
				_ = notifier.NotifyBatchCompleted(cmd.Context(), result.Completed, result.Failed, result.Duration)
			}
			if result.Failed > 0 || result.Cancelled > 0 {
				return services.Wrap(services.ErrExhausted, "batch", "run",
					fmt.Sprintf("%d of %d item(s) did not complete", result.Failed+result.Cancelled, len(result.Items)), nil)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&encodingFlag, "encoding", "", "Subtitle encoding: utf-8 or latin-1 (default from config)")
	cmd.Flags().StringVar(&languageFlag, "language", "", "Recognition language tag (default from config)")
	cmd.Flags().IntVar(&concurrencyFlag, "concurrency", 0, "Concurrent sync jobs (default from config)")

	return cmd
}

// printSink writes terminal progress lines as items finish.
type printSink struct {
	out   io.Writer
	total int
}

func newPrintSink(out io.Writer, total int) *printSink {
	return &printSink{out: out, total: total}
}

func (s *printSink) JobStateChanged(int, align.State) {}

func (s *printSink) BatchProgress(completed, failed, remaining int) {
	fmt.Fprintf(s.out, "[%d/%d] %d completed, %d failed\n", s.total-remaining, s.total, completed, failed)
}

func renderBatchResult(result batch.Result) string {
	rows := make([][]string, 0, len(result.Items))
	for _, item := range result.Items {
		transform := ""
		detail := item.OutputPath
		switch item.Status {
		case batch.StatusCompleted:
			transform = item.Transform.String()
		default:
			if item.Err != nil {
				detail = item.Err.Error()
			}
		}
		rows = append(rows, []string{
			filepath.Base(item.Pairing.SubtitlePath),
			filepath.Base(item.Pairing.VideoPath),
			string(item.Status),
			transform,
			detail,
		})
	}
	headers := []string{"Subtitle", "Video", "Status", "Transform", "Detail"}
	summary := fmt.Sprintf("Run %s: %d completed, %d failed, %d cancelled in %s",
		result.RunID, result.Completed, result.Failed, result.Cancelled, result.Duration.Round(time.Millisecond))
	return renderTable(headers, rows, nil) + "\n" + summary
}
