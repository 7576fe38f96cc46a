package main

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"subsync/internal/align"
	"subsync/internal/fileutil"
	"subsync/internal/history"
	"subsync/internal/notifications"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var outputFlag string
	var encodingFlag string
	var languageFlag string

	cmd := &cobra.Command{
		Use:   "sync <subtitle.srt> <video>",
		Short: "Align one subtitle file to one video file",
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

			subtitlePath, videoPath := args[0], args[1]
			runner := newSyncRunner(cfg, logger)
			if enc := strings.TrimSpace(encodingFlag); enc != "" {
				runner.encoding = enc
			}
			if lang := strings.TrimSpace(languageFlag); lang != "" {
				runner.opts.Language = lang
			}

			outputPath := strings.TrimSpace(outputFlag)
			if outputPath == "" {
				outputPath = fileutil.OutputPath(subtitlePath, fileutil.SyncedSuffix)
			}

			onState := func(state align.State) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", filepath.Base(subtitlePath), state)
			}

			outcome, runErr := runner.syncOne(cmd.Context(), subtitlePath, videoPath, outputPath, onState)

			record := history.Record{
				RunID:        uuid.NewString(),
				SubtitlePath: subtitlePath,
				VideoPath:    videoPath,
				Attempts:     outcome.Attempts,
			}
			if runErr == nil {
				record.Status = "completed"
				record.Scale = sql.NullFloat64{Float64: outcome.Transform.Scale, Valid: true}
				record.Offset = sql.NullFloat64{Float64: outcome.Transform.Offset, Valid: true}
				record.OutputPath = outputPath
			} else {
				record.Status = "failed"
				record.ErrorMessage = runErr.Error()
			}
			appendHistory(cmd, cfg.Paths.HistoryDB, record)

			notifier := notifications.NewService(cfg)
			if runErr != nil {
				if cfg.Notifications.Errors {
					_ = notifier.NotifyError(cmd.Context(), runErr, "sync")
				}
				return runErr
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Synced %s -> %s (%s, %d attempts)\n",
				filepath.Base(subtitlePath), outputPath, outcome.Transform, outcome.Attempts)
			_ = notifier.NotifySyncCompleted(cmd.Context(), filepath.Base(subtitlePath), outcome.Transform.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output path (default: <subtitle>_synced.srt)")
	cmd.Flags().StringVar(&encodingFlag, "encoding", "", "Subtitle encoding: utf-8 or latin-1 (default from config)")
	cmd.Flags().StringVar(&languageFlag, "language", "", "Recognition language tag (default from config)")

	return cmd
}

// appendHistory records the run outcome, warning instead of failing the
// command when the store is unavailable.
func appendHistory(cmd *cobra.Command, dbPath string, record history.Record) {
	store, err := history.Open(dbPath)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: history unavailable: %v\n", err)
		return
	}
	defer store.Close()
	if _, err := store.Append(cmd.Context(), record); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: record history: %v\n", err)
	}
}
