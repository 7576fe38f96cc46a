package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"subsync/internal/align"
	"subsync/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int
	var runFlag string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past sync runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg.Paths.HistoryDB)
			if err != nil {
				return err
			}
			defer store.Close()

			var records []history.Record
			if runID := strings.TrimSpace(runFlag); runID != "" {
				records, err = store.ListByRun(cmd.Context(), runID)
			} else {
				records, err = store.List(cmd.Context(), limitFlag)
			}
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sync runs recorded.")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, record := range records {
				transform := ""
				if record.Scale.Valid && record.Offset.Valid {
					transform = align.Transform{Scale: record.Scale.Float64, Offset: record.Offset.Float64}.String()
				}
				detail := record.OutputPath
				if record.ErrorMessage != "" {
					detail = record.ErrorMessage
				}
				rows = append(rows, []string{
					fmt.Sprintf("%d", record.ID),
					record.CreatedAt.Local().Format("2006-01-02 15:04"),
					record.Status,
					filepath.Base(record.SubtitlePath),
					transform,
					detail,
				})
			}
			headers := []string{"ID", "When", "Status", "Subtitle", "Transform", "Detail"}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, []columnAlignment{alignRight}))
			return nil
		},
	}

	cmd.Flags().IntVar(&limitFlag, "limit", 20, "Maximum runs to show (0 for all)")
	cmd.Flags().StringVar(&runFlag, "run", "", "Show only records from one batch run ID")

	return cmd
}
