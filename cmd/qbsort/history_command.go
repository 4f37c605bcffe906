package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"qbsort/internal/journal"
)

type historyView struct {
	RunID      string    `json:"run_id"`
	Hash       string    `json:"hash"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Label      string    `json:"label"`
	Pattern    string    `json:"pattern,omitempty"`
	SourcePath string    `json:"source_path"`
	TargetPath string    `json:"target_path,omitempty"`
	Outcome    string    `json:"outcome"`
	FailedStep string    `json:"failed_step,omitempty"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func newHistoryView(entry *journal.Entry) historyView {
	return historyView{
		RunID:      entry.RunID,
		Hash:       entry.Hash,
		Name:       entry.Name,
		Category:   entry.Category,
		Label:      entry.Label,
		Pattern:    entry.Pattern,
		SourcePath: entry.SourcePath,
		TargetPath: entry.TargetPath,
		Outcome:    string(entry.Outcome),
		FailedStep: entry.FailedStep,
		Error:      entry.ErrorMessage,
		CreatedAt:  entry.CreatedAt,
	}
}

func newHistoryCommand(cctx *commandContext) *cobra.Command {
	var limit int
	var hash string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent hook runs from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := cctx.configValue()

			store, err := journal.Open(cfg)
			if errors.Is(err, journal.ErrDisabled) {
				fmt.Fprintln(cmd.OutOrStdout(), "Journal is disabled in the configuration")
				return nil
			}
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			var entries []*journal.Entry
			if hash != "" {
				entries, err = store.FindByHash(cmd.Context(), hash, limit)
			} else {
				entries, err = store.Recent(cmd.Context(), limit)
			}
			if err != nil {
				return fmt.Errorf("read journal: %w", err)
			}

			if asJSON {
				views := make([]historyView, 0, len(entries))
				for _, entry := range entries {
					views = append(views, newHistoryView(entry))
				}
				return writeJSON(cmd, views)
			}

			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					string(entry.Outcome),
					entry.Category,
					truncate(entry.Name, 48),
					shortHash(entry.Hash),
					entry.TargetPath,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"TIME", "OUTCOME", "CATEGORY", "NAME", "HASH", "TARGET"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	cmd.Flags().StringVar(&hash, "hash", "", "Only show runs for this torrent hash")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}
