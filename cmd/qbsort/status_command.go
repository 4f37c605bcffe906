package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"qbsort/internal/preflight"
)

func newStatusCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check directories and qBittorrent connectivity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := cctx.configValue()
			stdout := cmd.OutOrStdout()
			colorize := shouldColorize(stdout)

			results := preflight.RunAll(cmd.Context(), cfg)

			for _, line := range renderSectionHeader("System Status", colorize) {
				fmt.Fprintln(stdout, line)
			}
			for _, result := range results {
				kind := statusError
				if result.Passed {
					kind = statusOK
				}
				fmt.Fprintln(stdout, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}
			if cfg.JournalPath() == "" {
				fmt.Fprintln(stdout, renderStatusLine("Journal", statusInfo, "disabled", colorize))
			}

			fmt.Fprintln(stdout)
			if preflight.Healthy(results) {
				fmt.Fprintln(stdout, renderStatusLine("Summary", statusOK, "ready", colorize))
			} else {
				fmt.Fprintln(stdout, renderStatusLine("Summary", statusWarn, "one or more checks failed", colorize))
			}
			return nil
		},
	}
}
