package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"qbsort/internal/classify"
	"qbsort/internal/library"
)

type classifyView struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Label    string `json:"label"`
	Pattern  string `json:"pattern,omitempty"`
	Target   string `json:"target"`
}

func newClassifyCommand(cctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "classify <name>...",
		Short: "Dry-run the classification rules against torrent names",
		Long: `Evaluates the configured classification rules against one or more torrent
names without touching qBittorrent or the filesystem. Useful for tuning
rule lists before wiring the hook.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := cctx.configValue()

			rules, err := classify.NewRuleSet(cfg.Rules.TV, cfg.Rules.Movie)
			if err != nil {
				return fmt.Errorf("compile classification rules: %w", err)
			}
			resolver := library.NewResolver(cfg)

			views := make([]classifyView, 0, len(args))
			for _, name := range args {
				match := rules.Classify(name)
				target, _ := resolver.PathFor(match.Category)
				views = append(views, classifyView{
					Name:     name,
					Category: string(match.Category),
					Label:    cfg.CategoryLabel(string(match.Category)),
					Pattern:  match.Pattern,
					Target:   target,
				})
			}

			if asJSON {
				return writeJSON(cmd, views)
			}

			rows := make([][]string, 0, len(views))
			for _, view := range views {
				rows = append(rows, []string{view.Name, view.Category, view.Label, view.Pattern, view.Target})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"NAME", "CATEGORY", "LABEL", "PATTERN", "TARGET"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}
