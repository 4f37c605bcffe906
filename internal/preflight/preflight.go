package preflight

import (
	"context"
	"fmt"
	"path/filepath"

	"qbsort/internal/classify"
	"qbsort/internal/config"
	"qbsort/internal/library"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Checks are only run when the corresponding feature is enabled.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Base directory", cfg.Paths.BaseDir))

	resolver := library.NewResolver(cfg)
	for _, category := range classify.Categories() {
		name := fmt.Sprintf("%s directory", cfg.CategoryLabel(string(category)))
		dir, _ := resolver.PathFor(category)
		results = append(results, CheckDirectoryAccess(name, dir))
	}

	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}

	if path := cfg.JournalPath(); path != "" {
		results = append(results, CheckDirectoryAccess("Journal directory", filepath.Dir(path)))
	}

	results = append(results, CheckQBittorrent(ctx, cfg))

	return results
}

// Healthy reports whether every check passed.
func Healthy(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
