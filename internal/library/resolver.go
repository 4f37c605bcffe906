package library

import (
	"fmt"
	"os"
	"path/filepath"

	"qbsort/internal/classify"
	"qbsort/internal/config"
)

const dirMode = 0o775

// Resolver maps categories to their target directories under the configured
// library layout. Targets are computed eagerly at construction so every
// category has a destination before any torrent is classified.
type Resolver struct {
	targets map[classify.Category]string
}

// NewResolver derives the per-category target directories from cfg. A
// subdirectory configured as an absolute path is used as-is; anything else
// is joined to paths.base_dir.
func NewResolver(cfg *config.Config) *Resolver {
	targets := make(map[classify.Category]string, 3)
	for _, category := range classify.Categories() {
		subdir := cfg.CategorySubdir(string(category))
		if filepath.IsAbs(subdir) {
			targets[category] = filepath.Clean(subdir)
			continue
		}
		targets[category] = filepath.Join(cfg.Paths.BaseDir, subdir)
	}
	return &Resolver{targets: targets}
}

// EnsureAll creates every category directory and enforces its permissions.
// All categories are provisioned up front; the first failure aborts.
// MkdirAll honours the process umask, so the mode is enforced with an
// explicit chmod afterwards, also repairing directories that already exist.
func (r *Resolver) EnsureAll() error {
	for _, category := range classify.Categories() {
		dir := r.targets[category]
		if err := os.MkdirAll(dir, dirMode); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
		if err := os.Chmod(dir, dirMode); err != nil {
			return fmt.Errorf("set permissions on %q: %w", dir, err)
		}
	}
	return nil
}

// PathFor returns the target directory for a category.
func (r *Resolver) PathFor(category classify.Category) (string, bool) {
	dir, ok := r.targets[category]
	return dir, ok
}

// Targets returns a copy of the category to directory mapping.
func (r *Resolver) Targets() map[classify.Category]string {
	out := make(map[classify.Category]string, len(r.targets))
	for category, dir := range r.targets {
		out[category] = dir
	}
	return out
}

// SamePath reports whether two paths resolve to the same absolute location.
// Paths that cannot be made absolute are compared cleaned, so the check stays
// deterministic and errs toward treating them as different.
func SamePath(a, b string) bool {
	return resolvePath(a) == resolvePath(b)
}

func resolvePath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
