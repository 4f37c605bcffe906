package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the library directory layout.
type Paths struct {
	BaseDir   string `toml:"base_dir"`
	MoviesDir string `toml:"movies_dir"`
	TVDir     string `toml:"tv_dir"`
	OtherDir  string `toml:"other_dir"`
	LogDir    string `toml:"log_dir"`
}

// Rules contains the ordered classification pattern lists. Patterns are
// evaluated in declared order, the tv list strictly before the movie list,
// against the case-folded torrent name.
type Rules struct {
	TV    []string `toml:"tv"`
	Movie []string `toml:"movie"`
}

// Categories contains the qBittorrent category labels assigned per class.
type Categories struct {
	TV    string `toml:"tv"`
	Movie string `toml:"movie"`
	Other string `toml:"other"`
}

// QBittorrent contains connection settings for the qBittorrent WebUI API.
type QBittorrent struct {
	Host           string `toml:"host"`
	Port           int    `toml:"port"`
	Username       string `toml:"username"`
	Password       string `toml:"password"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Journal contains configuration for the local run journal.
type Journal struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"` // Default: <paths.log_dir>/journal.db
	Keep    int    `toml:"keep"` // Most recent entries retained, 0 keeps all
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for qbsort.
//
// Configuration sections by subsystem:
//   - Paths: library base directory and per-category subdirectories
//   - Rules: ordered tv and movie classification patterns
//   - Categories: qBittorrent category labels per class
//   - QBittorrent: WebUI API endpoint and credentials
//   - Journal: local record of hook runs
//   - Notifications: ntfy push notification settings
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Rules         Rules         `toml:"classification_rules"`
	Categories    Categories    `toml:"categories"`
	QBittorrent   QBittorrent   `toml:"qbittorrent"`
	Journal       Journal       `toml:"journal"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/qbsort/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("qbsort.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// CategorySubdir returns the configured subdirectory name for a category.
// Unknown categories return an empty string.
func (c *Config) CategorySubdir(category string) string {
	switch category {
	case "tv":
		return c.Paths.TVDir
	case "movie":
		return c.Paths.MoviesDir
	case "other":
		return c.Paths.OtherDir
	default:
		return ""
	}
}

// CategoryLabel returns the qBittorrent category label for a category.
// Unknown categories return an empty string.
func (c *Config) CategoryLabel(category string) string {
	switch category {
	case "tv":
		return c.Categories.TV
	case "movie":
		return c.Categories.Movie
	case "other":
		return c.Categories.Other
	default:
		return ""
	}
}

// BaseURL returns the qBittorrent WebUI endpoint, e.g. http://127.0.0.1:8080.
func (q QBittorrent) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", q.Host, q.Port)
}

// JournalPath returns the resolved journal database location, or an empty
// string when the journal is disabled.
func (c *Config) JournalPath() string {
	if !c.Journal.Enabled {
		return ""
	}
	return c.Journal.Path
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	sample := sampleConfig

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
