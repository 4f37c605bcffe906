package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeRules()
	c.normalizeCategories()
	c.normalizeQBittorrent()
	if err := c.normalizeJournal(); err != nil {
		return err
	}
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.BaseDir) != "" {
		if c.Paths.BaseDir, err = expandPath(c.Paths.BaseDir); err != nil {
			return fmt.Errorf("paths.base_dir: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.MoviesDir = strings.TrimSpace(c.Paths.MoviesDir)
	if c.Paths.MoviesDir == "" {
		c.Paths.MoviesDir = defaultMoviesDir
	}
	c.Paths.TVDir = strings.TrimSpace(c.Paths.TVDir)
	if c.Paths.TVDir == "" {
		c.Paths.TVDir = defaultTVDir
	}
	c.Paths.OtherDir = strings.TrimSpace(c.Paths.OtherDir)
	if c.Paths.OtherDir == "" {
		c.Paths.OtherDir = defaultOtherDir
	}
	return nil
}

// normalizeRules trims pattern whitespace and drops blank entries while
// preserving declared order. Pattern compilation is left to the classifier
// so the configured text reaches it untouched.
func (c *Config) normalizeRules() {
	c.Rules.TV = normalizePatternList(c.Rules.TV)
	c.Rules.Movie = normalizePatternList(c.Rules.Movie)
}

func normalizePatternList(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		trimmed := strings.TrimSpace(pattern)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

func (c *Config) normalizeCategories() {
	c.Categories.TV = strings.TrimSpace(c.Categories.TV)
	if c.Categories.TV == "" {
		c.Categories.TV = defaultTVLabel
	}
	c.Categories.Movie = strings.TrimSpace(c.Categories.Movie)
	if c.Categories.Movie == "" {
		c.Categories.Movie = defaultMovieLabel
	}
	c.Categories.Other = strings.TrimSpace(c.Categories.Other)
	if c.Categories.Other == "" {
		c.Categories.Other = defaultOtherLabel
	}
}

func (c *Config) normalizeQBittorrent() {
	c.QBittorrent.Host = strings.TrimSpace(c.QBittorrent.Host)
	if c.QBittorrent.Host == "" {
		c.QBittorrent.Host = defaultHost
	}
	if c.QBittorrent.Port == 0 {
		c.QBittorrent.Port = defaultPort
	}
	c.QBittorrent.Username = strings.TrimSpace(c.QBittorrent.Username)
	if c.QBittorrent.Username == "" {
		if value, ok := os.LookupEnv("QBT_USERNAME"); ok {
			c.QBittorrent.Username = strings.TrimSpace(value)
		}
	}
	if c.QBittorrent.Password == "" {
		if value, ok := os.LookupEnv("QBT_PASSWORD"); ok {
			c.QBittorrent.Password = value
		}
	}
	if c.QBittorrent.RequestTimeout <= 0 {
		c.QBittorrent.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeJournal() error {
	if c.Journal.Keep < 0 {
		c.Journal.Keep = 0
	}
	if strings.TrimSpace(c.Journal.Path) == "" {
		c.Journal.Path = filepath.Join(c.Paths.LogDir, "journal.db")
		return nil
	}
	var err error
	if c.Journal.Path, err = expandPath(c.Journal.Path); err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.NtfyTopic == "" {
		if value, ok := os.LookupEnv("QBSORT_NTFY_TOPIC"); ok {
			c.Notifications.NtfyTopic = strings.TrimSpace(value)
		}
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
