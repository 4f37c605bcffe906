package testsupport

import (
	"net/url"
	"path/filepath"
	"strconv"
	"testing"

	"qbsort/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t   testing.TB
	cfg *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.BaseDir = filepath.Join(base, "library")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.QBittorrent.Username = "admin"
	cfgVal.QBittorrent.Password = "secret"
	cfgVal.Journal.Path = filepath.Join(base, "journal.db")

	builder := &configBuilder{
		t:   t,
		cfg: &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithWebUI points the qBittorrent section at a test server URL.
func WithWebUI(rawURL string) ConfigOption {
	return func(b *configBuilder) {
		parsed, err := url.Parse(rawURL)
		if err != nil {
			b.t.Fatalf("parse webui url: %v", err)
		}
		port, err := strconv.Atoi(parsed.Port())
		if err != nil {
			b.t.Fatalf("parse webui port: %v", err)
		}
		b.cfg.QBittorrent.Host = parsed.Hostname()
		b.cfg.QBittorrent.Port = port
	}
}

// WithJournalDisabled turns the run journal off.
func WithJournalDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Journal.Enabled = false
	}
}

// WithRules replaces both classification rule lists.
func WithRules(tv, movie []string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Rules.TV = tv
		b.cfg.Rules.Movie = movie
	}
}
