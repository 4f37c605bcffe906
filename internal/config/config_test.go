package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"qbsort/internal/config"
)

func writeConfig(t *testing.T, dir string, body string) string {
	t.Helper()
	path := filepath.Join(dir, "qbsort.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFillsDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configPath := writeConfig(t, t.TempDir(), "[paths]\nbase_dir = \"~/torrents\"\n")

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}

	if cfg.Paths.BaseDir != filepath.Join(tempHome, "torrents") {
		t.Fatalf("unexpected base dir: %q", cfg.Paths.BaseDir)
	}
	wantLogDir := filepath.Join(tempHome, ".local", "share", "qbsort", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	if cfg.Paths.MoviesDir != "movies" || cfg.Paths.TVDir != "tv" || cfg.Paths.OtherDir != "other" {
		t.Fatalf("unexpected subdirectories: %+v", cfg.Paths)
	}
	if cfg.Categories.TV != "TV" || cfg.Categories.Movie != "Movies" || cfg.Categories.Other != "Other" {
		t.Fatalf("unexpected category labels: %+v", cfg.Categories)
	}
	if len(cfg.Rules.TV) == 0 || len(cfg.Rules.Movie) == 0 {
		t.Fatalf("expected default classification rules, got %+v", cfg.Rules)
	}
	if cfg.QBittorrent.Host != "127.0.0.1" || cfg.QBittorrent.Port != 8080 {
		t.Fatalf("unexpected qbittorrent endpoint: %+v", cfg.QBittorrent)
	}
	if cfg.QBittorrent.RequestTimeout != 10 {
		t.Fatalf("unexpected request timeout: %d", cfg.QBittorrent.RequestTimeout)
	}
	if !cfg.Journal.Enabled {
		t.Fatal("expected journal enabled by default")
	}
	if cfg.Journal.Path != filepath.Join(wantLogDir, "journal.db") {
		t.Fatalf("unexpected journal path: %q", cfg.Journal.Path)
	}
	if cfg.Notifications.NtfyTopic != "" {
		t.Fatalf("expected notifications disabled by default, got topic %q", cfg.Notifications.NtfyTopic)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadMissingConfigFailsValidation(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, _, exists, err := config.Load("")
	if err == nil {
		t.Fatal("expected error for absent config")
	}
	if exists {
		t.Fatal("expected exists to be false")
	}
	if !strings.Contains(err.Error(), "paths.base_dir") {
		t.Fatalf("expected base_dir requirement in error, got %v", err)
	}
}

func TestLoadCustomPathOverrides(t *testing.T) {
	body := `
[paths]
base_dir = "/srv/torrents"
movies_dir = "films"

[classification_rules]
tv = ['s\d\de\d\d', 'season']
movie = ['\b(19|20)\d{2}\b']

[categories]
tv = "Shows"

[qbittorrent]
host = "nas.local"
port = 9090
username = "sorter"
request_timeout = 5

[journal]
keep = 25
`
	configPath := writeConfig(t, t.TempDir(), body)

	cfg, _, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if cfg.Paths.BaseDir != "/srv/torrents" {
		t.Fatalf("unexpected base dir: %q", cfg.Paths.BaseDir)
	}
	if cfg.Paths.MoviesDir != "films" {
		t.Fatalf("expected movies_dir override, got %q", cfg.Paths.MoviesDir)
	}
	if got := []string{`s\d\de\d\d`, "season"}; len(cfg.Rules.TV) != 2 || cfg.Rules.TV[0] != got[0] || cfg.Rules.TV[1] != got[1] {
		t.Fatalf("expected tv rules in declared order, got %v", cfg.Rules.TV)
	}
	if cfg.Categories.TV != "Shows" {
		t.Fatalf("expected tv label override, got %q", cfg.Categories.TV)
	}
	if cfg.Categories.Movie != "Movies" {
		t.Fatalf("expected movie label default, got %q", cfg.Categories.Movie)
	}
	if cfg.QBittorrent.Host != "nas.local" || cfg.QBittorrent.Port != 9090 {
		t.Fatalf("unexpected endpoint: %+v", cfg.QBittorrent)
	}
	if cfg.QBittorrent.RequestTimeout != 5 {
		t.Fatalf("unexpected request timeout: %d", cfg.QBittorrent.RequestTimeout)
	}
	if cfg.Journal.Keep != 25 {
		t.Fatalf("unexpected journal keep: %d", cfg.Journal.Keep)
	}
}

func TestEnvFallbacksForCredentials(t *testing.T) {
	body := `
[paths]
base_dir = "/srv/torrents"

[qbittorrent]
host = "127.0.0.1"
`
	configPath := writeConfig(t, t.TempDir(), body)

	t.Setenv("QBT_USERNAME", "env-user")
	t.Setenv("QBT_PASSWORD", "env-pass")
	t.Setenv("QBSORT_NTFY_TOPIC", "env-topic")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.QBittorrent.Username != "env-user" {
		t.Fatalf("expected username from env, got %q", cfg.QBittorrent.Username)
	}
	if cfg.QBittorrent.Password != "env-pass" {
		t.Fatalf("expected password from env, got %q", cfg.QBittorrent.Password)
	}
	if cfg.Notifications.NtfyTopic != "env-topic" {
		t.Fatalf("expected ntfy topic from env, got %q", cfg.Notifications.NtfyTopic)
	}
}

func TestFileCredentialsWinOverEnv(t *testing.T) {
	body := `
[paths]
base_dir = "/srv/torrents"

[qbittorrent]
username = "file-user"
password = "file-pass"
`
	configPath := writeConfig(t, t.TempDir(), body)

	t.Setenv("QBT_USERNAME", "env-user")
	t.Setenv("QBT_PASSWORD", "env-pass")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.QBittorrent.Username != "file-user" {
		t.Fatalf("expected username from file, got %q", cfg.QBittorrent.Username)
	}
	if cfg.QBittorrent.Password != "file-pass" {
		t.Fatalf("expected password from file, got %q", cfg.QBittorrent.Password)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "base_dir") {
		t.Fatalf("sample config missing base_dir: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if len(cfg.Rules.TV) == 0 || len(cfg.Rules.Movie) == 0 {
		t.Fatalf("expected sample rules, got %+v", cfg.Rules)
	}
	if cfg.Categories.TV != "TV" {
		t.Fatalf("unexpected sample tv label: %q", cfg.Categories.TV)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when base_dir is missing")
	}

	cfg = config.Default()
	cfg.Paths.BaseDir = "/srv/torrents"
	cfg.QBittorrent.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for out-of-range port")
	}

	cfg = config.Default()
	cfg.Paths.BaseDir = "/srv/torrents"
	cfg.QBittorrent.RequestTimeout = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive timeout")
	}

	cfg = config.Default()
	cfg.Paths.BaseDir = "/srv/torrents"
	cfg.Categories.Other = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for blank category label")
	}

	cfg = config.Default()
	cfg.Paths.BaseDir = "/srv/torrents"
	cfg.QBittorrent.Host = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for blank host")
	}
}

func TestCategoryLookups(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.BaseDir = "/srv/torrents"

	if got := cfg.CategorySubdir("tv"); got != "tv" {
		t.Fatalf("unexpected tv subdir: %q", got)
	}
	if got := cfg.CategorySubdir("movie"); got != "movies" {
		t.Fatalf("unexpected movie subdir: %q", got)
	}
	if got := cfg.CategoryLabel("other"); got != "Other" {
		t.Fatalf("unexpected other label: %q", got)
	}
	if got := cfg.CategoryLabel("bogus"); got != "" {
		t.Fatalf("expected empty label for unknown category, got %q", got)
	}
	if got := cfg.QBittorrent.BaseURL(); got != "http://127.0.0.1:8080" {
		t.Fatalf("unexpected base url: %q", got)
	}
}
