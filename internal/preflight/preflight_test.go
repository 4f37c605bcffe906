package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"qbsort/internal/config"
	"qbsort/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckQBittorrent_OK(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Write([]byte("Ok."))
		}
	})
	mux.HandleFunc("/api/v2/app/version", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("v5.0.1"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := testsupport.NewConfig(t, testsupport.WithWebUI(srv.URL))
	result := CheckQBittorrent(context.Background(), cfg)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if result.Detail != "authenticated (qBittorrent v5.0.1)" {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckQBittorrent_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Write([]byte("Fails."))
		}
	}))
	defer srv.Close()

	cfg := testsupport.NewConfig(t, testsupport.WithWebUI(srv.URL))
	result := CheckQBittorrent(context.Background(), cfg)
	if result.Passed {
		t.Fatal("expected failure for rejected credentials")
	}
}

func TestCheckQBittorrent_MissingHost(t *testing.T) {
	cfg := config.Default()
	cfg.QBittorrent.Host = ""
	result := CheckQBittorrent(context.Background(), &cfg)
	if result.Passed {
		t.Fatal("expected failure for missing host")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	results := RunAll(context.Background(), nil)
	if results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_ReportsDirectoriesAndService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Write([]byte("Ok."))
		}
	}))
	defer srv.Close()

	cfg := testsupport.NewConfig(t, testsupport.WithWebUI(srv.URL), testsupport.WithJournalDisabled())
	cfg.Paths.BaseDir = t.TempDir()
	cfg.Paths.LogDir = t.TempDir()

	results := RunAll(context.Background(), cfg)

	names := make(map[string]bool, len(results))
	for _, r := range results {
		names[r.Name] = true
	}
	for _, want := range []string{"Base directory", "TV directory", "Movies directory", "Other directory", "Log directory", "qBittorrent"} {
		if !names[want] {
			t.Fatalf("expected check %q in results %v", want, names)
		}
	}
	if names["Journal directory"] {
		t.Fatal("journal check should be skipped when disabled")
	}

	// Category subdirectories have not been created yet.
	if Healthy(results) {
		t.Fatal("expected unhealthy results before category dirs exist")
	}
}

func TestRunAll_IncludesJournalWhenEnabled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Write([]byte("Ok."))
		}
	}))
	defer srv.Close()

	cfg := testsupport.NewConfig(t, testsupport.WithWebUI(srv.URL))
	cfg.Paths.BaseDir = t.TempDir()

	results := RunAll(context.Background(), cfg)
	found := false
	for _, r := range results {
		if r.Name == "Journal directory" {
			found = true
			if !r.Passed {
				t.Errorf("journal directory check failed: %s", r.Detail)
			}
		}
	}
	if !found {
		t.Fatal("expected journal directory check in results")
	}
}
