package services_test

import (
	"errors"
	"strings"
	"testing"

	"qbsort/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrApply, "qbittorrent", "setLocation", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrApply) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"qbittorrent", "setLocation", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "hook", "run", "unexpected", errors.New("io"))
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestFailureKindMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		expect string
	}{
		{"nil", nil, ""},
		{"configuration", services.Wrap(services.ErrConfiguration, "config", "load", "missing", nil), "configuration"},
		{"directory", services.Wrap(services.ErrDirectory, "library", "ensure", "mkdir", errors.New("denied")), "directory"},
		{"auth", services.Wrap(services.ErrAuth, "qbittorrent", "login", "rejected", nil), "auth"},
		{"apply", services.Wrap(services.ErrApply, "qbittorrent", "setCategory", "status 500", nil), "apply"},
		{"untagged", errors.New("plain"), "transient"},
	}
	for _, tc := range cases {
		if got := services.FailureKind(tc.err); got != tc.expect {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.expect, got)
		}
	}
}
