package journal_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"qbsort/internal/journal"
	"qbsort/internal/testsupport"
)

func TestOpenRecordsAndReadsBack(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	j, err := journal.Open(cfg)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer j.Close()

	entry := &journal.Entry{
		RunID:      "run-1",
		Hash:       "abc123",
		Name:       "Show.S01E02.1080p",
		Category:   "tv",
		Label:      "TV",
		Pattern:    `s\d{1,2}e\d{1,3}`,
		SourcePath: "/downloads/incoming",
		TargetPath: "/data/tv",
		Outcome:    journal.OutcomeApplied,
	}
	if err := j.Record(context.Background(), entry); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if entry.ID == 0 {
		t.Fatal("expected entry ID to be assigned")
	}
	if entry.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be assigned")
	}

	entries, err := j.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	got := entries[0]
	if got.Hash != "abc123" || got.Category != "tv" || got.Outcome != journal.OutcomeApplied {
		t.Fatalf("unexpected entry: %+v", got)
	}
	if got.Pattern != entry.Pattern {
		t.Fatalf("expected pattern %q, got %q", entry.Pattern, got.Pattern)
	}
	if got.FailedStep != "" || got.ErrorMessage != "" {
		t.Fatalf("expected empty failure fields, got %+v", got)
	}
}

func TestOpenDisabled(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithJournalDisabled())

	if _, err := journal.Open(cfg); !errors.Is(err, journal.ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}

func TestRecordPrunesBeyondKeep(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Journal.Keep = 3
	j := testsupport.MustOpenJournal(t, cfg)

	for i := 0; i < 5; i++ {
		entry := &journal.Entry{
			RunID:      fmt.Sprintf("run-%d", i),
			Hash:       fmt.Sprintf("hash-%d", i),
			Name:       fmt.Sprintf("Torrent %d", i),
			Category:   "other",
			Label:      "Other",
			SourcePath: "/downloads",
			Outcome:    journal.OutcomeNoop,
		}
		if err := j.Record(context.Background(), entry); err != nil {
			t.Fatalf("Record %d returned error: %v", i, err)
		}
	}

	entries, err := j.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 retained entries, got %d", len(entries))
	}
	if entries[0].RunID != "run-4" || entries[2].RunID != "run-2" {
		t.Fatalf("unexpected retention order: %s .. %s", entries[0].RunID, entries[2].RunID)
	}
}

func TestFindByHash(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	j := testsupport.MustOpenJournal(t, cfg)

	hashes := []string{"aaa", "bbb", "aaa"}
	for i, hash := range hashes {
		entry := &journal.Entry{
			RunID:      fmt.Sprintf("run-%d", i),
			Hash:       hash,
			Name:       "Torrent",
			Category:   "movie",
			Label:      "Movies",
			SourcePath: "/downloads",
			Outcome:    journal.OutcomeApplied,
		}
		if err := j.Record(context.Background(), entry); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	entries, err := j.FindByHash(context.Background(), "aaa", 10)
	if err != nil {
		t.Fatalf("FindByHash returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries for hash aaa, got %d", len(entries))
	}
	if entries[0].RunID != "run-2" || entries[1].RunID != "run-0" {
		t.Fatalf("unexpected order: %s, %s", entries[0].RunID, entries[1].RunID)
	}
}

func TestReopenExistingDatabase(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	j, err := journal.Open(cfg)
	if err != nil {
		t.Fatalf("first Open returned error: %v", err)
	}
	entry := &journal.Entry{
		RunID:        "run-1",
		Hash:         "abc",
		Name:         "Torrent",
		Category:     "tv",
		Label:        "TV",
		SourcePath:   "/downloads",
		TargetPath:   "/data/tv",
		Outcome:      journal.OutcomeFailed,
		FailedStep:   "setCategory",
		ErrorMessage: "setCategory returned status 500",
	}
	if err := j.Record(context.Background(), entry); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	reopened, err := journal.Open(cfg)
	if err != nil {
		t.Fatalf("second Open returned error: %v", err)
	}
	defer reopened.Close()

	entries, err := reopened.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after reopen, got %d", len(entries))
	}
	if entries[0].FailedStep != "setCategory" {
		t.Fatalf("expected failed step to survive reopen, got %+v", entries[0])
	}
}
