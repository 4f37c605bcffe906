package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"qbsort/internal/config"
)

// ErrDisabled reports that the configuration turned the journal off.
var ErrDisabled = errors.New("journal disabled")

// Outcome records how a hook run ended.
type Outcome string

const (
	// OutcomeNoop means the torrent already lived at its target path.
	OutcomeNoop Outcome = "noop"
	// OutcomeApplied means every relocation step succeeded.
	OutcomeApplied Outcome = "applied"
	// OutcomeFailed means the run stopped at authentication or an apply step.
	OutcomeFailed Outcome = "failed"
)

// Entry is one recorded hook run.
type Entry struct {
	ID           int64
	RunID        string
	Hash         string
	Name         string
	Category     string
	Label        string
	Pattern      string
	SourcePath   string
	TargetPath   string
	Outcome      Outcome
	FailedStep   string
	ErrorMessage string
	CreatedAt    time.Time
}

// Journal persists hook runs in SQLite.
type Journal struct {
	db   *sql.DB
	path string
	keep int
}

// Open connects to the journal database, creating it on first use. Schema
// creation is serialized through a lock file so concurrent hook invocations
// do not race each other.
func Open(cfg *config.Config) (*Journal, error) {
	path := cfg.JournalPath()
	if path == "" {
		return nil, ErrDisabled
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	journal := &Journal{db: db, path: path, keep: cfg.Journal.Keep}
	if err := journal.initSchemaLocked(path + ".lock"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return journal, nil
}

func (j *Journal) initSchemaLocked(lockPath string) error {
	lock := flock.New(lockPath)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ok, err := lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("acquire journal lock: %w", err)
	}
	if !ok {
		return errors.New("journal lock held by another process")
	}
	defer func() { _ = lock.Unlock() }()

	return j.initSchema(ctx)
}

// Path returns the database file location.
func (j *Journal) Path() string {
	if j == nil {
		return ""
	}
	return j.path
}

// Close closes the underlying database connection.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Record inserts a run entry and prunes history beyond the retention limit.
func (j *Journal) Record(ctx context.Context, entry *Entry) error {
	if entry == nil {
		return errors.New("entry is nil")
	}
	entry.CreatedAt = time.Now().UTC()

	res, err := j.db.ExecContext(
		ctx,
		`INSERT INTO runs (
            run_id, hash, name, category, label, pattern,
            source_path, target_path, outcome, failed_step, error_message, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID,
		entry.Hash,
		entry.Name,
		entry.Category,
		entry.Label,
		nullableString(entry.Pattern),
		entry.SourcePath,
		nullableString(entry.TargetPath),
		string(entry.Outcome),
		nullableString(entry.FailedStep),
		nullableString(entry.ErrorMessage),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	entry.ID = id

	return j.prune(ctx)
}

func (j *Journal) prune(ctx context.Context) error {
	if j.keep <= 0 {
		return nil
	}
	_, err := j.db.ExecContext(
		ctx,
		`DELETE FROM runs WHERE id NOT IN (SELECT id FROM runs ORDER BY id DESC LIMIT ?)`,
		j.keep,
	)
	if err != nil {
		return fmt.Errorf("prune runs: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.QueryContext(
		ctx,
		`SELECT `+entryColumns+` FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan run: %w", scanErr)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return entries, nil
}

// FindByHash returns entries for a torrent hash, most recent first.
func (j *Journal) FindByHash(ctx context.Context, hash string, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.QueryContext(
		ctx,
		`SELECT `+entryColumns+` FROM runs WHERE hash = ? ORDER BY id DESC LIMIT ?`,
		hash,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs by hash: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan run: %w", scanErr)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return entries, nil
}

const entryColumns = "id, run_id, hash, name, category, label, pattern, source_path, target_path, outcome, failed_step, error_message, created_at"

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*Entry, error) {
	var (
		id           int64
		runID        string
		hash         string
		name         string
		category     string
		label        string
		pattern      sql.NullString
		sourcePath   string
		targetPath   sql.NullString
		outcome      string
		failedStep   sql.NullString
		errorMessage sql.NullString
		createdRaw   string
	)

	if err := scanner.Scan(
		&id,
		&runID,
		&hash,
		&name,
		&category,
		&label,
		&pattern,
		&sourcePath,
		&targetPath,
		&outcome,
		&failedStep,
		&errorMessage,
		&createdRaw,
	); err != nil {
		return nil, err
	}

	entry := &Entry{
		ID:           id,
		RunID:        runID,
		Hash:         hash,
		Name:         name,
		Category:     category,
		Label:        label,
		Pattern:      pattern.String,
		SourcePath:   sourcePath,
		TargetPath:   targetPath.String,
		Outcome:      Outcome(outcome),
		FailedStep:   failedStep.String,
		ErrorMessage: errorMessage.String,
	}
	if createdAt, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		entry.CreatedAt = createdAt
	}
	return entry, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
