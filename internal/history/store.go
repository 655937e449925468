package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/NaiHeeeee/repkg-gui/internal/extraction"
)

// Store manages extraction history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// JobRecord is one persisted extraction job.
type JobRecord struct {
	ID          string
	State       string
	Destination string
	Success     int
	Failure     int
	Reason      string
	OnlyImages  bool
	StartedAt   time.Time
	FinishedAt  time.Time
	Items       []ItemRecord
}

// ItemRecord is one persisted per-source outcome.
type ItemRecord struct {
	Source string
	OK     bool
	Detail string
}

// Open initializes or connects to the history database under dataDir.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
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

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path reports the database file location.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS jobs (
    id          TEXT PRIMARY KEY,
    state       TEXT NOT NULL,
    destination TEXT NOT NULL,
    success     INTEGER NOT NULL,
    failure     INTEGER NOT NULL,
    reason      TEXT NOT NULL DEFAULT '',
    only_images INTEGER NOT NULL DEFAULT 0,
    started_at  TEXT NOT NULL,
    finished_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS job_items (
    job_id   TEXT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    source   TEXT NOT NULL,
    ok       INTEGER NOT NULL,
    detail   TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (job_id, position)
);
CREATE INDEX IF NOT EXISTS idx_jobs_started_at ON jobs(started_at DESC);
`
	return s.execWithRetry(ctx, schema)
}

// RecordJob persists a finished job and its items atomically.
func (s *Store) RecordJob(ctx context.Context, job *extraction.Job) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		_, err = tx.ExecContext(ctx, `
INSERT OR REPLACE INTO jobs (id, state, destination, success, failure, reason, only_images, started_at, finished_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			job.ID, string(job.State), job.Destination, job.Success, job.Failure,
			job.Reason, boolToInt(job.Options.OnlyImages),
			job.StartedAt.UTC().Format(time.RFC3339Nano),
			job.FinishedAt.UTC().Format(time.RFC3339Nano))
		if err != nil {
			return err
		}

		if _, err = tx.ExecContext(ctx, `DELETE FROM job_items WHERE job_id = ?`, job.ID); err != nil {
			return err
		}
		for i, item := range job.Items {
			_, err = tx.ExecContext(ctx, `
INSERT INTO job_items (job_id, position, source, ok, detail) VALUES (?, ?, ?, ?, ?)`,
				job.ID, i, item.Source, boolToInt(item.OK), item.Detail)
			if err != nil {
				return err
			}
		}
		return tx.Commit()
	})
}

// RecentJobs returns the newest jobs first, items included, capped at limit.
func (s *Store) RecentJobs(ctx context.Context, limit int) ([]JobRecord, error) {
	ctx = ensureContext(ctx)
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, state, destination, success, failure, reason, only_images, started_at, finished_at
FROM jobs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	var records []JobRecord
	for rows.Next() {
		var (
			record                JobRecord
			onlyImages            int
			startedAt, finishedAt string
		)
		if err := rows.Scan(&record.ID, &record.State, &record.Destination,
			&record.Success, &record.Failure, &record.Reason, &onlyImages,
			&startedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		record.OnlyImages = onlyImages != 0
		record.StartedAt = parseTime(startedAt)
		record.FinishedAt = parseTime(finishedAt)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}

	for i := range records {
		items, err := s.jobItems(ctx, records[i].ID)
		if err != nil {
			return nil, err
		}
		records[i].Items = items
	}
	return records, nil
}

// Job returns one job by id, or sql.ErrNoRows if unknown.
func (s *Store) Job(ctx context.Context, id string) (*JobRecord, error) {
	ctx = ensureContext(ctx)

	var (
		record                JobRecord
		onlyImages            int
		startedAt, finishedAt string
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, state, destination, success, failure, reason, only_images, started_at, finished_at
FROM jobs WHERE id = ?`, id).Scan(&record.ID, &record.State, &record.Destination,
		&record.Success, &record.Failure, &record.Reason, &onlyImages,
		&startedAt, &finishedAt)
	if err != nil {
		return nil, err
	}
	record.OnlyImages = onlyImages != 0
	record.StartedAt = parseTime(startedAt)
	record.FinishedAt = parseTime(finishedAt)

	items, err := s.jobItems(ctx, id)
	if err != nil {
		return nil, err
	}
	record.Items = items
	return &record, nil
}

func (s *Store) jobItems(ctx context.Context, jobID string) ([]ItemRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT source, ok, detail FROM job_items WHERE job_id = ? ORDER BY position`, jobID)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []ItemRecord
	for rows.Next() {
		var (
			item ItemRecord
			ok   int
		)
		if err := rows.Scan(&item.Source, &ok, &item.Detail); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		item.OK = ok != 0
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func parseTime(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
