package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// timeLayout keeps a fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrRunNotFound is returned when a run ID has no ledger row.
var ErrRunNotFound = errors.New("run not found")

// BeginRun records the start of a run and returns its generated ID.
func (s *Store) BeginRun(ctx context.Context, sourceRoot, destRoot string, dryRun bool) (string, error) {
	id := uuid.NewString()
	_, err := s.execWithRetry(ctx,
		`INSERT INTO runs (id, source_root, dest_root, dry_run, started_at) VALUES (?, ?, ?, ?, ?)`,
		id, sourceRoot, destRoot, boolToInt(dryRun), time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// RecordLink appends a link entry to the given run.
func (s *Store) RecordLink(ctx context.Context, entry Entry) error {
	created := entry.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := s.execWithRetry(ctx,
		`INSERT INTO links (run_id, source_path, dest_path, outcome, size_bytes, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.RunID, entry.SourcePath, entry.DestPath, entry.Outcome, entry.SizeBytes, created.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert link: %w", err)
	}
	return nil
}

// FinishRun stores the final counters of a run. runErr, when non-nil, is kept
// as the run's error message.
func (s *Store) FinishRun(ctx context.Context, id string, totals Totals, runErr error) error {
	var message sql.NullString
	if runErr != nil {
		message = sql.NullString{String: runErr.Error(), Valid: true}
	}
	res, err := s.execWithRetry(ctx,
		`UPDATE runs SET finished_at = ?, found = ?, linked = ?, copied = ?, existing = ?, skipped = ?, failed = ?, error_message = ? WHERE id = ?`,
		time.Now().UTC().Format(timeLayout),
		totals.Found, totals.Linked, totals.Copied, totals.Existing, totals.Skipped, totals.Failed,
		message, id,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finish run %s: %w", id, ErrRunNotFound)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_root, dest_root, dry_run, started_at, finished_at, found, linked, copied, existing, skipped, failed, error_message
		FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun loads a single run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source_root, dest_root, dry_run, started_at, finished_at, found, linked, copied, existing, skipped, failed, error_message
		FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("run %s: %w", id, ErrRunNotFound)
	}
	return run, err
}

// Links returns every entry recorded for a run in insertion order.
func (s *Store) Links(ctx context.Context, runID string) ([]Entry, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, source_path, dest_path, outcome, size_bytes, created_at FROM links WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query links: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry   Entry
			created string
		)
		if err := rows.Scan(&entry.RunID, &entry.SourcePath, &entry.DestPath, &entry.Outcome, &entry.SizeBytes, &created); err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		entry.CreatedAt = parseTime(created)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate links: %w", err)
	}
	return entries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run      Run
		dryRun   int
		started  string
		finished sql.NullString
		message  sql.NullString
	)
	if err := row.Scan(&run.ID, &run.SourceRoot, &run.DestRoot, &dryRun, &started, &finished,
		&run.Found, &run.Linked, &run.Copied, &run.Existing, &run.Skipped, &run.Failed, &message); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.DryRun = dryRun != 0
	run.StartedAt = parseTime(started)
	if finished.Valid {
		run.FinishedAt = parseTime(finished.String)
	}
	run.ErrorMessage = message.String
	return run, nil
}

func parseTime(value string) time.Time {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
