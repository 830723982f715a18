package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"reelsmith/internal/config"
)

// ErrNotFound reports a lookup for a run that does not exist.
var ErrNotFound = errors.New("history: run not found")

// Store manages run persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return openAt(filepath.Join(cfg.Paths.StateDir, "history.db"))
}

func openAt(dbPath string) (*Store, error) {
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
	if err := store.applyMigrations(context.Background()); err != nil {
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

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Save records one finished run. A missing ID is assigned; the stored run is
// returned.
func (s *Store) Save(ctx context.Context, run Run) (*Run, error) {
	if strings.TrimSpace(run.Operation) == "" {
		return nil, errors.New("history: operation is required")
	}
	switch run.Status {
	case StatusCompleted, StatusFailed:
	default:
		return nil, fmt.Errorf("history: unknown status %q", run.Status)
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (id, operation, input, status, result_json, error_message, created_at, duration_ms)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Operation,
		run.Input,
		string(run.Status),
		run.ResultJSON,
		run.ErrorMessage,
		run.CreatedAt.Format(time.RFC3339Nano),
		run.DurationMS,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return &run, nil
}

// Get returns one run by ID. IDs may be abbreviated to a unique prefix.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, operation, input, status, result_json, error_message, created_at, duration_ms
         FROM runs WHERE id = ? OR id LIKE ? ORDER BY created_at DESC LIMIT 2`,
		id, id+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	defer rows.Close()

	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	switch len(runs) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return &runs[0], nil
	default:
		return nil, fmt.Errorf("history: ambiguous run id %q", id)
	}
}

// Recent returns the newest runs, most recent first. A non-positive limit
// defaults to 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, operation, input, status, result_json, error_message, created_at, duration_ms
         FROM runs ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

// Purge deletes runs older than the cutoff and returns how many were removed.
func (s *Store) Purge(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.db.ExecContext(
		ctx,
		`DELETE FROM runs WHERE created_at < ?`,
		olderThan.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("purge runs: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return removed, nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var run Run
		var status, createdAt string
		if err := rows.Scan(&run.ID, &run.Operation, &run.Input, &status, &run.ResultJSON, &run.ErrorMessage, &createdAt, &run.DurationMS); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Status = Status(status)
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		run.CreatedAt = parsed
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
