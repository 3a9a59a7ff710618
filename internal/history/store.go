// Package history records generation runs in a local SQLite ledger.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	oerrors "github.com/fullstack-gen/fsgen/internal/errors"
)

// MemoryPath opens a private in-memory ledger.
const MemoryPath = ":memory:"

// Run kinds.
const (
	KindProject  = "project"
	KindEndpoint = "endpoint"
	KindVerify   = "verify"
)

// Run statuses.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Run is one recorded invocation.
type Run struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Project string `json:"project"`

	// Subject is the endpoint name or verification scripts, if any.
	Subject string `json:"subject,omitempty"`

	// Digest is the manifest digest.
	Digest string `json:"digest,omitempty"`

	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Entries    []Entry   `json:"entries,omitempty"`
}

// Entry is the outcome of one manifest entry within a run.
type Entry struct {
	Seq    int    `json:"seq"`
	Path   string `json:"path"`
	Kind   string `json:"kind"`
	Status string `json:"status"`
}

// Store is the SQLite-backed run ledger.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the ledger at path.
func Open(path string) (*Store, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, oerrors.NewIOError("creating history directory", path, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	// A single connection keeps :memory: databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record persists run and its entries. An empty ID is replaced by a new
// UUID, which is returned.
func (s *Store) Record(ctx context.Context, run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO runs (id, kind, project, subject, digest, status, error, started_at, finished_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		run.ID, run.Kind, run.Project, run.Subject, run.Digest, run.Status, run.Error,
		formatTime(run.StartedAt), formatTime(run.FinishedAt),
	)
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}

	for i, e := range run.Entries {
		seq := e.Seq
		if seq == 0 {
			seq = i + 1
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO run_entries (run_id, seq, path, kind, status) VALUES (?, ?, ?, ?, ?)",
			run.ID, seq, e.Path, e.Kind, e.Status,
		)
		if err != nil {
			return "", fmt.Errorf("failed to record entry %s: %w", e.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return run.ID, nil
}

// List returns the most recent runs first, without entries. A limit of zero
// or less returns all runs.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := "SELECT id, kind, project, subject, digest, status, error, started_at, finished_at FROM runs ORDER BY started_at DESC, rowid DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// Get returns the run whose ID equals or uniquely starts with id, with its
// entries.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, kind, project, subject, digest, status, error, started_at, finished_at FROM runs WHERE id = ? OR id LIKE ? ORDER BY id LIMIT 2",
		id, id+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	var matches []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	var run *Run
	for _, m := range matches {
		if m.ID == id {
			run = m
		}
	}
	if run == nil {
		switch len(matches) {
		case 0:
			return nil, oerrors.NewNotFoundError("no recorded run with this id", id, "Run 'fsgen history' to list recorded runs.")
		case 1:
			run = matches[0]
		default:
			return nil, oerrors.NewValidationError("run id prefix is ambiguous", id, "id", "Use more characters of the run id.")
		}
	}

	if run.Entries, err = s.entries(ctx, run.ID); err != nil {
		return nil, err
	}
	return run, nil
}

func (s *Store) entries(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT seq, path, kind, status FROM run_entries WHERE run_id = ? ORDER BY seq", runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Seq, &e.Path, &e.Kind, &e.Status); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		run               Run
		started, finished string
	)
	if err := row.Scan(&run.ID, &run.Kind, &run.Project, &run.Subject, &run.Digest,
		&run.Status, &run.Error, &started, &finished); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, oerrors.NewNotFoundError("run not found", "", "")
		}
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	var err error
	if run.StartedAt, err = parseTime(started); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseTime(finished); err != nil {
		return nil, err
	}
	return &run, nil
}

// timeLayout is fixed width so that stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}
