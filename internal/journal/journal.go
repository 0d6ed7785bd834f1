// Package journal provides durable storage for scenario run outcomes.
// Uses SQLite with WAL mode for concurrent read access.
package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Journal records the outcome of every scenario run to a local SQLite
// database so verdicts can be inspected across invocations.
type Journal struct {
	db *sql.DB
}

// Entry is one recorded scenario run.
type Entry struct {
	// ID is a UUIDv7, so entries sort chronologically by ID.
	ID string

	// Scenario is the scenario name.
	Scenario string

	// Mode is "sync" or "async".
	Mode string

	// Verdict is the observed verdict name.
	Verdict string

	// Fulfillments is the final counter value.
	Fulfillments int64

	// Pass reports whether the run matched its expectation.
	Pass bool

	// CreatedAt is an RFC 3339 UTC timestamp assigned by the database.
	CreatedAt string
}

// Open creates or opens a journal database at the given path.
// Applies required pragmas and the schema automatically.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Record inserts a run entry and returns its generated ID.
// Duplicate IDs are impossible in practice (UUIDv7), but the insert is
// still guarded with ON CONFLICT DO NOTHING for idempotent retries.
func (j *Journal) Record(ctx context.Context, e Entry) (string, error) {
	id := uuid.Must(uuid.NewV7()).String()

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, scenario, mode, verdict, fulfillments, pass)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		id,
		e.Scenario,
		e.Mode,
		e.Verdict,
		e.Fulfillments,
		boolToInt(e.Pass),
	)
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}

	return id, nil
}

// List returns the most recent entries, newest first. A limit of zero or
// less returns everything.
func (j *Journal) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `
		SELECT id, scenario, mode, verdict, fulfillments, pass, created_at
		FROM runs
		ORDER BY id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var pass int
		if err := rows.Scan(&e.ID, &e.Scenario, &e.Mode, &e.Verdict, &e.Fulfillments, &pass, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("list runs: scan: %w", err)
		}
		e.Pass = pass != 0
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	return entries, nil
}

// ListByScenario returns entries for a single scenario, newest first.
func (j *Journal) ListByScenario(ctx context.Context, scenario string, limit int) ([]Entry, error) {
	query := `
		SELECT id, scenario, mode, verdict, fulfillments, pass, created_at
		FROM runs
		WHERE scenario = ?
		ORDER BY id DESC
	`
	args := []any{scenario}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs for %q: %w", scenario, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var pass int
		if err := rows.Scan(&e.ID, &e.Scenario, &e.Mode, &e.Verdict, &e.Fulfillments, &pass, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("list runs for %q: scan: %w", scenario, err)
		}
		e.Pass = pass != 0
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs for %q: %w", scenario, err)
	}

	return entries, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (j *Journal) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := j.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}
