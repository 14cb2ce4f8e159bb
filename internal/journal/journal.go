// Package journal persists session traces and model request events to a
// local SQLite database. It is an append-only audit sink for the CLI; the
// bounded in-memory store stays the contract surface.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abhisek/socratiq/internal/llm"
	"github.com/abhisek/socratiq/internal/session"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Journal wraps the SQLite handle.
type Journal struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies pragmas and
// creates the schema.
func Open(dsn string) (*Journal, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (j *Journal) DB() *sql.DB {
	return j.db
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

// applyPragmas configures SQLite for single-user local use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func createSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS traces (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			learner_id TEXT NOT NULL,
			timestamp_iso TEXT NOT NULL,
			inputs_hash TEXT NOT NULL,
			contracts_version TEXT NOT NULL,
			payload TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_traces_session ON traces(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_traces_learner ON traces(learner_id)`,
		`CREATE TABLE IF NOT EXISTS llm_requests (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			model TEXT NOT NULL,
			purpose TEXT NOT NULL,
			input_tokens INTEGER NOT NULL,
			output_tokens INTEGER NOT NULL,
			latency_ms INTEGER NOT NULL,
			success INTEGER NOT NULL,
			error_message TEXT NOT NULL DEFAULT ''
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}
	return nil
}

// AppendTrace journals one session trace. Append-only; traces are never
// updated or deleted.
func (j *Journal) AppendTrace(ctx context.Context, tr session.Trace) error {
	payload, err := json.Marshal(tr)
	if err != nil {
		return fmt.Errorf("marshal trace: %w", err)
	}
	_, err = j.db.ExecContext(ctx,
		`INSERT INTO traces (session_id, learner_id, timestamp_iso, inputs_hash, contracts_version, payload)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		tr.SessionID, tr.LearnerID, tr.TimestampISO, tr.InputsHash, tr.ContractsVersion, string(payload))
	if err != nil {
		return fmt.Errorf("append trace: %w", err)
	}
	return nil
}

// ListTraces returns a learner's journaled traces, newest first.
// limit <= 0 means all.
func (j *Journal) ListTraces(ctx context.Context, learnerID string, limit int) ([]session.Trace, error) {
	query := `SELECT payload FROM traces WHERE learner_id = ? ORDER BY id DESC`
	args := []any{learnerID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list traces: %w", err)
	}
	defer rows.Close()

	var out []session.Trace
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan trace: %w", err)
		}
		var tr session.Trace
		if err := json.Unmarshal([]byte(payload), &tr); err != nil {
			return nil, fmt.Errorf("decode trace: %w", err)
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}

// AppendRequest journals one model call. Implements llm.RequestLog.
func (j *Journal) AppendRequest(ctx context.Context, rec llm.RequestRecord) error {
	success := 0
	if rec.Success {
		success = 1
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO llm_requests (created_at, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339),
		rec.Model, rec.Purpose, rec.InputTokens, rec.OutputTokens, rec.LatencyMs, success, rec.ErrorMessage)
	if err != nil {
		return fmt.Errorf("append request: %w", err)
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. SOCRATIQ_DB environment variable
// 2. $XDG_DATA_HOME/socratiq/socratiq.db
// 3. ~/.local/share/socratiq/socratiq.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("SOCRATIQ_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "socratiq", "socratiq.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
