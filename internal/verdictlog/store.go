// Package verdictlog keeps an append-only SQLite record of the answer
// comparisons served by the checking service, so that content authors can
// review rejected answers.
package verdictlog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Entry is one recorded comparison.
type Entry struct {
	ID                int64
	Timestamp         time.Time
	RequestID         string
	User              string
	Correct           string
	UserNormalized    string
	CorrectNormalized string
	Strategy          string
	Equivalent        bool
}

// QueryOpts filters Recent.
type QueryOpts struct {
	Limit        int       // max results (0 = unlimited)
	RejectedOnly bool      // only comparisons that were not equivalent
	Since        time.Time // timestamp >= Since
}

// Store is the verdict log backed by a SQLite database.
type Store struct {
	db *sql.DB
}

const schema = `CREATE TABLE IF NOT EXISTS verdicts (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	ts                 INTEGER NOT NULL,
	request_id         TEXT    NOT NULL DEFAULT '',
	user_answer        TEXT    NOT NULL,
	correct_answer     TEXT    NOT NULL,
	user_normalized    TEXT    NOT NULL,
	correct_normalized TEXT    NOT NULL,
	strategy           TEXT    NOT NULL,
	equivalent         INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS verdicts_ts ON verdicts (ts);`

// Open connects to the SQLite database at dsn, applies pragmas and
// creates the schema if needed.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append records e and returns its ID. A zero Timestamp is set to now.
func (s *Store) Append(ctx context.Context, e Entry) (int64, error) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO verdicts (ts, request_id, user_answer, correct_answer,
			user_normalized, correct_normalized, strategy, equivalent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Timestamp.UnixNano(), e.RequestID, e.User, e.Correct,
		e.UserNormalized, e.CorrectNormalized, e.Strategy, e.Equivalent,
	)
	if err != nil {
		return 0, fmt.Errorf("insert verdict: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("verdict id: %w", err)
	}
	return id, nil
}

const selectColumns = `SELECT id, ts, request_id, user_answer, correct_answer,
	user_normalized, correct_normalized, strategy, equivalent FROM verdicts`

// Get returns the entry with the given ID, or nil if it does not exist.
func (s *Store) Get(ctx context.Context, id int64) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get verdict %d: %w", id, err)
	}
	return e, nil
}

// Recent returns entries newest first.
func (s *Store) Recent(ctx context.Context, opts QueryOpts) ([]Entry, error) {
	var (
		where []string
		args  []any
	)
	if opts.RejectedOnly {
		where = append(where, "equivalent = 0")
	}
	if !opts.Since.IsZero() {
		where = append(where, "ts >= ?")
		args = append(args, opts.Since.UnixNano())
	}

	q := selectColumns
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id DESC"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query verdicts: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan verdict: %w", err)
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// Prune deletes all but the keep most recent entries and reports how many
// rows were removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		return 0, fmt.Errorf("keep must be >= 0, got %d", keep)
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM verdicts WHERE id NOT IN (
			SELECT id FROM verdicts ORDER BY id DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune verdicts: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (*Entry, error) {
	var (
		e  Entry
		ts int64
	)
	err := sc.Scan(&e.ID, &ts, &e.RequestID, &e.User, &e.Correct,
		&e.UserNormalized, &e.CorrectNormalized, &e.Strategy, &e.Equivalent)
	if err != nil {
		return nil, err
	}
	e.Timestamp = time.Unix(0, ts)
	return &e, nil
}

// applyPragmas configures SQLite for a single-writer service.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path:
// 1. $XDG_DATA_HOME/mathcheck/verdicts.db
// 2. ~/.local/share/mathcheck/verdicts.db
// The parent directory is created if needed.
func DefaultDBPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "mathcheck", "verdicts.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
