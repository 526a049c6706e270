// Package history persists dispatched invocations in a SQLite database.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/footprint-tools/clikit/internal/domain"
	"github.com/footprint-tools/clikit/internal/history/migrations"
	"github.com/footprint-tools/clikit/internal/log"
)

// timeLayout is fixed-width so started_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store implements domain.InvocationStore.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database at path and applies any
// pending migrations.
func Open(path string) (*Store, error) {
	log.Debug("history: opening database at %s", path)

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps ":memory:" databases coherent and serializes
	// writers from a single process.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure database: %w", err)
	}

	setDBPermissions(path)

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// NewWithDB wraps a database that already has the schema applied.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Path returns the database file, empty for NewWithDB stores.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func setDBPermissions(path string) {
	if path == ":memory:" {
		return
	}
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		_ = os.Chmod(p, 0600)
	}
}

// Record inserts inv. Re-recording the same ID replaces the row.
func (s *Store) Record(inv domain.Invocation) error {
	argv := inv.Argv
	if argv == nil {
		argv = []string{}
	}
	encoded, err := json.Marshal(argv)
	if err != nil {
		return fmt.Errorf("encode argv: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO invocations (id, command, argv, exit_code, started_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			command = excluded.command,
			argv = excluded.argv,
			exit_code = excluded.exit_code,
			started_at = excluded.started_at,
			duration_ms = excluded.duration_ms`,
		inv.ID,
		inv.Command,
		string(encoded),
		inv.ExitCode,
		inv.StartedAt.UTC().Format(timeLayout),
		inv.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("record invocation %s: %w", inv.ID, err)
	}
	return nil
}

// Recent returns up to limit invocations, newest first. A limit of zero
// or less returns every row.
func (s *Store) Recent(limit int) ([]domain.Invocation, error) {
	query := `SELECT id, command, argv, exit_code, started_at, duration_ms
		FROM invocations
		ORDER BY started_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query invocations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Invocation
	for rows.Next() {
		inv, err := scanInvocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func scanInvocation(rows *sql.Rows) (domain.Invocation, error) {
	var (
		inv        domain.Invocation
		argv       string
		startedAt  string
		durationMS int64
	)
	if err := rows.Scan(&inv.ID, &inv.Command, &argv, &inv.ExitCode, &startedAt, &durationMS); err != nil {
		return inv, fmt.Errorf("scan invocation: %w", err)
	}

	if err := json.Unmarshal([]byte(argv), &inv.Argv); err != nil {
		return inv, fmt.Errorf("decode argv of %s: %w", inv.ID, err)
	}
	t, err := time.Parse(timeLayout, startedAt)
	if err != nil {
		return inv, fmt.Errorf("parse started_at of %s: %w", inv.ID, err)
	}
	inv.StartedAt = t
	inv.Duration = time.Duration(durationMS) * time.Millisecond
	return inv, nil
}

// Clear deletes every invocation and reports how many rows went away.
func (s *Store) Clear() (int64, error) {
	res, err := s.db.Exec("DELETE FROM invocations")
	if err != nil {
		return 0, fmt.Errorf("clear invocations: %w", err)
	}
	return res.RowsAffected()
}

var _ domain.InvocationStore = (*Store)(nil)
