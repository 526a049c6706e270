// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/clikit/internal/domain"
	"github.com/footprint-tools/clikit/internal/history/migrations"
)

// NewTestDB returns an in-memory SQLite database with the history schema
// applied. It is closed when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err, "failed to open in-memory database")
	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = db.Close()
	})

	require.NoError(t, migrations.Run(db), "failed to run migrations")
	return db
}

// Invocations builds n invocations of command, one second apart starting
// at start, with IDs "inv-0".."inv-(n-1)".
func Invocations(command string, start time.Time, n int) []domain.Invocation {
	out := make([]domain.Invocation, n)
	for i := range out {
		out[i] = domain.Invocation{
			ID:        fmt.Sprintf("inv-%d", i),
			Command:   command,
			Argv:      []string{command},
			ExitCode:  0,
			StartedAt: start.Add(time.Duration(i) * time.Second),
			Duration:  time.Duration(i+1) * time.Millisecond,
		}
	}
	return out
}

// SeedInvocations records every invocation through rec.
func SeedInvocations(t *testing.T, rec domain.InvocationRecorder, invs []domain.Invocation) {
	t.Helper()

	for _, inv := range invs {
		require.NoError(t, rec.Record(inv), "failed to seed invocation: %+v", inv)
	}
}
