package repository

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/llmscore/llmscore/internal/db"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// newTestDB returns a migrated in-memory database. Single connection so the
// in-memory store is shared across queries.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))
	return database
}
