package services

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sfares/newsroom-be/internal/database"
)

// newTestDB opens an in-memory database with the full schema. The pool is
// pinned to one connection so every query sees the same memory database.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}
