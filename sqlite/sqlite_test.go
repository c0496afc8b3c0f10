package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/casebot/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MustOpenDB returns an open database in a temporary directory, closed at
// test cleanup.
func MustOpenDB(tb testing.TB) *sqlite.DB {
	tb.Helper()

	db := sqlite.NewDB(filepath.Join(tb.TempDir(), "test.db"))
	require.NoError(tb, db.Open())
	tb.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		ctx := context.Background()

		var n int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM _vec_cases").Scan(&n))
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM meta").Scan(&n))
	})

	t.Run("registers the vec module", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)

		var one int
		require.NoError(t, db.QueryRowContext(context.Background(),
			"SELECT 1 FROM pragma_module_list WHERE name = 'vec'").Scan(&one))
		assert.Equal(t, 1, one)
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/db.sqlite")
		require.Error(t, db.Open())
	})

	t.Run("enables WAL mode", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)

		var journalMode string
		require.NoError(t, db.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&journalMode))
		assert.Equal(t, "wal", journalMode)
	})

	t.Run("reopening keeps the schema", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "test.db")
		db := sqlite.NewDB(path)
		require.NoError(t, db.Open())
		require.NoError(t, db.Close())

		db = sqlite.NewDB(path)
		require.NoError(t, db.Open())
		require.NoError(t, db.Close())
	})
}

func TestOpenIndex(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "index")
	assert.False(t, sqlite.IndexExists(dir))

	db, err := sqlite.OpenIndex(dir)
	require.NoError(t, err)
	defer db.Close()

	assert.True(t, sqlite.IndexExists(dir))
	assert.Equal(t, filepath.Join(dir, sqlite.IndexFile), db.Path())
}
