package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenAndMigrate(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Migrate())

	// Migrations must leave the core tables in place.
	for _, table := range []string{"movies", "genres", "movie_genres", "users", "user_ratings", "settings"} {
		var name string
		err := db.Conn().QueryRowContext(context.Background(),
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		assert.NoError(t, err, "table %s missing", table)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Migrate())
	require.NoError(t, db.Migrate())
}

func TestTitleYearUniqueIndex(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Migrate())
	ctx := context.Background()

	_, err := db.Conn().ExecContext(ctx,
		"INSERT INTO movies (title, year) VALUES (?, ?)", "Inception", 2010)
	require.NoError(t, err)

	// Case-folded duplicate must be rejected by the index.
	_, err = db.Conn().ExecContext(ctx,
		"INSERT INTO movies (title, year) VALUES (?, ?)", "INCEPTION", 2010)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE constraint failed")

	// Same title in another year is a different movie.
	_, err = db.Conn().ExecContext(ctx,
		"INSERT INTO movies (title, year) VALUES (?, ?)", "Inception", 2024)
	assert.NoError(t, err)
}

func TestForeignKeysEnforced(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Migrate())

	_, err := db.Conn().ExecContext(context.Background(),
		"INSERT INTO user_ratings (user_id, movie_id, rating) VALUES (?, ?, ?)", 999, 999, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FOREIGN KEY constraint failed")
}
