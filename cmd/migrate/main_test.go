package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMigrationPart(t *testing.T) {
	content := `
-- +migrate Up
CREATE TABLE categories (id SERIAL PRIMARY KEY);
ALTER TABLE categories ADD COLUMN name TEXT;

-- +migrate Down
DROP TABLE categories;
`
	t.Run("up", func(t *testing.T) {
		up := extractMigrationPart(content, "Up")
		assert.Contains(t, up, "CREATE TABLE categories")
		assert.Contains(t, up, "ALTER TABLE categories")
		assert.NotContains(t, up, "DROP TABLE")
		assert.NotContains(t, up, "-- +migrate")
	})

	t.Run("down", func(t *testing.T) {
		down := extractMigrationPart(content, "Down")
		assert.Contains(t, down, "DROP TABLE categories")
		assert.NotContains(t, down, "CREATE TABLE")
	})

	t.Run("missing section", func(t *testing.T) {
		assert.Empty(t, extractMigrationPart("-- +migrate Up\nSELECT 1;", "Down"))
	})
}

func writeMigration(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunMigrationsUp(t *testing.T) {
	t.Run("applies pending and skips applied", func(t *testing.T) {
		database, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer database.Close()

		dir := t.TempDir()
		first := writeMigration(t, dir, "20240101000000_init.sql", "-- +migrate Up\nCREATE TABLE foods (id int);")
		second := writeMigration(t, dir, "20240201000000_tags.sql", "-- +migrate Up\nCREATE TABLE tags (id int);")

		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WithArgs("20240101000000_init.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WithArgs("20240201000000_tags.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectBegin()
		mock.ExpectExec("CREATE TABLE tags").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO schema_migrations").
			WithArgs("20240201000000_tags.sql").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		require.NoError(t, runMigrationsUp(database, []string{first, second}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed body rolls back", func(t *testing.T) {
		database, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer database.Close()

		file := writeMigration(t, t.TempDir(), "20240101000000_init.sql", "-- +migrate Up\nCREATE TABLE broken (;")

		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WithArgs("20240101000000_init.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectBegin()
		mock.ExpectExec("CREATE TABLE broken").WillReturnError(errors.New("syntax error"))
		mock.ExpectRollback()

		err = runMigrationsUp(database, []string{file})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "20240101000000_init.sql")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRunMigrationsDown(t *testing.T) {
	t.Run("rolls back latest", func(t *testing.T) {
		database, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer database.Close()

		file := writeMigration(t, t.TempDir(), "20240101000000_init.sql",
			"-- +migrate Up\nCREATE TABLE foods (id int);\n-- +migrate Down\nDROP TABLE foods;")

		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("20240101000000_init.sql"))
		mock.ExpectBegin()
		mock.ExpectExec("DROP TABLE foods").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM schema_migrations").
			WithArgs("20240101000000_init.sql").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, runMigrationsDown(database, []string{file}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing applied", func(t *testing.T) {
		database, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer database.Close()

		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}))

		require.NoError(t, runMigrationsDown(database, nil))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("file missing", func(t *testing.T) {
		database, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer database.Close()

		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("20990101000000_gone.sql"))

		err = runMigrationsDown(database, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "migration file not found")
	})
}

func TestRun(t *testing.T) {
	t.Run("unknown mode", func(t *testing.T) {
		database, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer database.Close()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))

		err = run(database, "sideways", t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown mode")
	})

	t.Run("status", func(t *testing.T) {
		database, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer database.Close()

		dir := t.TempDir()
		writeMigration(t, dir, "20240201000000_b.sql", "")
		writeMigration(t, dir, "20240101000000_a.sql", "")

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").WithArgs("20240101000000_a.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectQuery("SELECT EXISTS").WithArgs("20240201000000_b.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		require.NoError(t, run(database, "status", dir))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
