package db

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"team-tracker-go/internal/repository/postgres/postgrestest"
	"team-tracker-go/pkg/logger"
)

func expectPending(mock sqlmock.Sqlmock) {
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(1\) FROM schema_migrations WHERE filename = \$1`).
		WithArgs("0001_init.sql").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
}

func TestMigrateAppliesPendingFilesInTransaction(t *testing.T) {
	gormDB, mock := postgrestest.New(t)

	expectPending(mock)
	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS users`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO schema_migrations`).
		WithArgs("0001_init.sql", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := Migrate(gormDB, logger.Nop()); err != nil {
		t.Fatalf("Migrate error: %v", err)
	}
}

func TestMigrateRollsBackFailedFile(t *testing.T) {
	gormDB, mock := postgrestest.New(t)

	expectPending(mock)
	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS users`).WillReturnError(errors.New("syntax error"))
	mock.ExpectRollback()

	if err := Migrate(gormDB, logger.Nop()); err == nil {
		t.Fatalf("expected migration error")
	}
}

func TestMigrateRollsBackWhenRecordFails(t *testing.T) {
	gormDB, mock := postgrestest.New(t)

	expectPending(mock)
	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS users`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO schema_migrations`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	if err := Migrate(gormDB, logger.Nop()); err == nil {
		t.Fatalf("expected record error")
	}
}

func TestMigrateSkipsAppliedFiles(t *testing.T) {
	gormDB, mock := postgrestest.New(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(1\) FROM schema_migrations`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	if err := Migrate(gormDB, logger.Nop()); err != nil {
		t.Fatalf("Migrate error: %v", err)
	}
}

func TestLoadMigrationsSortsAndSkipsEmpty(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"0002_b.sql": "SELECT 2;",
		"0001_a.sql": "SELECT 1;",
		"0003_c.sql": "  \n",
		"notes.txt":  "ignored",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	migrations, err := loadMigrations(dir)
	if err != nil {
		t.Fatalf("loadMigrations error: %v", err)
	}
	if len(migrations) != 2 || migrations[0].name != "0001_a.sql" || migrations[1].name != "0002_b.sql" {
		t.Fatalf("unexpected migrations: %+v", migrations)
	}
}

func TestFindMigrationsDirWalksUp(t *testing.T) {
	path, err := findMigrationsDir(migrationsDirName)
	if err != nil {
		t.Fatalf("expected migrations directory above the package, got %v", err)
	}
	if path == "" {
		t.Fatalf("expected a path")
	}
}
