package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"

	"team-tracker-go/pkg/logger"
)

const migrationsDirName = "migrations"

const createSchemaMigrations = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		filename TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
`

type migration struct {
	name string
	sql  string
}

// Migrate brings the schema up to date from the *.sql files of the nearest migrations directory.
// Files run in name order, once each. A file and its schema_migrations row commit together.
func Migrate(db *gorm.DB, log logger.Logger) error {
	dir, err := findMigrationsDir(migrationsDirName)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn("db: migrations directory not found, skipping")
		return nil
	}
	if err != nil {
		return err
	}

	migrations, err := loadMigrations(dir)
	if err != nil {
		return err
	}
	if err := db.Exec(createSchemaMigrations).Error; err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	applied := 0
	for _, m := range migrations {
		done, err := isApplied(db, m.name)
		if err != nil {
			return err
		}
		if done {
			continue
		}
		if err := apply(db, m); err != nil {
			return err
		}
		applied++
		log.Info("db: migration applied", "file", m.name)
	}

	log.Info("db: schema up to date", "dir", dir, "applied", applied, "known", len(migrations))
	return nil
}

// loadMigrations reads every non-empty *.sql file of dir, sorted by name.
func loadMigrations(dir string) ([]migration, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, err
	}

	migrations := make([]migration, 0, len(paths))
	for _, path := range paths {
		contents, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", filepath.Base(path), err)
		}
		sql := strings.TrimSpace(string(contents))
		if sql == "" {
			continue
		}
		migrations = append(migrations, migration{name: filepath.Base(path), sql: sql})
	}
	return migrations, nil
}

func isApplied(db *gorm.DB, name string) (bool, error) {
	var count int64
	if err := db.Raw("SELECT COUNT(1) FROM schema_migrations WHERE filename = ?", name).Scan(&count).Error; err != nil {
		return false, fmt.Errorf("check migration %s: %w", name, err)
	}
	return count > 0, nil
}

func apply(db *gorm.DB, m migration) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(m.sql).Error; err != nil {
			return fmt.Errorf("apply migration %s: %w", m.name, err)
		}
		err := tx.Exec("INSERT INTO schema_migrations (filename, applied_at) VALUES (?, ?)", m.name, time.Now().UTC()).Error
		if err != nil {
			return fmt.Errorf("record migration %s: %w", m.name, err)
		}
		return nil
	})
}

// findMigrationsDir walks up from the working directory so tests and binaries started below the
// module root find the same files.
func findMigrationsDir(name string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
