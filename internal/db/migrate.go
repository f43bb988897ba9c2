package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"church-app-go/pkg/logger"
	"gorm.io/gorm"
)

const migrationsDirName = "migrations"

var migrationName = regexp.MustCompile(`^(\d{4})_[a-z0-9_]+\.sql$`)

type migration struct {
	version int
	file    string
}

// Migrate applies the numbered *.sql files in the nearest migrations
// directory that are not yet recorded in schema_migrations.
func Migrate(db *gorm.DB, log logger.Logger) error {
	path, err := findMigrationsDir(migrationsDirName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn("db: migrations directory not found, skipping")
			return nil
		}
		return err
	}
	return migrateDir(db, path, log)
}

func migrateDir(db *gorm.DB, dir string, log logger.Logger) error {
	migrations, err := listMigrations(dir)
	if err != nil {
		return err
	}

	if err := ensureSchemaMigrations(db); err != nil {
		return err
	}
	done, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	applied := 0
	latest := 0
	for _, m := range migrations {
		latest = m.version
		if done[m.file] {
			continue
		}

		contents, err := os.ReadFile(filepath.Join(dir, m.file))
		if err != nil {
			return err
		}
		sql := strings.TrimSpace(string(contents))
		if sql == "" {
			log.Warn("db: empty migration skipped", "file", m.file)
			continue
		}

		// Each file is recorded in the same transaction that applies it.
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(sql).Error; err != nil {
				return err
			}
			return tx.Exec("INSERT INTO schema_migrations (filename, applied_at) VALUES (?, ?)", m.file, time.Now().UTC()).Error
		})
		if err != nil {
			return fmt.Errorf("apply migration %s: %w", m.file, err)
		}
		applied++
		log.Info("db: migration applied", "version", m.version, "file", m.file)
	}

	log.Info("db: schema up to date", "applied", applied, "version", latest, "total", len(migrations))
	return nil
}

// listMigrations returns the directory's migrations ordered by version. A
// .sql file without a NNNN_ prefix or a repeated version is an error.
func listMigrations(dir string) ([]migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var migrations []migration
	seen := make(map[int]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		match := migrationName.FindStringSubmatch(name)
		if match == nil {
			return nil, fmt.Errorf("migration %s: name must look like 0001_description.sql", name)
		}
		version, _ := strconv.Atoi(match[1])
		if other, ok := seen[version]; ok {
			return nil, fmt.Errorf("migration %s: version %04d already used by %s", name, version, other)
		}
		seen[version] = name
		migrations = append(migrations, migration{version: version, file: name})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].version < migrations[j].version
	})
	return migrations, nil
}

func ensureSchemaMigrations(db *gorm.DB) error {
	return db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`).Error
}

func appliedMigrations(db *gorm.DB) (map[string]bool, error) {
	var files []string
	if err := db.Table("schema_migrations").Pluck("filename", &files).Error; err != nil {
		return nil, err
	}
	done := make(map[string]bool, len(files))
	for _, file := range files {
		done[file] = true
	}
	return done, nil
}

func findMigrationsDir(dirName string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, dirName)
		info, err := os.Stat(candidate)
		if err == nil && info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}
