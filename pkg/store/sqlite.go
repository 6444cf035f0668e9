package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/voidshard/beanbook/pkg/domain"
	"github.com/voidshard/beanbook/pkg/logger"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const upsertEntry = `INSERT OR REPLACE INTO entries (id, report, period, date, category, type, item, metric, value)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// SQLite upserts entries into an "entries" table, keyed by entry ID.
type SQLite struct {
	path string
}

func NewSQLite(path string) Store {
	return &SQLite{path: path}
}

func (s *SQLite) Write(ctx context.Context, entries []*domain.Entry) error {
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create db directory: %w", err)
		}
	}
	if err := RunMigrations(s.path); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("open sqlite database: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertEntry)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		var value sql.NullFloat64
		if e.Value != nil {
			value = sql.NullFloat64{Float64: *e.Value, Valid: true}
		}
		_, err := stmt.ExecContext(ctx, e.ID, e.Report, e.Period, e.Date, e.Category, e.Type, e.Item, e.Metric, value)
		if err != nil {
			return fmt.Errorf("upsert entry %s: %w", e.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	log := logger.FromContext(ctx)
	log.Info().Str("db", s.path).Int("entries", len(entries)).Msg("wrote entries")
	return nil
}

// RunMigrations brings the database at dbPath up to the latest schema.
func RunMigrations(dbPath string) error {
	migrateDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	driver, err := sqlite.WithInstance(migrateDB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}

	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", d, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
