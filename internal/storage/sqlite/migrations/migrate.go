package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"
)

//go:embed *.sql
var migrationsFS embed.FS

var (
	// ErrNotMigrated means the database carries no task schema at all.
	ErrNotMigrated = errors.New("database has no task schema")
	// ErrVersionMismatch means the schema version is not the one this build writes.
	ErrVersionMismatch = errors.New("unsupported schema version")
)

// Migration is one embedded schema step with its revert script
type Migration struct {
	Version int
	Up      string
	Down    string
}

// RunMigrations brings the task schema up to Latest
func RunMigrations(ctx context.Context, db *sql.DB) error {
	latest, err := Latest()
	if err != nil {
		return err
	}
	return MigrateTo(ctx, db, latest)
}

// Latest returns the highest embedded migration version
func Latest() (int, error) {
	migrations, err := loadMigrations()
	if err != nil {
		return 0, fmt.Errorf("load migrations: %w", err)
	}
	if len(migrations) == 0 {
		return 0, nil
	}
	return migrations[len(migrations)-1].Version, nil
}

// MigrateTo applies up scripts, or reverts with down scripts, until the
// schema is at version. Version 0 removes every task table.
func MigrateTo(ctx context.Context, db *sql.DB, version int) error {
	migrations, err := loadMigrations()
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	if !knownVersion(migrations, version) {
		return fmt.Errorf("unknown migration version %d", version)
	}

	if err := createMigrationsTable(ctx, db); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return fmt.Errorf("read applied migrations: %w", err)
	}

	for i := len(migrations) - 1; i >= 0; i-- {
		m := migrations[i]
		if m.Version > version && applied[m.Version] {
			if err := revertMigration(ctx, db, m); err != nil {
				return fmt.Errorf("revert migration %d: %w", m.Version, err)
			}
		}
	}

	for _, m := range migrations {
		if m.Version <= version && !applied[m.Version] {
			if err := applyMigration(ctx, db, m); err != nil {
				return fmt.Errorf("apply migration %d: %w", m.Version, err)
			}
		}
	}
	return nil
}

// CheckVersion reports the schema version of db without writing to it.
// It fails with ErrNotMigrated when the task tables are missing and with
// ErrVersionMismatch when the version differs from Latest.
func CheckVersion(ctx context.Context, db *sql.DB) (int, error) {
	latest, err := Latest()
	if err != nil {
		return 0, err
	}

	tables, err := existingTables(ctx, db)
	if err != nil {
		return 0, err
	}
	for _, name := range []string{"migrations", "tasks"} {
		if !tables[name] {
			return 0, fmt.Errorf("%w: missing table %s", ErrNotMigrated, name)
		}
	}

	var version sql.NullInt64
	if err := db.QueryRowContext(ctx, `SELECT MAX(version) FROM migrations`).Scan(&version); err != nil {
		return 0, err
	}
	if !version.Valid {
		return 0, fmt.Errorf("%w: no migrations recorded", ErrNotMigrated)
	}
	if int(version.Int64) != latest {
		return int(version.Int64), fmt.Errorf("%w: found %d, want %d", ErrVersionMismatch, version.Int64, latest)
	}
	return latest, nil
}

func knownVersion(migrations []Migration, version int) bool {
	if version == 0 {
		return true
	}
	for _, m := range migrations {
		if m.Version == version {
			return true
		}
	}
	return false
}

func createMigrationsTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

func existingTables(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables[name] = true
	}
	return tables, rows.Err()
}

func loadMigrations() ([]Migration, error) {
	entries, err := migrationsFS.ReadDir(".")
	if err != nil {
		return nil, err
	}

	var migrations []Migration
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		version := extractVersion(entry.Name())
		if version == 0 {
			continue
		}

		up, err := migrationsFS.ReadFile(entry.Name())
		if err != nil {
			return nil, err
		}
		down, err := migrationsFS.ReadFile(strings.TrimSuffix(entry.Name(), ".up.sql") + ".down.sql")
		if err != nil {
			return nil, fmt.Errorf("migration %d has no down script: %w", version, err)
		}

		migrations = append(migrations, Migration{Version: version, Up: string(up), Down: string(down)})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT version FROM migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func applyMigration(ctx context.Context, db *sql.DB, m Migration) error {
	return inTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, m.Up); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO migrations (version) VALUES (?)`, m.Version)
		return err
	})
}

func revertMigration(ctx context.Context, db *sql.DB, m Migration) error {
	return inTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, m.Down); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM migrations WHERE version = ?`, m.Version)
		return err
	})
}

// inTx mirrors sqlite.ExecuteInTx; that package imports this one.
func inTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func extractVersion(filename string) int {
	var version int
	fmt.Sscanf(filename, "%d_", &version)
	return version
}
