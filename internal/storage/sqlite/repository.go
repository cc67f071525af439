package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"todo-list/internal/domain"
	"todo-list/internal/errors"
	"todo-list/internal/storage/sqlite/migrations"
)

// Repository defines the snapshot operations on a task database
type Repository interface {
	// ReplaceTasks deletes every stored task and inserts tasks in order, in one transaction.
	ReplaceTasks(ctx context.Context, tasks []*domain.Task) error
	// ListTasks returns every stored task in insertion order.
	ListTasks(ctx context.Context) ([]*domain.Task, error)
	// CountTasks returns the number of stored tasks.
	CountTasks(ctx context.Context) (int, error)

	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New opens (creating if needed) the database at dbPath and runs migrations
func New(ctx context.Context, dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewIOError("open database", dbPath, err)
	}

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewIOError("migrate database", dbPath, err)
	}

	return &SQLiteRepository{db: db}, nil
}

// OpenReadOnly opens an existing task database without writing to it. A file
// that is not SQLite, or whose schema is not at the latest migration, is a
// MalformedRecord error.
func OpenReadOnly(ctx context.Context, dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", readOnlyDSN(dbPath))
	if err != nil {
		return nil, errors.NewIOError("open database", dbPath, err)
	}

	if _, err := migrations.CheckVersion(ctx, db); err != nil {
		db.Close()
		if stderrors.Is(err, migrations.ErrNotMigrated) ||
			stderrors.Is(err, migrations.ErrVersionMismatch) ||
			isNotADatabase(err) {
			return nil, errors.NewMalformedRecordError(dbPath, "not a task snapshot", err)
		}
		return nil, errors.NewIOError("open database", dbPath, err)
	}

	return &SQLiteRepository{db: db}, nil
}

// readOnlyDSN builds a SQLite URI filename opened with mode=ro
func readOnlyDSN(path string) string {
	escaped := strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23").Replace(path)
	return "file:" + escaped + "?mode=ro"
}

func isNotADatabase(err error) bool {
	var sqliteErr *sqlitedriver.Error
	if !stderrors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() & 0xff {
	case sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_CORRUPT:
		return true
	}
	return false
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// ReplaceTasks replaces the stored list with tasks
func (r *SQLiteRepository) ReplaceTasks(ctx context.Context, tasks []*domain.Task) error {
	return ExecuteInTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
			return HandleDatabaseError("clear tasks", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (position, id, title, done)
		VALUES (?, ?, ?, ?)`)
		if err != nil {
			return HandleDatabaseError("prepare insert", err)
		}
		defer stmt.Close()

		for i, task := range tasks {
			if _, err := stmt.ExecContext(ctx, i, task.ID().String(), task.Title(), task.Done()); err != nil {
				return HandleDatabaseError("insert task", err)
			}
		}
		return nil
	})
}

// ListTasks retrieves all tasks in insertion order
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	query := `SELECT id, title, done FROM tasks ORDER BY position ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks")
}

// CountTasks returns the number of stored tasks
func (r *SQLiteRepository) CountTasks(ctx context.Context) (int, error) {
	return QuerySingleValue[int](ctx, r.db, `SELECT COUNT(*) FROM tasks`)
}

// SaveSnapshot writes tasks to a fresh database next to path and renames it over path.
func SaveSnapshot(ctx context.Context, path string, tasks []*domain.Task) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.NewIOError("create temp database", path, err)
	}
	tmpName := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpName)

	repo, err := New(ctx, tmpName)
	if err != nil {
		return err
	}
	if err := repo.ReplaceTasks(ctx, tasks); err != nil {
		repo.Close()
		return err
	}
	if err := repo.Close(); err != nil {
		return errors.NewIOError("close database", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.NewIOError("replace", path, err)
	}
	return nil
}

// LoadSnapshot reads every task from the database at path without modifying
// it. A missing file yields no tasks.
func LoadSnapshot(ctx context.Context, path string) ([]*domain.Task, error) {
	if _, err := os.Stat(path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.NewIOError("stat", path, err)
	}

	repo, err := OpenReadOnly(ctx, path)
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	return repo.ListTasks(ctx)
}
