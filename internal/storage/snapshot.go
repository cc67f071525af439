package storage

import (
	"context"

	"github.com/charmbracelet/log"

	"todo-list/internal/domain"
	"todo-list/internal/storage/sqlite"
)

// SnapshotStore persists tasks as a single-table SQLite database.
type SnapshotStore struct {
	logger *log.Logger
}

// NewSnapshotStore creates a SnapshotStore.
func NewSnapshotStore(logger *log.Logger) *SnapshotStore {
	return &SnapshotStore{logger: logger}
}

// Save builds a fresh database next to path and renames it into place.
func (s *SnapshotStore) Save(ctx context.Context, path string, tasks []*domain.Task) error {
	if err := sqlite.SaveSnapshot(ctx, path, tasks); err != nil {
		return err
	}
	s.logger.Debug("saved tasks", "format", FormatSQLite, "path", path, "count", len(tasks))
	return nil
}

// Load reads every task from the database at path.
func (s *SnapshotStore) Load(ctx context.Context, path string) ([]*domain.Task, error) {
	tasks, err := sqlite.LoadSnapshot(ctx, path)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("loaded tasks", "format", FormatSQLite, "path", path, "count", len(tasks))
	return tasks, nil
}
