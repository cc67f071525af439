package sqlite

import (
	"fmt"

	"github.com/google/uuid"

	"todo-list/internal/domain"
	"todo-list/internal/errors"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTask scans a single task row (id, title, done) and rebuilds it through domain.Restore
func ScanTask(scanner Scanner) (*domain.Task, error) {
	var (
		rawID string
		title string
		done  bool
	)
	if err := scanner.Scan(&rawID, &title, &done); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, errors.NewMalformedRecordError("tasks table", fmt.Sprintf("invalid id %q", rawID), err)
	}

	task, err := domain.Restore(id, title, done)
	if err != nil {
		return nil, errors.NewMalformedRecordError("tasks table", fmt.Sprintf("task %s", rawID), err)
	}
	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
