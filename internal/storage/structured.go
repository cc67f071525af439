package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"todo-list/internal/domain"
	"todo-list/internal/errors"
)

const jsonIndent = "  "

// StructuredStore persists tasks as an indented JSON array of
// {"id", "title", "done"} objects.
type StructuredStore struct {
	logger *log.Logger
}

// NewStructuredStore creates a StructuredStore.
func NewStructuredStore(logger *log.Logger) *StructuredStore {
	return &StructuredStore{logger: logger}
}

// Save writes the whole list as one JSON document.
func (s *StructuredStore) Save(ctx context.Context, path string, tasks []*domain.Task) error {
	data, err := json.MarshalIndent(toRecords(tasks), "", jsonIndent)
	if err != nil {
		return errors.WrapError(err, errors.ErrorTypeIO, "encode task list")
	}
	data = append(data, '\n')

	if err := writeFileAtomic(path, data); err != nil {
		return err
	}
	s.logger.Debug("saved tasks", "format", FormatJSON, "path", path, "count", len(tasks))
	return nil
}

// Load reads the JSON document at path. Unlike the delimited format, a single
// bad record fails the whole load: the document is validated against the
// task list schema and every record is rebuilt through domain.Restore.
func (s *StructuredStore) Load(ctx context.Context, path string) ([]*domain.Task, error) {
	data, exists, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		s.logger.Debug("nothing to load", "path", path)
		return nil, nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	isNull, err := validateDocument(data)
	if err != nil {
		return nil, errors.NewMalformedRecordError(path, "document does not match task list schema", err)
	}
	if isNull {
		return nil, nil
	}

	var records []storedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.NewMalformedRecordError(path, "cannot decode task list", err)
	}

	tasks := make([]*domain.Task, 0, len(records))
	seen := make(map[uuid.UUID]bool, len(records))
	for i, rec := range records {
		task, err := fromRecord(rec)
		if err != nil {
			return nil, errors.NewMalformedRecordError(path, fmt.Sprintf("record %d", i), err)
		}
		if seen[task.ID()] {
			return nil, errors.NewMalformedRecordError(path, fmt.Sprintf("record %d: duplicate id %s", i, task.ID()), nil)
		}
		seen[task.ID()] = true
		tasks = append(tasks, task)
	}

	s.logger.Debug("loaded tasks", "format", FormatJSON, "path", path, "count", len(tasks))
	return tasks, nil
}
