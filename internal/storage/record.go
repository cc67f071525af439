package storage

import (
	"fmt"

	"github.com/google/uuid"

	"todo-list/internal/domain"
)

// taskRecord is the persisted shape of a task in the JSON format.
type taskRecord struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// toRecord converts a domain Task to its persisted form.
func toRecord(task *domain.Task) taskRecord {
	return taskRecord{
		ID:    task.ID().String(),
		Title: task.Title(),
		Done:  task.Done(),
	}
}

// storedRecord is what the JSON loader decodes. Besides the current keys it
// reads the PascalCase layout (Id, Title, IsDone) of older task files; the
// schema admits exactly one of the two per record. Id and Title land in ID
// and Title through encoding/json's case-insensitive key matching.
type storedRecord struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Done   bool   `json:"done"`
	IsDone bool   `json:"IsDone"`
}

// fromRecord rebuilds a domain Task, re-running title validation.
func fromRecord(rec storedRecord) (*domain.Task, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid id %q: %w", rec.ID, err)
	}
	return domain.Restore(id, rec.Title, rec.Done || rec.IsDone)
}

// toRecords converts a slice of domain Tasks. The result is never nil.
func toRecords(tasks []*domain.Task) []taskRecord {
	records := make([]taskRecord, len(tasks))
	for i, task := range tasks {
		records[i] = toRecord(task)
	}
	return records
}
