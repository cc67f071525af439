package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"todo-list/internal/domain"
)

// DelimitedStore persists tasks as "<id>,<title>,<true|false>" lines.
// Titles are written as-is; a title containing a comma or newline will not
// survive a round trip.
type DelimitedStore struct {
	logger *log.Logger
}

// NewDelimitedStore creates a DelimitedStore.
func NewDelimitedStore(logger *log.Logger) *DelimitedStore {
	return &DelimitedStore{logger: logger}
}

// Save writes one line per task, in list order.
func (s *DelimitedStore) Save(ctx context.Context, path string, tasks []*domain.Task) error {
	var buf bytes.Buffer
	for _, task := range tasks {
		fmt.Fprintf(&buf, "%s,%s,%t\n", task.ID(), task.Title(), task.Done())
	}

	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return err
	}
	s.logger.Debug("saved tasks", "format", FormatText, "path", path, "count", len(tasks))
	return nil
}

// Load reads every well-formed line from path. Malformed lines are skipped:
// fewer than three fields, an unparseable or repeated id, or a blank title.
func (s *DelimitedStore) Load(ctx context.Context, path string) ([]*domain.Task, error) {
	data, exists, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		s.logger.Debug("nothing to load", "path", path)
		return nil, nil
	}

	var tasks []*domain.Task
	seen := make(map[uuid.UUID]bool)
	skipped := 0

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}

		task, reason := parseDelimitedLine(line)
		if task == nil {
			skipped++
			s.logger.Debug("skipping line", "path", path, "line", i+1, "reason", reason)
			continue
		}
		if seen[task.ID()] {
			skipped++
			s.logger.Debug("skipping line", "path", path, "line", i+1, "reason", "duplicate id")
			continue
		}

		seen[task.ID()] = true
		tasks = append(tasks, task)
	}

	s.logger.Debug("loaded tasks", "format", FormatText, "path", path, "count", len(tasks), "skipped", skipped)
	return tasks, nil
}

// parseDelimitedLine returns the task encoded by line, or nil and the reason it was rejected.
func parseDelimitedLine(line string) (*domain.Task, string) {
	parts := strings.Split(line, ",")
	if len(parts) < 3 {
		return nil, "fewer than 3 fields"
	}

	id, err := uuid.Parse(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, "unparseable id"
	}

	// Files written by older versions use "True"/"False".
	done := strings.EqualFold(strings.TrimSpace(parts[2]), "true")

	task, err := domain.Restore(id, parts[1], done)
	if err != nil {
		return nil, "invalid title"
	}
	return task, ""
}
