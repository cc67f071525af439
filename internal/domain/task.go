package domain

import (
	"fmt"

	"github.com/google/uuid"

	"todo-list/internal/errors"
	"todo-list/internal/validation"
)

// newID is a variable that can be replaced in tests
var newID = uuid.New

var titleValidator = validation.NewTaskValidator()

// Task represents one to-do entry.
type Task struct {
	id    uuid.UUID
	title string
	done  bool
}

// NewTask creates a pending task with a fresh id and the trimmed title.
// An empty or whitespace-only title is rejected with an InvalidArgument error.
func NewTask(title string) (*Task, error) {
	cleaned, err := cleanTitle(title)
	if err != nil {
		return nil, err
	}

	return &Task{
		id:    newID(),
		title: cleaned,
	}, nil
}

// Restore rebuilds a persisted task, keeping its id and completion flag.
// Any parsed id is accepted, including the nil UUID; the title goes through
// the same validation as NewTask.
func Restore(id uuid.UUID, title string, done bool) (*Task, error) {
	cleaned, err := cleanTitle(title)
	if err != nil {
		return nil, err
	}

	return &Task{
		id:    id,
		title: cleaned,
		done:  done,
	}, nil
}

// ID returns the task's immutable identifier.
func (t *Task) ID() uuid.UUID {
	return t.id
}

// Title returns the current title.
func (t *Task) Title() string {
	return t.title
}

// Done reports whether the task is complete.
func (t *Task) Done() bool {
	return t.done
}

// MarkDone marks the task as complete.
func (t *Task) MarkDone() {
	t.done = true
}

// MarkUndone marks the task as pending.
func (t *Task) MarkUndone() {
	t.done = false
}

// Rename replaces the title. On error the current title is kept.
func (t *Task) Rename(newTitle string) error {
	cleaned, err := cleanTitle(newTitle)
	if err != nil {
		return err
	}
	t.title = cleaned
	return nil
}

// Status returns "Done" or "Pending" for display purposes.
func (t *Task) Status() string {
	if t.done {
		return "Done"
	}
	return "Pending"
}

// String returns the listing form "<id>: <title> (<status>)".
func (t *Task) String() string {
	return fmt.Sprintf("%s: %s (%s)", t.id, t.title, t.Status())
}

func cleanTitle(title string) (string, error) {
	cleaned, err := titleValidator.GetValidTitle(title)
	if err != nil {
		return "", errors.NewInvalidArgumentError("title", err)
	}
	return cleaned, nil
}
