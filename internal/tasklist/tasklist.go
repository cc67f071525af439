// Package tasklist holds the ordered, in-memory task list and the
// operations the command interpreter drives: add, remove, rename, search,
// and whole-list persistence.
//
// A TaskList is not safe for concurrent use.
package tasklist

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"todo-list/internal/domain"
	"todo-list/internal/errors"
	"todo-list/internal/logging"
	"todo-list/internal/storage"
	"todo-list/internal/validation"
)

// StoreFactory returns the Store for a format.
type StoreFactory func(format storage.Format, logger *log.Logger) (storage.Store, error)

// Option configures a TaskList.
type Option func(*TaskList)

// WithLogger sets the logger used for debug output. The default discards.
func WithLogger(logger *log.Logger) Option {
	return func(l *TaskList) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithStoreFactory replaces storage.New as the source of stores.
func WithStoreFactory(factory StoreFactory) Option {
	return func(l *TaskList) {
		if factory != nil {
			l.newStore = factory
		}
	}
}

// TaskList is an ordered collection of tasks with unique ids.
type TaskList struct {
	tasks     []*domain.Task
	logger    *log.Logger
	newStore  StoreFactory
	validator *validation.Validator
}

// New creates an empty TaskList.
func New(opts ...Option) *TaskList {
	l := &TaskList{
		logger:    logging.Discard(),
		newStore:  storage.New,
		validator: validation.NewValidator(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Add creates a task from title and appends it. Title errors are returned unchanged.
func (l *TaskList) Add(title string) (*domain.Task, error) {
	task, err := domain.NewTask(title)
	if err != nil {
		return nil, err
	}
	l.tasks = append(l.tasks, task)
	l.logger.Debug("added task", "id", task.ID(), "count", len(l.tasks))
	return task, nil
}

// Remove deletes the task with id and reports whether one was removed.
func (l *TaskList) Remove(id uuid.UUID) bool {
	return l.removeWhere(func(task *domain.Task) bool {
		return task.ID() == id
	}) > 0
}

// RemoveByPrefix deletes every task whose id starts with prefix, ignoring case.
// Prefixes shorter than validation.MinIDPrefixLength never match.
func (l *TaskList) RemoveByPrefix(prefix string) bool {
	if !l.validator.IsValidIDPrefix(prefix) {
		l.logger.Debug("prefix too short", "prefix", prefix, "min", validation.MinIDPrefixLength)
		return false
	}

	lowered := strings.ToLower(prefix)
	removed := l.removeWhere(func(task *domain.Task) bool {
		return strings.HasPrefix(task.ID().String(), lowered)
	})
	l.logger.Debug("removed by prefix", "prefix", prefix, "removed", removed)
	return removed > 0
}

// Edit renames the task with id. It returns false if no task matches;
// a rename failure is returned as an error and leaves the title unchanged.
func (l *TaskList) Edit(id uuid.UUID, newTitle string) (bool, error) {
	task, ok := l.Get(id)
	if !ok {
		return false, nil
	}
	if err := task.Rename(newTitle); err != nil {
		return true, err
	}
	return true, nil
}

// Find returns, in list order, every task whose title contains substring,
// ignoring case. An empty substring matches every task.
func (l *TaskList) Find(substring string) []*domain.Task {
	needle := strings.ToLower(substring)
	matches := make([]*domain.Task, 0, len(l.tasks))
	for _, task := range l.tasks {
		if strings.Contains(strings.ToLower(task.Title()), needle) {
			matches = append(matches, task)
		}
	}
	return matches
}

// Get returns the task with id.
func (l *TaskList) Get(id uuid.UUID) (*domain.Task, bool) {
	for _, task := range l.tasks {
		if task.ID() == id {
			return task, true
		}
	}
	return nil, false
}

// Count returns the number of tasks.
func (l *TaskList) Count() int {
	return len(l.tasks)
}

// Items returns a snapshot of the tasks in insertion order. Changing the
// returned slice does not affect the list.
func (l *TaskList) Items() []*domain.Task {
	items := make([]*domain.Task, len(l.tasks))
	copy(items, l.tasks)
	return items
}

// Clear removes every task.
func (l *TaskList) Clear() {
	l.tasks = nil
}

// Replace swaps the whole list for tasks. Nil entries and repeated ids are
// rejected, in which case the list is left untouched.
func (l *TaskList) Replace(tasks []*domain.Task) error {
	seen := make(map[uuid.UUID]bool, len(tasks))
	for i, task := range tasks {
		if task == nil {
			return errors.NewInvalidArgumentError("tasks", fmt.Errorf("entry %d is nil", i))
		}
		if seen[task.ID()] {
			return errors.NewInvalidArgumentError("tasks", fmt.Errorf("duplicate id %s", task.ID()))
		}
		seen[task.ID()] = true
	}

	replaced := make([]*domain.Task, len(tasks))
	copy(replaced, tasks)
	l.tasks = replaced
	return nil
}

// SaveToFile overwrites path with the whole list in format.
func (l *TaskList) SaveToFile(ctx context.Context, path string, format storage.Format) error {
	store, err := l.newStore(format, l.logger)
	if err != nil {
		return err
	}
	return store.Save(ctx, path, l.tasks)
}

// LoadFromFile replaces the list with the contents of path. The file is read
// and parsed completely before the list changes; on error the list is kept.
// A missing file empties the list.
func (l *TaskList) LoadFromFile(ctx context.Context, path string, format storage.Format) error {
	store, err := l.newStore(format, l.logger)
	if err != nil {
		return err
	}

	tasks, err := store.Load(ctx, path)
	if err != nil {
		return err
	}
	return l.Replace(tasks)
}

func (l *TaskList) removeWhere(match func(*domain.Task) bool) int {
	kept := l.tasks[:0]
	removed := 0
	for _, task := range l.tasks {
		if match(task) {
			removed++
			continue
		}
		kept = append(kept, task)
	}
	for i := len(kept); i < len(l.tasks); i++ {
		l.tasks[i] = nil
	}
	l.tasks = kept
	return removed
}
