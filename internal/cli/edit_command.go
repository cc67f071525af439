package cli

import (
	"context"
	"fmt"
	"strings"

	"todo-list/internal/errors"
)

// EditCommand handles the edit command
type EditCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the edit command
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidInputError("command", "edit", "usage: edit <id> <title>")
	}

	id, err := c.app.validator.ParseTaskID(args[0])
	if err != nil {
		return c.errorHandler.Handle("edit task", err)
	}

	found, err := c.app.list.Edit(id, strings.Join(args[1:], " "))
	if err != nil {
		return c.errorHandler.Handle("edit task", err)
	}
	if !found {
		fmt.Fprintln(c.app.out, "Task not found.")
		return nil
	}

	c.app.markDirty()
	fmt.Fprintln(c.app.out, "Task updated.")
	return nil
}

// StatusCommand handles the done and undone commands
type StatusCommand struct {
	app          *App
	done         bool
	errorHandler *ErrorHandler
}

// NewStatusCommand creates a handler that marks a task done or pending
func NewStatusCommand(app *App, done bool) *StatusCommand {
	return &StatusCommand{
		app:          app,
		done:         done,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the done or undone command
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	name := "undone"
	if c.done {
		name = "done"
	}
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", name, fmt.Sprintf("usage: %s <id>", name))
	}

	id, err := c.app.validator.ParseTaskID(args[0])
	if err != nil {
		return c.errorHandler.Handle("update task", err)
	}

	task, ok := c.app.list.Get(id)
	if !ok {
		return errors.NewNotFoundError("task", id.String())
	}

	if c.done {
		task.MarkDone()
	} else {
		task.MarkUndone()
	}

	c.app.markDirty()
	fmt.Fprintf(c.app.out, "Task marked as %s.\n", strings.ToLower(task.Status()))
	return nil
}
