package cli

import (
	"context"
	"fmt"

	"todo-list/internal/errors"
)

// RemoveCommand handles the remove command
type RemoveCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewRemoveCommand creates a new remove command handler
func NewRemoveCommand(app *App) *RemoveCommand {
	return &RemoveCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the remove command
func (c *RemoveCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "remove", "usage: remove <id>")
	}

	id, err := c.app.validator.ParseTaskID(args[0])
	if err != nil {
		return c.errorHandler.Handle("remove task", err)
	}

	if !c.app.list.Remove(id) {
		fmt.Fprintln(c.app.out, "Task not found.")
		return nil
	}

	c.app.markDirty()
	fmt.Fprintln(c.app.out, "Task removed.")
	return nil
}

// RemovePrefixCommand handles the remove-prefix command
type RemovePrefixCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewRemovePrefixCommand creates a new remove-prefix command handler
func NewRemovePrefixCommand(app *App) *RemovePrefixCommand {
	return &RemovePrefixCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the remove-prefix command
func (c *RemovePrefixCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "remove-prefix", "usage: remove-prefix <prefix>")
	}

	prefix := args[0]
	if err := c.app.validator.ValidateIDPrefix(prefix); err != nil {
		return c.errorHandler.Handle("remove tasks", err)
	}

	if !c.app.list.RemoveByPrefix(prefix) {
		fmt.Fprintln(c.app.out, "No tasks found with this prefix.")
		return nil
	}

	c.app.markDirty()
	fmt.Fprintln(c.app.out, "Task(s) removed.")
	return nil
}
