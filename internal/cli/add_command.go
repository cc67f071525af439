package cli

import (
	"context"
	"fmt"
	"strings"

	"todo-list/internal/errors"
)

// AddCommand handles the add command
type AddCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "add", "usage: add <title>")
	}

	task, err := c.app.list.Add(strings.Join(args, " "))
	if err != nil {
		return c.errorHandler.Handle("add task", err)
	}

	c.app.markDirty()
	c.app.logger.Info("task added", "id", task.ID())
	fmt.Fprintln(c.app.out, "Task added.")
	return nil
}
