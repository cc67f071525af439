package cli

import (
	"context"
	"fmt"

	"todo-list/internal/errors"
	"todo-list/internal/storage"
)

// parsePathAndFormat reads "<path> [format]"; the format defaults to text
func parsePathAndFormat(command string, args []string) (string, storage.Format, error) {
	if len(args) < 1 || len(args) > 2 {
		return "", "", errors.NewInvalidInputError("command", command,
			fmt.Sprintf("usage: %s <path> [text|json|sqlite]", command))
	}

	format := storage.DefaultFormat
	if len(args) == 2 {
		parsed, err := storage.ParseFormat(args[1])
		if err != nil {
			return "", "", err
		}
		format = parsed
	}
	return args[0], format, nil
}

// SaveCommand handles the save command
type SaveCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewSaveCommand creates a new save command handler
func NewSaveCommand(app *App) *SaveCommand {
	return &SaveCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the save command
func (c *SaveCommand) Execute(ctx context.Context, args []string) error {
	path, format, err := parsePathAndFormat("save", args)
	if err != nil {
		return err
	}

	if err := c.app.list.SaveToFile(ctx, path, format); err != nil {
		return c.errorHandler.Handle("save tasks", err)
	}

	fmt.Fprintln(c.app.out, "Tasks saved.")
	return nil
}

// LoadCommand handles the load command
type LoadCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewLoadCommand creates a new load command handler
func NewLoadCommand(app *App) *LoadCommand {
	return &LoadCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the load command
func (c *LoadCommand) Execute(ctx context.Context, args []string) error {
	path, format, err := parsePathAndFormat("load", args)
	if err != nil {
		return err
	}

	if err := c.app.list.LoadFromFile(ctx, path, format); err != nil {
		return c.errorHandler.Handle("load tasks", err)
	}

	c.app.markDirty()
	fmt.Fprintln(c.app.out, "Tasks loaded.")
	return nil
}
