package cli

import (
	"context"
	"fmt"
	"strings"

	"todo-list/internal/errors"
)

// ListCommand handles the list command
type ListCommand struct {
	app *App
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errors.NewInvalidInputError("command", "list", "usage: list")
	}

	items := c.app.list.Items()
	if len(items) == 0 {
		fmt.Fprintln(c.app.out, "No tasks.")
		return nil
	}
	for _, task := range items {
		fmt.Fprintln(c.app.out, task.String())
	}
	return nil
}

// FindCommand handles the find command
type FindCommand struct {
	app *App
}

// NewFindCommand creates a new find command handler
func NewFindCommand(app *App) *FindCommand {
	return &FindCommand{app: app}
}

// Execute runs the find command
func (c *FindCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "find", "usage: find <text>")
	}

	matches := c.app.list.Find(strings.Join(args, " "))
	if len(matches) == 0 {
		fmt.Fprintln(c.app.out, "No tasks found.")
		return nil
	}
	for _, task := range matches {
		fmt.Fprintf(c.app.out, "%s: %s\n", task.ID(), task.Title())
	}
	return nil
}
