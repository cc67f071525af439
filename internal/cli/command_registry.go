package cli

import (
	"context"
	"sort"
	"strings"

	"todo-list/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	// Register all commands
	registry.Register("add", NewAddCommand(app))
	registry.Register("list", NewListCommand(app))
	registry.Register("remove", NewRemoveCommand(app))
	registry.Register("remove-prefix", NewRemovePrefixCommand(app))
	registry.Register("edit", NewEditCommand(app))
	registry.Register("find", NewFindCommand(app))
	registry.Register("done", NewStatusCommand(app, true))
	registry.Register("undone", NewStatusCommand(app, false))
	registry.Register("save", NewSaveCommand(app))
	registry.Register("load", NewLoadCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[strings.ToLower(commandName)]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command")
	}
	return command.Execute(ctx, args)
}

// Names returns the registered command names in alphabetical order
func (r *CommandRegistry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetUsage returns the usage string for the CLI
func (r *CommandRegistry) GetUsage() string {
	return "usage: add <title> | list | remove <id> | remove-prefix <prefix> | edit <id> <title> | " +
		"find <text> | done <id> | undone <id> | save <path> [text|json|sqlite] | load <path> [text|json|sqlite]"
}
