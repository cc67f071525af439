package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"todo-list/internal/config"
	"todo-list/internal/errors"
	"todo-list/internal/logging"
	"todo-list/internal/storage"
	"todo-list/internal/tasklist"
	"todo-list/internal/validation"
)

// App represents the main CLI application
type App struct {
	list         *tasklist.TaskList
	out          io.Writer
	logger       *log.Logger
	dataPath     string
	format       storage.Format
	registry     *CommandRegistry
	validator    *validation.TaskValidator
	errorHandler *ErrorHandler
	dirty        bool
}

// AppOption configures an App
type AppOption func(*App)

// WithOutput sets where command output is written. The default is stdout.
func WithOutput(w io.Writer) AppOption {
	return func(a *App) {
		if w != nil {
			a.out = w
		}
	}
}

// WithLogger sets the logger used for diagnostics
func WithLogger(logger *log.Logger) AppOption {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithDataFile makes the session read path on Open and rewrite it after every change
func WithDataFile(path string, format storage.Format) AppOption {
	return func(a *App) {
		a.dataPath = path
		a.format = format
	}
}

// NewApp creates a new CLI application around list
func NewApp(list *tasklist.TaskList, opts ...AppOption) *App {
	app := &App{
		list:         list,
		out:          os.Stdout,
		logger:       logging.Discard(),
		format:       storage.DefaultFormat,
		validator:    validation.NewTaskValidator(),
		errorHandler: NewErrorHandler(),
	}
	for _, opt := range opts {
		opt(app)
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// NewAppWithConfig creates an application bound to the configured data file
func NewAppWithConfig(cfg *config.Config, logger *log.Logger, out io.Writer) *App {
	list := tasklist.New(tasklist.WithLogger(logger))
	return NewApp(list,
		WithOutput(out),
		WithLogger(logger),
		WithDataFile(cfg.GetDataPath(), cfg.GetFormat()),
	)
}

// Open loads the data file, if one is configured
func (a *App) Open(ctx context.Context) error {
	if a.dataPath == "" {
		return nil
	}
	if err := a.list.LoadFromFile(ctx, a.dataPath, a.format); err != nil {
		a.logFailure("open", err)
		return a.errorHandler.Handle("load tasks", err)
	}
	a.logger.Debug("opened data file", "path", a.dataPath, "format", a.format, "count", a.list.Count())
	return nil
}

// Run executes the CLI application with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "", a.registry.GetUsage())
	}

	commandName := args[0]
	commandArgs := args[1:]

	if err := a.registry.Execute(ctx, commandName, commandArgs); err != nil {
		a.logFailure(commandName, err)
		return err
	}

	return a.persist(ctx)
}

// List returns the task list the application operates on
func (a *App) List() *tasklist.TaskList {
	return a.list
}

// markDirty records that the list changed and must be written back
func (a *App) markDirty() {
	a.dirty = true
}

func (a *App) persist(ctx context.Context) error {
	if !a.dirty || a.dataPath == "" {
		return nil
	}
	if err := a.list.SaveToFile(ctx, a.dataPath, a.format); err != nil {
		a.logFailure("persist", err)
		return a.errorHandler.Handle("save tasks", err)
	}
	a.dirty = false
	a.logger.Debug("persisted data file", "path", a.dataPath, "count", a.list.Count())
	return nil
}

func (a *App) logFailure(operation string, err error) {
	if errors.ShouldLogError(err) {
		a.logger.Error("operation failed", "operation", operation, "code", errors.GetErrorCode(err), "err", err)
	}
}
