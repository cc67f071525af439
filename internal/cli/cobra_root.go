package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"todo-list/internal/config"
	"todo-list/internal/logging"
	"todo-list/internal/tasklist"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	config *config.Config
	logger *log.Logger
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// RootOption configures a RootCommand
type RootOption func(*RootCommand)

// WithIO replaces stdin, stdout and stderr
func WithIO(in io.Reader, out, errOut io.Writer) RootOption {
	return func(r *RootCommand) {
		r.in = in
		r.out = out
		r.errOut = errOut
	}
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(opts ...RootOption) *RootCommand {
	root := &RootCommand{
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(root)
	}

	root.cmd = &cobra.Command{
		Use:   "todo",
		Short: "A command-line to-do list",
		Long: `todo keeps a list of short tasks in a local file.

EXAMPLES:
  todo add "Buy milk"                      # Add a task
  todo list                                # List every task with its status
  todo find milk                           # Case-insensitive title search
  todo done 3f2b8c1e-9d4a-4c2b-8e7f-1a2b3c4d5e6f
  todo remove-prefix 3f2b                  # Remove tasks by id prefix (4+ characters)
  todo save backup.json json               # Export the list
  todo load backup.json json               # Replace the list from a file
  todo shell                               # Interactive session

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > config file > defaults

  Config file:      TODO_CONFIG or --config (default: ~/.todo/config.toml)
  Storage:
    TODO_DATA_DIR                          Data directory (default: ~/.todo)
    TODO_DATA_FILE                         Data file name (default: tasks.txt)
    TODO_FORMAT                            Data file format: text, json, sqlite (default: text)
  Logging:
    TODO_LOG_LEVEL                         debug, info, warn, error (default: warn)
    TODO_LOG_FORMAT                        text, json, logfmt (default: text)
    TODO_DEBUG                             Force debug logging
  Application:
    TODO_TIMEOUT                           Timeout for one-shot commands (default: 30s)
    TODO_VERBOSE                           Enable verbose output (default: false)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig(cmd.Flags())
		},
	}
	root.cmd.SetIn(root.in)
	root.cmd.SetOut(root.out)
	root.cmd.SetErr(root.errOut)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs sets the arguments used instead of os.Args
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Config file (overrides TODO_CONFIG)")

	// Storage configuration
	flags.String("data-dir", "", "Data directory (overrides TODO_DATA_DIR)")
	flags.StringP("file", "f", "", "Data file name or path (overrides TODO_DATA_FILE)")
	flags.String("format", "", "Data file format: text, json, sqlite (overrides TODO_FORMAT)")

	// Logging configuration
	flags.String("log-level", "", "Log level: debug, info, warn, error (overrides TODO_LOG_LEVEL)")
	flags.String("log-format", "", "Log format: text, json, logfmt (overrides TODO_LOG_FORMAT)")

	// Application configuration
	flags.Duration("timeout", 0, "Timeout for one-shot commands (overrides TODO_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable verbose output (overrides TODO_VERBOSE)")
}

// overridesFromFlags collects the flags the user actually set
func overridesFromFlags(flags *pflag.FlagSet) *config.ConfigOverrides {
	overrides := &config.ConfigOverrides{}

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		value, _ := flags.GetString(name)
		return &value
	}

	overrides.ConfigFile = stringFlag("config")
	overrides.DataDir = stringFlag("data-dir")
	overrides.DataFile = stringFlag("file")
	overrides.Format = stringFlag("format")
	overrides.LogLevel = stringFlag("log-level")
	overrides.LogFormat = stringFlag("log-format")

	if flags.Changed("timeout") {
		timeout, _ := flags.GetDuration("timeout")
		overrides.Timeout = &timeout
	}
	if flags.Changed("verbose") {
		verbose, _ := flags.GetBool("verbose")
		overrides.Verbose = &verbose
	}

	return overrides
}

// loadConfig builds the configuration and logger before any command runs
func (r *RootCommand) loadConfig(flags *pflag.FlagSet) error {
	cfg, err := config.NewLoader().LoadWithOverrides(overridesFromFlags(flags))
	if err != nil {
		return NewErrorHandler().Handle("load configuration", err)
	}

	r.logger = logging.NewFromConfig(cfg.Logging.Level, cfg.Logging.Format, cfg.Application.Verbose, r.errOut)
	logging.SetDefault(r.logger)

	if err := config.EnsureDataDir(cfg); err != nil {
		return NewErrorHandler().Handle("prepare data directory", err)
	}

	r.config = cfg
	logging.Debugf("using data file %s (%s)", cfg.GetDataPath(), cfg.GetFormat())
	return nil
}

// runOneShot opens the data file, runs one command and writes the file back if it changed
func (r *RootCommand) runOneShot(cmd *cobra.Command, name string, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
	defer cancel()

	app := NewAppWithConfig(r.config, r.logger, r.out)
	if err := app.Open(ctx); err != nil {
		return err
	}
	return app.Run(ctx, append([]string{name}, args...))
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	oneShot := func(name string) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			return r.runOneShot(cmd, name, args)
		}
	}

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Long:  "Add a task to the end of the list. Surrounding whitespace is trimmed; the title may not be blank.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  oneShot("add"),
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all tasks",
		Long:  "List every task in insertion order as \"<id>: <title> (Done|Pending)\".",
		Args:  cobra.NoArgs,
		RunE:  oneShot("list"),
	}

	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a task by id",
		Args:  cobra.ExactArgs(1),
		RunE:  oneShot("remove"),
	}

	removePrefixCmd := &cobra.Command{
		Use:   "remove-prefix <prefix>",
		Short: "Remove every task whose id starts with prefix",
		Long:  "Remove every task whose id starts with prefix, ignoring case. The prefix must be at least 4 characters.",
		Args:  cobra.ExactArgs(1),
		RunE:  oneShot("remove-prefix"),
	}

	editCmd := &cobra.Command{
		Use:   "edit <id> <title>",
		Short: "Rename a task",
		Args:  cobra.MinimumNArgs(2),
		RunE:  oneShot("edit"),
	}

	findCmd := &cobra.Command{
		Use:   "find <text>",
		Short: "Find tasks whose title contains text",
		Long:  "Find tasks whose title contains text, ignoring case. Results keep list order.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  oneShot("find"),
	}

	doneCmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as done",
		Args:  cobra.ExactArgs(1),
		RunE:  oneShot("done"),
	}

	undoneCmd := &cobra.Command{
		Use:   "undone <id>",
		Short: "Mark a task as pending",
		Args:  cobra.ExactArgs(1),
		RunE:  oneShot("undone"),
	}

	saveCmd := &cobra.Command{
		Use:   "save <path> [text|json|sqlite]",
		Short: "Write the list to another file",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  oneShot("save"),
	}

	loadCmd := &cobra.Command{
		Use:   "load <path> [text|json|sqlite]",
		Short: "Replace the list with the contents of a file",
		Long: `Replace the list with the contents of a file.

The file is read completely before the list changes. Malformed lines in text
files are skipped; a malformed JSON or SQLite file leaves the list untouched.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: oneShot("load"),
	}

	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Long: `Start an interactive session reading one command per line.

Changes are written to the data file after every command unless --memory is set,
in which case the session starts empty and nothing is written unless saved explicitly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			memory, _ := cmd.Flags().GetBool("memory")
			return r.runShell(cmd.Context(), memory)
		},
	}
	shellCmd.Flags().Bool("memory", false, "Do not read or write the data file")

	r.cmd.AddCommand(
		addCmd,
		listCmd,
		removeCmd,
		removePrefixCmd,
		editCmd,
		findCmd,
		doneCmd,
		undoneCmd,
		saveCmd,
		loadCmd,
		shellCmd,
	)
}

// runShell starts the interactive session
func (r *RootCommand) runShell(ctx context.Context, memory bool) error {
	var app *App
	if memory {
		app = NewApp(tasklist.New(tasklist.WithLogger(r.logger)), WithOutput(r.out), WithLogger(r.logger))
	} else {
		app = NewAppWithConfig(r.config, r.logger, r.out)
		if err := app.Open(ctx); err != nil {
			return err
		}
	}

	return NewShell(app, r.in, isTerminal(r.in)).Run(ctx)
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 30 * time.Second
}

// isTerminal reports whether in is an interactive terminal
func isTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
