package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-list/internal/errors"
	"todo-list/internal/tasklist"
)

func TestShell_Run(t *testing.T) {
	var out bytes.Buffer
	app := NewApp(tasklist.New(), WithOutput(&out))

	input := strings.Join([]string{
		"add Buy milk",
		"",
		"ADD Buy bread",
		"add Walk dog",
		"find buy",
		"bogus",
		"remove nope",
		"exit",
		"add never reached",
	}, "\n")

	err := NewShell(app, strings.NewReader(input), false).Run(context.Background())
	require.NoError(t, err)

	items := app.List().Items()
	require.Len(t, items, 3)

	expected := "Task added.\nTask added.\nTask added.\n" +
		items[0].ID().String() + ": Buy milk\n" +
		items[1].ID().String() + ": Buy bread\n" +
		"Error: invalid input for command: unknown command\n"
	assert.True(t, strings.HasPrefix(out.String(), expected), out.String())
	assert.Contains(t, out.String(), "Error: failed to remove task: id has invalid format")
}

func TestShell_InteractivePromptAndHelp(t *testing.T) {
	var out bytes.Buffer
	app := NewApp(tasklist.New(), WithOutput(&out))

	err := NewShell(app, strings.NewReader("help\n"), true).Run(context.Background())
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "Todo List Application")
	assert.Contains(t, output, "Commands: add, done, edit, find, list, load, remove, remove-prefix, save, undone, help, exit")
	assert.Contains(t, output, "> ")
	assert.Contains(t, output, app.registry.GetUsage())
}

func TestShell_StopsOnCancelledContext(t *testing.T) {
	var out bytes.Buffer
	app := NewApp(tasklist.New(), WithOutput(&out))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewShell(app, strings.NewReader("add late\n"), false).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, app.List().Count())
}

func TestShell_KeepsTitlesAsTyped(t *testing.T) {
	var out bytes.Buffer
	app := NewApp(tasklist.New(), WithOutput(&out))

	err := NewShell(app, strings.NewReader("add Buy  milk,  eggs\n"), false).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, app.List().Count())
	task := app.List().Items()[0]
	assert.Equal(t, "Buy  milk,  eggs", task.Title())

	input := "edit " + task.ID().String() + "   Walk   the dog\n"
	err = NewShell(app, strings.NewReader(input), false).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Walk   the dog", task.Title())
}

func TestShell_QuotedPaths(t *testing.T) {
	var out bytes.Buffer
	app := NewApp(tasklist.New(), WithOutput(&out))
	path := filepath.Join(t.TempDir(), "my tasks.json")

	input := strings.Join([]string{
		"add Walk dog",
		`save "` + path + `" json`,
		"exit",
	}, "\n")
	err := NewShell(app, strings.NewReader(input), false).Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Tasks saved.")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title": "Walk dog"`)
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		rest     string
		expected []string
		isErr    bool
	}{
		{"empty", "list", "  ", nil, false},
		{"title kept whole", "add", " a  b ", []string{"a  b"}, false},
		{"find kept whole", "FIND", "milk  bread", []string{"milk  bread"}, false},
		{"edit splits id only", "edit", "abcd  new   title", []string{"abcd", "new   title"}, false},
		{"edit without title", "edit", "abcd", []string{"abcd"}, false},
		{"plain words", "remove", "abcd", []string{"abcd"}, false},
		{"double quotes", "load", `"a b.txt" text`, []string{"a b.txt", "text"}, false},
		{"single quotes", "save", `'x y.db' sqlite`, []string{"x y.db", "sqlite"}, false},
		{"unterminated quote", "save", `"a b.txt`, nil, true},
		{"shell operator", "remove", "abcd; rm x", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := splitArgs(tt.command, tt.rest)
			if tt.isErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, args)
		})
	}
}
