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
	"todo-list/internal/storage"
	"todo-list/internal/tasklist"
)

// setupTestApp returns an app bound to a fresh text data file
func setupTestApp(t *testing.T) (*App, *bytes.Buffer, string) {
	t.Helper()
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "tasks.txt")

	app := NewApp(tasklist.New(), WithOutput(&out), WithDataFile(path, storage.FormatText))
	require.NoError(t, app.Open(context.Background()))
	return app, &out, path
}

func run(t *testing.T, app *App, out *bytes.Buffer, args ...string) (string, error) {
	t.Helper()
	out.Reset()
	err := app.Run(context.Background(), args)
	return out.String(), err
}

func addTask(t *testing.T, app *App, out *bytes.Buffer, title string) string {
	t.Helper()
	_, err := run(t, app, out, "add", title)
	require.NoError(t, err)
	items := app.List().Items()
	return items[len(items)-1].ID().String()
}

func TestApp_RunWithoutCommand(t *testing.T) {
	app, _, _ := setupTestApp(t)
	err := app.Run(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	assert.Contains(t, err.Error(), "usage:")
}

func TestAddCommand(t *testing.T) {
	app, out, path := setupTestApp(t)

	t.Run("adds and persists", func(t *testing.T) {
		output, err := run(t, app, out, "add", "Buy", "milk")
		require.NoError(t, err)
		assert.Equal(t, "Task added.\n", output)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), ",Buy milk,false\n")
	})

	t.Run("requires a title", func(t *testing.T) {
		_, err := run(t, app, out, "add")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "usage: add <title>")
	})

	t.Run("rejects blank title", func(t *testing.T) {
		_, err := run(t, app, out, "add", "   ")
		require.Error(t, err)
		assert.Equal(t, "failed to add task: title is required", err.Error())
		assert.Equal(t, 1, app.List().Count())
	})
}

func TestListCommand(t *testing.T) {
	app, out, _ := setupTestApp(t)

	output, err := run(t, app, out, "list")
	require.NoError(t, err)
	assert.Equal(t, "No tasks.\n", output)

	id := addTask(t, app, out, "Walk dog")
	output, err = run(t, app, out, "list")
	require.NoError(t, err)
	assert.Equal(t, id+": Walk dog (Pending)\n", output)

	_, err = run(t, app, out, "list", "extra")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestRemoveCommand(t *testing.T) {
	app, out, _ := setupTestApp(t)
	id := addTask(t, app, out, "Walk dog")

	tests := []struct {
		name        string
		args        []string
		expected    string
		expectError string
	}{
		{name: "invalid id", args: []string{"nope"}, expectError: "failed to remove task: id has invalid format"},
		{name: "missing id", args: nil, expectError: "usage: remove <id>"},
		{name: "removes", args: []string{id}, expected: "Task removed.\n"},
		{name: "already removed", args: []string{id}, expected: "Task not found.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := run(t, app, out, append([]string{"remove"}, tt.args...)...)
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, output)
		})
	}
}

func TestRemovePrefixCommand(t *testing.T) {
	app, out, _ := setupTestApp(t)
	id := addTask(t, app, out, "Walk dog")

	_, err := run(t, app, out, "remove-prefix", id[:3])
	require.Error(t, err)
	assert.Equal(t, "failed to remove tasks: prefix must be at least 4 characters long", err.Error())
	assert.Equal(t, 1, app.List().Count())

	output, err := run(t, app, out, "remove-prefix", "zzzz")
	require.NoError(t, err)
	assert.Equal(t, "No tasks found with this prefix.\n", output)

	output, err = run(t, app, out, "remove-prefix", strings.ToUpper(id[:6]))
	require.NoError(t, err)
	assert.Equal(t, "Task(s) removed.\n", output)
	assert.Equal(t, 0, app.List().Count())
}

func TestEditCommand(t *testing.T) {
	app, out, _ := setupTestApp(t)
	id := addTask(t, app, out, "Buy milk")

	output, err := run(t, app, out, "edit", id, "Buy", "oat", "milk")
	require.NoError(t, err)
	assert.Equal(t, "Task updated.\n", output)
	assert.Equal(t, "Buy oat milk", app.List().Items()[0].Title())

	output, err = run(t, app, out, "edit", "3f2b8c1e-9d4a-4c2b-8e7f-1a2b3c4d5e6f", "Other")
	require.NoError(t, err)
	assert.Equal(t, "Task not found.\n", output)

	_, err = run(t, app, out, "edit", id)
	assert.Contains(t, err.Error(), "usage: edit <id> <title>")
}

func TestFindCommand(t *testing.T) {
	app, out, _ := setupTestApp(t)
	milk := addTask(t, app, out, "Buy milk")
	bread := addTask(t, app, out, "Buy bread")
	addTask(t, app, out, "Walk dog")

	output, err := run(t, app, out, "find", "buy")
	require.NoError(t, err)
	assert.Equal(t, milk+": Buy milk\n"+bread+": Buy bread\n", output)

	output, err = run(t, app, out, "find", "cat")
	require.NoError(t, err)
	assert.Equal(t, "No tasks found.\n", output)

	_, err = run(t, app, out, "find")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestStatusCommand(t *testing.T) {
	app, out, path := setupTestApp(t)
	id := addTask(t, app, out, "Walk dog")

	output, err := run(t, app, out, "done", id)
	require.NoError(t, err)
	assert.Equal(t, "Task marked as done.\n", output)
	assert.True(t, app.List().Items()[0].Done())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, id+",Walk dog,true\n", string(data))

	output, err = run(t, app, out, "undone", id)
	require.NoError(t, err)
	assert.Equal(t, "Task marked as pending.\n", output)

	_, err = run(t, app, out, "done", "3f2b8c1e-9d4a-4c2b-8e7f-1a2b3c4d5e6f")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestSaveAndLoadCommands(t *testing.T) {
	app, out, _ := setupTestApp(t)
	addTask(t, app, out, "Milk, eggs")
	addTask(t, app, out, "Walk dog")

	exported := filepath.Join(t.TempDir(), "export.json")
	output, err := run(t, app, out, "save", exported, "json")
	require.NoError(t, err)
	assert.Equal(t, "Tasks saved.\n", output)

	other, otherOut, _ := setupTestApp(t)
	output, err = run(t, other, otherOut, "load", exported, "JSON")
	require.NoError(t, err)
	assert.Equal(t, "Tasks loaded.\n", output)
	assert.Equal(t, app.List().Count(), other.List().Count())
	assert.Equal(t, "Milk, eggs", other.List().Items()[0].Title())

	_, err = run(t, app, out, "save", exported, "xml")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))

	_, err = run(t, app, out, "load")
	assert.Contains(t, err.Error(), "usage: load <path>")
}

func TestLoadCommand_FailureKeepsList(t *testing.T) {
	app, out, _ := setupTestApp(t)
	addTask(t, app, out, "keep me")

	broken := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{not json"), 0o644))

	_, err := run(t, app, out, "load", broken, "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load tasks: malformed data")
	assert.Equal(t, 1, app.List().Count())
}

func TestApp_OpenReadsDataFile(t *testing.T) {
	app, out, path := setupTestApp(t)
	addTask(t, app, out, "persisted")

	reopened := NewApp(tasklist.New(), WithOutput(out), WithDataFile(path, storage.FormatText))
	require.NoError(t, reopened.Open(context.Background()))
	require.Equal(t, 1, reopened.List().Count())
	assert.Equal(t, "persisted", reopened.List().Items()[0].Title())
}

func TestApp_PersistFailure(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "missing", "tasks.txt")
	app := NewApp(tasklist.New(), WithOutput(&out), WithDataFile(path, storage.FormatText))

	err := app.Run(context.Background(), []string{"add", "lost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save tasks")
}

func TestApp_InMemorySessionDoesNotWrite(t *testing.T) {
	var out bytes.Buffer
	app := NewApp(tasklist.New(), WithOutput(&out))

	require.NoError(t, app.Open(context.Background()))
	require.NoError(t, app.Run(context.Background(), []string{"add", "scratch"}))
	assert.Equal(t, 1, app.List().Count())
}
