package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv points HOME at a temp dir and clears TODO_* settings
func isolateEnv(t *testing.T) string {
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		"TODO_CONFIG", "TODO_DATA_DIR", "TODO_DATA_FILE", "TODO_FORMAT", "TODO_DATA_DIR_PERMISSIONS",
		"TODO_LOG_LEVEL", "TODO_LOG_FORMAT", "TODO_TIMEOUT", "TODO_VERBOSE", "TODO_DEBUG",
	} {
		t.Setenv(key, "")
	}
	return home
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand(WithIO(strings.NewReader(stdin), &out, &errOut))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand_OneShotCommands(t *testing.T) {
	home := isolateEnv(t)

	out, _, err := execute(t, "", "add", "Buy", "milk")
	require.NoError(t, err)
	assert.Equal(t, "Task added.\n", out)

	data, err := os.ReadFile(filepath.Join(home, ".todo", "tasks.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), ",Buy milk,false")

	out, _, err = execute(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, ": Buy milk (Pending)")

	id := strings.SplitN(out, ":", 2)[0]
	out, _, err = execute(t, "", "done", id)
	require.NoError(t, err)
	assert.Equal(t, "Task marked as done.\n", out)

	out, _, err = execute(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, ": Buy milk (Done)")
}

func TestRootCommand_FormatAndFileFlags(t *testing.T) {
	home := isolateEnv(t)
	dataDir := filepath.Join(home, "data")

	_, _, err := execute(t, "", "--data-dir", dataDir, "--file", "list.json", "--format", "json", "add", "Milk, eggs")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dataDir, "list.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title": "Milk, eggs"`)
}

func TestRootCommand_ArgumentValidation(t *testing.T) {
	isolateEnv(t)

	_, _, err := execute(t, "", "add")
	assert.Error(t, err)

	_, _, err = execute(t, "", "remove", "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id has invalid format")
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	isolateEnv(t)

	_, _, err := execute(t, "", "--format", "xml", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration: storage.format")
}

func TestRootCommand_Shell(t *testing.T) {
	home := isolateEnv(t)

	out, _, err := execute(t, "add Walk dog\nlist\nexit\n", "shell")
	require.NoError(t, err)
	assert.Contains(t, out, "Task added.\n")
	assert.Contains(t, out, ": Walk dog (Pending)\n")
	assert.NotContains(t, out, "> ", "piped input gets no prompt")

	data, err := os.ReadFile(filepath.Join(home, ".todo", "tasks.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), ",Walk dog,false")
}

func TestRootCommand_ShellMemory(t *testing.T) {
	home := isolateEnv(t)

	_, _, err := execute(t, "add scratch\nexit\n", "shell", "--memory")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(home, ".todo", "tasks.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestRootCommand_VerboseLogsToStderr(t *testing.T) {
	isolateEnv(t)

	out, errOut, err := execute(t, "", "--verbose", "add", "logged")
	require.NoError(t, err)
	assert.Equal(t, "Task added.\n", out)
	assert.Contains(t, errOut, "task added")
}
