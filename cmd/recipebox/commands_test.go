package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command with a file backend under dir.
func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	base := []string{
		"--data-path", filepath.Join(dir, "recipes.json"),
		"--log-file", "stderr",
		"--quiet",
	}
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, base...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCLIAddListFavoriteDelete(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	out, err := runCLI(t, dir, "add", "--name", "Waffles", "--ingredients", "flour, milk", "--instructions", "Cook.", "--category", "dessert")
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.NotEmpty(t, id)

	_, err = runCLI(t, dir, "add", "--name", "Nachos", "--ingredients", "chips", "--instructions", "Bake.", "--category", "Snack")
	require.NoError(t, err)

	out, err = runCLI(t, dir, "list", "--search", "milk")
	require.NoError(t, err)
	assert.Contains(t, out, "Waffles")
	assert.NotContains(t, out, "Nachos")

	out, err = runCLI(t, dir, "favorite", id)
	require.NoError(t, err)
	assert.Contains(t, out, "favorite=true")

	out, err = runCLI(t, dir, "list", "--sort", "favorite")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "*"), "favorite first: %q", lines[0])

	_, err = runCLI(t, dir, "delete", id)
	require.NoError(t, err)
	_, err = runCLI(t, dir, "delete", id)
	require.NoError(t, err, "delete is idempotent")

	out, err = runCLI(t, dir, "list", "--category", "Dessert")
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(out))
}

func TestCLIUnknownIDIsNotAnError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	_, err := runCLI(t, dir, "delete", "ghost")
	require.NoError(t, err)

	out, err := runCLI(t, dir, "favorite", "ghost")
	require.NoError(t, err)
	assert.Contains(t, out, "no recipe ghost")
}

func TestCLIAddRejectsInvalid(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	_, err := runCLI(t, dir, "add", "--name", "", "--ingredients", "x", "--instructions", "y")
	assert.Error(t, err)

	_, err = os.Stat(filepath.Join(dir, "recipes.json"))
	assert.True(t, os.IsNotExist(err), "nothing should be written")
}

func TestCLIExportImport(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	src, dst := t.TempDir(), t.TempDir()
	file := filepath.Join(t.TempDir(), "backup", "recipes.yaml")

	_, err := runCLI(t, src, "add", "--name", "Tea", "--ingredients", "leaves", "--instructions", "Steep.", "--category", "Beverage", "--favorite")
	require.NoError(t, err)

	out, err := runCLI(t, src, "export", file)
	require.NoError(t, err)
	assert.Contains(t, out, "exported 1 recipes")

	out, err = runCLI(t, dst, "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 1 recipes")

	out, err = runCLI(t, dst, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Tea")
	assert.True(t, strings.HasPrefix(out, "*"))
}
