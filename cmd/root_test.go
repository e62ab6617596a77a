package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupConfigEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	t.Setenv("SYNERGY_CONFIG", path)
	t.Setenv("SYNERGY_DB_DSN", filepath.Join(dir, "synergy.db"))
	t.Setenv("SYNERGY_LOG_LEVEL", "")
	t.Setenv("HOME", dir)
	return path
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"task", "priority", "deadline", "notifications", "project", "user", "serve", "config"} {
		assert.True(t, names[want], "missing %q command", want)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	path := setupConfigEnv(t)

	root := NewRootCmd()
	testutil.SetupCobraCommand(root, []string{"config", "init"})
	output, err := testutil.ExecuteCommand(t, root)
	require.NoError(t, err)
	assert.Contains(t, output, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "detect_cycles: true")

	// refuses to clobber without --force
	root = NewRootCmd()
	testutil.SetupCobraCommand(root, []string{"config", "init"})
	_, err = testutil.ExecuteCommand(t, root)
	require.Error(t, err)

	root = NewRootCmd()
	testutil.SetupCobraCommand(root, []string{"config", "init", "--force"})
	_, err = testutil.ExecuteCommand(t, root)
	require.NoError(t, err)

	root = NewRootCmd()
	testutil.SetupCobraCommand(root, []string{"config", "show"})
	output, err = testutil.ExecuteCommand(t, root)
	require.NoError(t, err)
	assert.Contains(t, output, "synergy.db", "env override is reflected")
}

func TestEndToEnd_UserProjectTask(t *testing.T) {
	setupConfigEnv(t)

	run := func(args ...string) string {
		t.Helper()
		root := NewRootCmd()
		testutil.SetupCobraCommand(root, args)
		output, err := testutil.ExecuteCommand(t, root)
		require.NoError(t, err, "synergy %v", args)
		return output
	}

	run("user", "create", "--email", "lead@example.com", "--quiet")
	run("project", "create", "--name", "Launch", "--owner", "1", "--quiet")
	run("task", "create", "--project", "1", "--title", "Ship it", "--due", "2099-01-01", "--quiet")

	output := run("task", "list", "--project", "1", "--json")
	result := testutil.ParseJSON(t, output)
	assert.Equal(t, true, result["success"])
	assert.Len(t, result["data"], 1)
}

func TestInvalidConfigFails(t *testing.T) {
	path := setupConfigEnv(t)
	require.NoError(t, os.WriteFile(path, []byte("database:\n  driver: mysql\n"), 0o644))

	root := NewRootCmd()
	testutil.SetupCobraCommand(root, []string{"project", "list"})
	_, err := testutil.ExecuteCommand(t, root)
	require.Error(t, err)
}
