package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/arena/internal/storage"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestLevelsCommand(t *testing.T) {
	out := execute(t, "levels")
	for _, name := range []string{"fortress", "flat", "steps"} {
		require.Contains(t, out, name)
	}

	out = execute(t, "levels", "flat", "--yaml")
	require.True(t, strings.HasPrefix(out, "name: flat"), out)
}

func TestRunCommandSavesRun(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	db := filepath.Join(t.TempDir(), "runs.db")

	out := execute(t, "run", "--seconds", "3", "--seed", "9", "--level", "flat",
		"--db", db, "--log-level", "error")
	require.Contains(t, out, "Level flat, seed 9")
	require.Contains(t, out, "Score")

	store, err := storage.Open(db)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.TopRuns("flat", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, "headless", runs[0].Mode)
	require.EqualValues(t, 9, runs[0].Seed)
	require.InDelta(t, 3.0, runs[0].SimSeconds, 0.05)

	out = execute(t, "runs", "--db", db, "--level", "flat")
	require.Contains(t, out, "autopilot")
}
