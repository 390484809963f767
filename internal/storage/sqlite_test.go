package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "arena.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "a", "b", "arena.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = os.Stat(dbPath)
	require.NoError(t, err)

	// Reopening runs the migrations again without error.
	store, err = Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestSaveRunAssignsUUID(t *testing.T) {
	store := openTemp(t)

	id, err := store.SaveRun(Run{Level: "fortress", Mode: "headless", Seed: 9, Score: 300, Kills: 3, ShotsFired: 40, Hits: 10})
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	got, err := store.RunByID(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "fortress", got.Level)
	require.Equal(t, int64(9), got.Seed)
	require.Equal(t, 3, got.Kills)
	require.InDelta(t, 0.25, got.Accuracy(), 1e-12)
	require.False(t, got.CreatedAt.IsZero())

	missing, err := store.RunByID(uuid.NewString())
	require.NoError(t, err)
	require.Nil(t, missing)

	_, err = store.SaveRun(Run{ID: id, Level: "fortress", Mode: "headless"})
	require.Error(t, err, "duplicate IDs are rejected")
}

func TestTopRunsOrderingAndFilter(t *testing.T) {
	store := openTemp(t)

	for _, r := range []Run{
		{Level: "fortress", Mode: "play", Score: 100},
		{Level: "fortress", Mode: "play", Score: 50},
		{Level: "fortress", Mode: "ssh", Score: 200},
		{Level: "flat", Mode: "headless", Score: 500},
	} {
		_, err := store.SaveRun(r)
		require.NoError(t, err)
	}

	runs, err := store.TopRuns("fortress", 10)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	require.Equal(t, []int{200, 100, 50}, []int{runs[0].Score, runs[1].Score, runs[2].Score})

	all, err := store.TopRuns("", 2)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "flat", all[0].Level)

	high, err := store.HighScore("fortress")
	require.NoError(t, err)
	require.Equal(t, 200, high)

	high, err = store.HighScore("steps")
	require.NoError(t, err)
	require.Zero(t, high)
}

func TestLevelStatsAndClear(t *testing.T) {
	store := openTemp(t)

	for _, r := range []Run{
		{Level: "fortress", Mode: "play", Score: 100, Kills: 2, Deaths: 1},
		{Level: "fortress", Mode: "play", Score: 300, Kills: 6, Deaths: 0},
		{Level: "steps", Mode: "play", Score: 10, Kills: 0, Deaths: 3},
	} {
		_, err := store.SaveRun(r)
		require.NoError(t, err)
	}

	stats, err := store.AllLevelStats()
	require.NoError(t, err)
	require.Len(t, stats, 2)

	f := stats["fortress"]
	require.Equal(t, 2, f.Runs)
	require.Equal(t, 300, f.HighScore)
	require.InDelta(t, 200, f.AvgScore, 1e-9)
	require.Equal(t, int64(8), f.Kills)
	require.Equal(t, int64(1), f.Deaths)

	require.NoError(t, store.ClearRuns("fortress"))
	runs, err := store.TopRuns("fortress", 0)
	require.NoError(t, err)
	require.Empty(t, runs)

	runs, err = store.TopRuns("steps", 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
}
