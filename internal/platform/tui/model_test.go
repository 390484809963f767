package tui

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arena/internal/config"
	"github.com/vovakirdan/arena/internal/level"
	"github.com/vovakirdan/arena/internal/sim"
	"github.com/vovakirdan/arena/internal/storage"
)

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	logger := log.New(io.Discard)
	s, err := sim.NewForLevel(config.Default(), level.Flat(), 5, logger)
	if err != nil {
		t.Fatal(err)
	}
	return NewModel(s, store, logger, GameOptions{Level: "flat", Mode: "play", Player: "tester", Seed: 5, Width: 60, Height: 20})
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return got
}

func TestModelFramesAdvanceSimulation(t *testing.T) {
	m := newTestModel(t, nil)
	start := time.Unix(1000, 0)

	m = step(t, m, FrameMsg(start))
	if m.Session().Stats().Ticks != 0 {
		t.Fatalf("first frame should only start the clock, ticks = %d", m.Session().Stats().Ticks)
	}
	m = step(t, m, FrameMsg(start.Add(50*time.Millisecond)))
	if got := m.Session().Stats().Ticks; got != 3 {
		t.Errorf("ticks after 50ms at 60Hz = %d, want 3", got)
	}
	if m.View() == "" {
		t.Error("empty view")
	}
}

func TestModelMovesPlayerOnKey(t *testing.T) {
	m := newTestModel(t, nil)
	before := m.Session().Player().Position

	start := time.Now()
	m = step(t, m, FrameMsg(start))
	m = step(t, m, runeKey('w'))
	m = step(t, m, FrameMsg(start.Add(100*time.Millisecond)))

	after := m.Session().Player().Position
	if after.Z >= before.Z {
		t.Errorf("player did not move forward: %v -> %v", before, after)
	}
}

func TestModelSavesRunOnQuit(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	start := time.Unix(1000, 0)
	m = step(t, m, FrameMsg(start))
	m = step(t, m, FrameMsg(start.Add(200*time.Millisecond)))
	m = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.IsQuitting() {
		t.Fatal("ctrl+c did not quit")
	}
	m = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	runs, err := store.TopRuns("flat", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, want 1", len(runs))
	}
	if runs[0].Player != "tester" || runs[0].Mode != "play" || runs[0].Seed != 5 {
		t.Errorf("run = %+v", runs[0])
	}
}

func TestModelMenuKeyReturnsToMenu(t *testing.T) {
	m := newTestModel(t, nil)
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() || m.IsQuitting() {
		t.Errorf("esc: back=%v quit=%v", m.BackToMenu(), m.IsQuitting())
	}
}
