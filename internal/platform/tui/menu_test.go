package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arena/internal/config"
)

func menuStep(m MenuModel, msg tea.Msg) MenuModel {
	next, _ := m.Update(msg)
	return next.(MenuModel)
}

func TestMenuListsLevelsAndSelects(t *testing.T) {
	m := NewMenuModel(nil, "", 80, 24)
	if len(m.items) < 3 {
		t.Fatalf("menu has %d levels, want the built-ins", len(m.items))
	}
	if m.Preset() != config.DifficultyNormal {
		t.Errorf("default preset = %q, want normal", m.Preset())
	}

	m = menuStep(m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuStep(m, tea.KeyMsg{Type: tea.KeyRight})
	m = menuStep(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Selected() == nil {
		t.Fatal("nothing selected")
	}
	if m.Selected().Level != m.items[1].Level {
		t.Errorf("selected %q, want %q", m.Selected().Level, m.items[1].Level)
	}
	if m.Preset() != config.DifficultyHard {
		t.Errorf("preset = %q, want hard", m.Preset())
	}
}

func TestSessionModelFlow(t *testing.T) {
	sm := NewSessionModel(SessionOptions{Game: config.Default(), Username: "guest", Width: 80, Height: 24})
	if sm.ID() == "" {
		t.Fatal("empty session id")
	}

	next, _ := sm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sm = next.(SessionModel)
	if sm.screen != screenGame || sm.game == nil {
		t.Fatalf("enter did not start a game, screen=%v err=%v", sm.screen, sm.err)
	}

	next, _ = sm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	sm = next.(SessionModel)
	if sm.screen != screenMenu || sm.game != nil {
		t.Fatalf("esc did not return to the menu, screen=%v", sm.screen)
	}

	next, _ = sm.Update(tea.KeyMsg{Type: tea.KeyTab})
	sm = next.(SessionModel)
	if sm.screen != screenScores {
		t.Fatalf("tab did not open scores, screen=%v", sm.screen)
	}
	if sm.View() == "" {
		t.Error("scoreboard view empty")
	}
}
