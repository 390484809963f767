package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arena/internal/character"
	"github.com/vovakirdan/arena/internal/core"
	"github.com/vovakirdan/arena/internal/scheduler"
	"github.com/vovakirdan/arena/internal/sim"
	"github.com/vovakirdan/arena/internal/storage"
)

// GameOptions describes one viewer session.
type GameOptions struct {
	Level     string // level name recorded with the run
	Mode      string // "play" or "ssh"
	Player    string
	Seed      int64
	RenderFPS int
	Width     int
	Height    int
}

// Model is the Bubble Tea model that plays one arena session.
type Model struct {
	session  *sim.Session
	sched    *scheduler.Scheduler
	screen   *core.Screen
	controls *Controls
	in       *core.InputFrame
	keys     KeyMap
	help     help.Model
	store    *storage.Store
	logger   *log.Logger
	opts     GameOptions
	width    int
	height   int

	last       time.Time
	showHelp   bool
	quitting   bool
	backToMenu bool
	saved      bool
}

// NewModel creates a viewer for s.
func NewModel(s *sim.Session, store *storage.Store, logger *log.Logger, opts GameOptions) Model {
	if opts.RenderFPS <= 0 {
		opts.RenderFPS = core.DefaultConfig().RenderFPS
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		d := core.DefaultConfig()
		opts.Width, opts.Height = d.ScreenW, d.ScreenH
	}
	if logger == nil {
		logger = log.Default()
	}
	cfg := s.Config()
	in := core.NewInputFrame()
	keys := DefaultKeyMap()
	snap := cfg.Player.TurnMode == character.TurnSnap.String()

	return Model{
		session: s,
		sched: scheduler.New(cfg.SchedulerConfig(), scheduler.StepFunc(func(dt float64, in *core.InputFrame) {
			s.Step(dt, in)
		})),
		screen:   core.NewScreen(opts.Width, opts.Height),
		controls: NewControls(keys, snap, cfg.Player.SnapAngleDeg),
		in:       &in,
		keys:     keys,
		help:     help.New(),
		store:    store,
		logger:   logger,
		opts:     opts,
		width:    opts.Width,
		height:   opts.Height,
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.opts.RenderFPS)
}

// Update handles messages and advances the simulation on each frame.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		return m.handleFrame(time.Time(msg))
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		m.finish()
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Menu):
		m.finish()
		m.backToMenu = true
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	}
	m.controls.Press(msg, time.Now())
	return m, nil
}

// handleFrame measures the real time since the last frame and runs the
// fixed steps it covers.
func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}
	elapsed := time.Duration(0)
	if !m.last.IsZero() {
		elapsed = now.Sub(m.last)
	}
	m.last = now

	m.controls.Frame(now, m.in)
	res := m.sched.Frame(elapsed, m.in)
	if res.Dropped > 0 {
		m.logger.Debug("frame over budget", "steps", res.Steps, "dropped", res.Dropped)
	}
	return m, frameCmd(m.opts.RenderFPS)
}

// finish saves the run once.
func (m *Model) finish() {
	if m.saved {
		return
	}
	m.saved = true
	if m.store == nil || m.session.Stats().Ticks == 0 {
		return
	}
	run := sim.Record(m.session, m.opts.Level, m.opts.Mode, m.opts.Player, m.opts.Seed)
	id, err := m.store.SaveRun(run)
	if err != nil {
		m.logger.Warn("could not save run", "error", err)
		return
	}
	m.logger.Info("run saved", "id", id, "level", run.Level, "score", run.Score)
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() {
	DrawArena(m.screen, m.session.World(), m.session.Snapshot())

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arena", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := fmt.Sprintf("%s_%s.txt", m.opts.Level, time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, the game continues regardless
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// View renders the arena and the key help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	helpView := m.help.View(m.keys)
	rows := m.height - strings.Count(helpView, "\n") - 1
	m.screen.Resize(m.width, max(rows, 2))
	DrawArena(m.screen, m.session.World(), m.session.Snapshot())
	return RenderScreen(m.screen) + "\n" + helpView
}

// IsQuitting reports whether the user asked to quit entirely.
func (m Model) IsQuitting() bool { return m.quitting }

// BackToMenu reports whether the user asked to return to the menu.
func (m Model) BackToMenu() bool { return m.backToMenu }

// Session returns the simulated session.
func (m Model) Session() *sim.Session { return m.session }

// Run starts a Bubble Tea program that plays s until the user quits.
func Run(s *sim.Session, store *storage.Store, logger *log.Logger, opts GameOptions) error {
	p := tea.NewProgram(playModel{NewModel(s, store, logger, opts)}, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// playModel quits where an SSH session would return to the menu.
type playModel struct {
	Model
}

func (p playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := p.Model.Update(msg)
	p.Model = next.(Model)
	if p.BackToMenu() {
		return p, tea.Quit
	}
	return p, cmd
}
