package tui

import (
	"math"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arena/internal/core"
)

// holdWindow is how long a key press counts as held. Terminals only report
// presses and auto-repeats, so a control stays down until its repeats stop.
const holdWindow = 180 * time.Millisecond

const pitchStep = 0.05

// KeyMap defines the key bindings for the arena viewer.
type KeyMap struct {
	Forward     key.Binding
	Back        key.Binding
	StrafeLeft  key.Binding
	StrafeRight key.Binding
	TurnLeft    key.Binding
	TurnRight   key.Binding
	AimUp       key.Binding
	AimDown     key.Binding
	Jump        key.Binding
	Fire        key.Binding
	Cycle       key.Binding
	Reload      key.Binding
	Help        key.Binding
	Menu        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Forward, k.TurnLeft, k.Fire, k.Cycle, k.Reload, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Forward, k.Back, k.StrafeLeft, k.StrafeRight},
		{k.TurnLeft, k.TurnRight, k.AimUp, k.AimDown},
		{k.Jump, k.Fire, k.Cycle, k.Reload},
		{k.Help, k.Menu, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Forward:     key.NewBinding(key.WithKeys("w", "up"), key.WithHelp("w/↑", "forward")),
		Back:        key.NewBinding(key.WithKeys("s", "down"), key.WithHelp("s/↓", "back")),
		StrafeLeft:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "strafe left")),
		StrafeRight: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "strafe right")),
		TurnLeft:    key.NewBinding(key.WithKeys("left", "j"), key.WithHelp("←/j", "turn")),
		TurnRight:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "turn right")),
		AimUp:       key.NewBinding(key.WithKeys("i", "pgup"), key.WithHelp("i", "aim up")),
		AimDown:     key.NewBinding(key.WithKeys("k", "pgdown"), key.WithHelp("k", "aim down")),
		Jump:        key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "jump")),
		Fire:        key.NewBinding(key.WithKeys("f", "enter"), key.WithHelp("f", "fire")),
		Cycle:       key.NewBinding(key.WithKeys("tab", "e"), key.WithHelp("tab", "weapon")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Menu:        key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "menu")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// control is one held input.
type control uint8

const (
	ctlForward control = iota
	ctlBack
	ctlStrafeLeft
	ctlStrafeRight
	ctlTurnLeft
	ctlTurnRight
	ctlFire
	numControls
)

// Controls turns key presses into input frames. Held controls feed the level
// fields of the frame; one-shot keys raise edges.
type Controls struct {
	keys      KeyMap
	snap      bool    // turn keys snap-turn instead of steering
	snapAngle float64 // radians
	lastPress [numControls]time.Time
	pitch     float64
	edges     core.Edge
	snapDelta float64
}

// NewControls creates a key translator. With snap set, each turn press
// rotates by snapAngleDeg instead of steering.
func NewControls(keys KeyMap, snap bool, snapAngleDeg float64) *Controls {
	return &Controls{keys: keys, snap: snap, snapAngle: snapAngleDeg * math.Pi / 180}
}

// Press records a key message. It reports whether the key was a game control.
func (c *Controls) Press(msg tea.KeyMsg, now time.Time) bool {
	k := c.keys
	hold := func(ctl control) bool {
		c.lastPress[ctl] = now
		return true
	}
	switch {
	case key.Matches(msg, k.Forward):
		return hold(ctlForward)
	case key.Matches(msg, k.Back):
		return hold(ctlBack)
	case key.Matches(msg, k.StrafeLeft):
		return hold(ctlStrafeLeft)
	case key.Matches(msg, k.StrafeRight):
		return hold(ctlStrafeRight)
	case key.Matches(msg, k.TurnLeft):
		if c.snap {
			c.snapDelta, c.edges = c.snapAngle, c.edges|core.EdgeSnapTurn
			return true
		}
		return hold(ctlTurnLeft)
	case key.Matches(msg, k.TurnRight):
		if c.snap {
			c.snapDelta, c.edges = -c.snapAngle, c.edges|core.EdgeSnapTurn
			return true
		}
		return hold(ctlTurnRight)
	case key.Matches(msg, k.Fire):
		return hold(ctlFire)
	case key.Matches(msg, k.AimUp):
		c.pitch = core.ClampF(c.pitch+pitchStep, -1, 1)
	case key.Matches(msg, k.AimDown):
		c.pitch = core.ClampF(c.pitch-pitchStep, -1, 1)
	case key.Matches(msg, k.Jump):
		c.edges |= core.EdgeJump
	case key.Matches(msg, k.Cycle):
		c.edges |= core.EdgeCycleWeapon
	case key.Matches(msg, k.Reload):
		c.edges |= core.EdgeReload
	default:
		return false
	}
	return true
}

// Frame writes the controls into in for a frame rendered at now and hands
// over the edges raised since the last frame.
func (c *Controls) Frame(now time.Time, in *core.InputFrame) {
	held := func(ctl control) float64 {
		if t := c.lastPress[ctl]; !t.IsZero() && now.Sub(t) <= holdWindow {
			return 1
		}
		return 0
	}
	in.MoveAxis = core.Vec2{
		X: held(ctlStrafeRight) - held(ctlStrafeLeft),
		Y: held(ctlForward) - held(ctlBack),
	}
	in.TurnAxis = held(ctlTurnRight) - held(ctlTurnLeft)
	in.FireHeld = held(ctlFire) > 0
	in.AimPitch = c.pitch

	for _, e := range []core.Edge{core.EdgeJump, core.EdgeCycleWeapon, core.EdgeReload} {
		if c.edges&e != 0 {
			in.Press(e)
		}
	}
	if c.edges&core.EdgeSnapTurn != 0 {
		in.SnapTurn(c.snapDelta)
	}
	c.edges = 0
	c.snapDelta = 0
}
