package core

// Edge identifies an edge-triggered input field.
// Edges are raised by the input collaborator once per render frame and
// consumed at most once by the simulation, however many fixed steps run.
type Edge uint8

const (
	EdgeJump Edge = 1 << iota
	EdgeCycleWeapon
	EdgeReload
	EdgeSnapTurn
)

// String returns a human-readable name for the edge.
func (e Edge) String() string {
	switch e {
	case EdgeJump:
		return "Jump"
	case EdgeCycleWeapon:
		return "CycleWeapon"
	case EdgeReload:
		return "Reload"
	case EdgeSnapTurn:
		return "SnapTurn"
	default:
		return "Unknown"
	}
}

// InputFrame is the player intent delivered once per render frame.
// Level fields (axes, FireHeld) are read by every fixed step of the frame.
// Edge fields stay raised until ClearEdges runs after the frame's last step;
// Take marks an edge consumed so a frame running several steps acts on it once.
type InputFrame struct {
	MoveAxis      Vec2    // x = strafe, y = forward, each in [-1, 1]
	TurnAxis      float64 // smooth turn deflection in [-1, 1]
	TurnSnapDelta float64 // radians; 0 if no snap turn this frame
	AimPitch      float64 // radians above the horizon for the muzzle direction
	FireHeld      bool

	raised   Edge
	consumed Edge
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Press raises an edge for this frame.
func (f *InputFrame) Press(e Edge) {
	f.raised |= e
}

// SnapTurn raises a snap-turn edge with the given angle in radians.
func (f *InputFrame) SnapTurn(delta float64) {
	if delta == 0 {
		return
	}
	f.TurnSnapDelta = delta
	f.Press(EdgeSnapTurn)
}

// Has reports whether an edge was raised this frame, consumed or not.
func (f *InputFrame) Has(e Edge) bool {
	return f.raised&e != 0
}

// Take returns true the first time it is called for a raised edge in this frame.
func (f *InputFrame) Take(e Edge) bool {
	if f.raised&e == 0 || f.consumed&e != 0 {
		return false
	}
	f.consumed |= e
	return true
}

// Pending returns the raised edges not yet consumed.
func (f *InputFrame) Pending() Edge {
	return f.raised &^ f.consumed
}

// ClearEdges resets all edge fields once the frame's stepping loop completes.
// Level fields are left for the input collaborator to overwrite.
func (f *InputFrame) ClearEdges() {
	f.raised = 0
	f.consumed = 0
	f.TurnSnapDelta = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	return f
}
