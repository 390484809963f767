package sim

import (
	"math"

	"github.com/vovakirdan/arena/internal/core"
)

// Autopilot produces scripted player input for headless runs. It turns toward
// the nearest enemy in sight, closes in, fires once aligned and reloads on an
// empty magazine. With no enemy in sight it walks a slow circle.
type Autopilot struct {
	// EngageRange is the distance the autopilot tries to keep from its target.
	EngageRange float64
	// AimTolerance is the heading error in radians below which it fires.
	AimTolerance float64
}

// NewAutopilot returns an autopilot with default tuning.
func NewAutopilot() *Autopilot {
	return &Autopilot{EngageRange: 6, AimTolerance: 0.06}
}

// Frame fills in for the next render frame. It only reads session state.
func (ap *Autopilot) Frame(s *Session, in *core.InputFrame) {
	in.MoveAxis = core.Vec2{}
	in.TurnAxis = 0
	in.FireHeld = false
	in.AimPitch = 0

	p := s.Player()
	eye := p.Eye()

	var (
		best  = math.Inf(1)
		found bool
		aim   core.Vec3
	)
	for _, a := range s.AI().Agents() {
		c := a.Center()
		d := p.Position.Dist(a.Position)
		if d < best && s.World().LineOfSight(eye, c) {
			best, aim, found = d, c, true
		}
	}

	if !found {
		in.MoveAxis = core.Vec2{Y: 0.6}
		in.TurnAxis = 0.3
		return
	}

	want, ok := core.YawTowards(p.Position, aim)
	if !ok {
		return
	}
	diff := core.WrapAngle(want - p.Yaw)
	// Positive turn axis decreases yaw.
	in.TurnAxis = core.ClampF(-diff*4, -1, 1)

	if best > ap.EngageRange {
		in.MoveAxis.Y = 1
	} else if best < ap.EngageRange*0.5 {
		in.MoveAxis.Y = -0.5
	}

	muzzle := s.Muzzle(0).Position
	to := aim.Sub(muzzle)
	in.AimPitch = math.Atan2(to.Y, math.Hypot(to.X, to.Z))

	st, def := s.Loadout().CurrentState(), s.Loadout().Current()
	if def.Magazine > 0 && st.Ammo == 0 && !st.Reloading {
		in.Press(core.EdgeReload)
		return
	}
	in.FireHeld = math.Abs(diff) < ap.AimTolerance
}
