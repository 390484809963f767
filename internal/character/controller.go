// Package character integrates movement for any actor: turning, horizontal
// motion, gravity and jumping, collision against static boxes with wall
// sliding, step-up onto low ledges, ceiling blocking and ground snapping.
package character

import (
	"math"

	"github.com/vovakirdan/arena/internal/collision"
	"github.com/vovakirdan/arena/internal/core"
)

// Intent is what an actor wants to do this step.
type Intent struct {
	Move      core.Vec2 // x = strafe right, y = forward
	Turn      float64   // smooth turn deflection; positive turns right
	SnapDelta float64   // snap turn in radians; positive turns left
	Jump      bool
	Face      bool    // set yaw to FaceYaw instead of applying Turn/SnapDelta
	FaceYaw   float64 // absolute heading
}

// Locomotion is the two-state movement machine.
type Locomotion uint8

const (
	Airborne Locomotion = iota
	Grounded
)

// String returns the state name.
func (l Locomotion) String() string {
	if l == Grounded {
		return "Grounded"
	}
	return "Airborne"
}

// Result reports what happened during one Advance.
type Result struct {
	Locomotion  Locomotion
	Landed      bool // Airborne -> Grounded this step
	Jumped      bool
	Snapped     bool // a snap turn was applied
	SteppedUp   bool
	Blocked     bool // horizontal motion was cut by a collider
	OutOfBounds bool // airborne with no walkable surface anywhere beneath
}

// pushPasses bounds how many times overlaps are re-resolved at corners.
const pushPasses = 3

// Controller advances actors with one set of Params.
type Controller struct {
	params  Params
	scratch []int
}

// NewController creates a controller.
func NewController(p Params) *Controller {
	return &Controller{params: p}
}

// Params returns the controller's tuning.
func (c *Controller) Params() Params {
	return c.params
}

// Advance moves a by one step of dt seconds against the static world.
func (c *Controller) Advance(a *Actor, in Intent, dt float64, world *collision.World) Result {
	p := c.params
	var res Result
	wasGrounded := a.Grounded

	res.Snapped = c.turn(a, in, dt)

	// Horizontal
	move := in.Move.ClampUnit()
	disp := core.ForwardFromYaw(a.Yaw).Scale(move.Y).
		Add(core.RightFromYaw(a.Yaw).Scale(move.X)).
		Scale(p.MoveSpeed * dt)

	// Vertical
	if a.Grounded {
		a.AirTime = 0
		a.jumpSpent = false
	} else {
		a.AirTime += dt
	}
	a.Velocity.Y += p.Gravity * dt
	if in.Jump && !a.jumpSpent && (a.Grounded || a.AirTime <= p.CoyoteTime) {
		a.Velocity.Y = p.JumpImpulse
		a.Grounded = false
		a.jumpSpent = true
		res.Jumped = true
	}

	start := a.Position
	if disp.X != 0 || disp.Z != 0 {
		res.SteppedUp, res.Blocked = c.moveHorizontal(a, disp, wasGrounded && !res.Jumped, world)
	}

	c.moveVertical(a, dt, world)

	if dt > 0 {
		a.Velocity.X = (a.Position.X - start.X) / dt
		a.Velocity.Z = (a.Position.Z - start.Z) / dt
	}

	if a.Grounded {
		res.Locomotion = Grounded
		res.Landed = !wasGrounded
		a.AirTime = 0
		a.jumpSpent = false
	} else {
		res.OutOfBounds = !c.groundBeneath(a, world)
	}
	return res
}

// turn applies the intent's rotation and reports whether a snap turn happened.
func (c *Controller) turn(a *Actor, in Intent, dt float64) bool {
	p := c.params
	snapped := false
	switch {
	case in.Face:
		a.Yaw = in.FaceYaw
	case p.TurnMode == TurnSnap:
		if in.SnapDelta != 0 && a.SnapLock <= 0 {
			a.Yaw += in.SnapDelta
			a.SnapLock = p.SnapCooldown
			snapped = true
		}
	default:
		a.Yaw -= core.ClampF(in.Turn, -1, 1) * p.TurnRate * dt
	}
	a.Yaw = core.WrapAngle(a.Yaw)
	if a.SnapLock > 0 {
		a.SnapLock = math.Max(0, a.SnapLock-dt)
	}
	return snapped
}

// moveHorizontal applies disp at the current height. A blocked grounded actor
// first tries to climb onto a walkable ledge no taller than StepHeight;
// otherwise each overlapping box pushes it out along its shallowest axis.
func (c *Controller) moveHorizontal(a *Actor, disp core.Vec3, canStep bool, world *collision.World) (steppedUp, blocked bool) {
	p := c.params
	prev := a.Position
	cand := core.V3(prev.X+disp.X, prev.Y, prev.Z+disp.Z)

	c.scratch = world.AppendOverlaps(c.scratch[:0], bodyAt(cand, a.Radius, a.Height, p.Skin))
	if len(c.scratch) == 0 {
		a.Position = cand
		return false, false
	}

	if canStep && p.StepHeight > 0 {
		raised := core.V3(cand.X, prev.Y+p.StepHeight, cand.Z)
		if world.Clear(bodyAt(raised, a.Radius, a.Height, p.Skin)) {
			fp := bodyAt(cand, a.Radius, 0, 0)
			if top, _, ok := world.FootprintSurface(fp, prev.Y+p.Skin, prev.Y+p.StepHeight); ok {
				a.Position = core.V3(cand.X, top+p.FootOffset, cand.Z)
				a.Velocity.Y = math.Max(a.Velocity.Y, 0)
				a.Grounded = true
				return true, false
			}
		}
	}

	for pass := 0; pass < pushPasses && len(c.scratch) > 0; pass++ {
		for _, i := range c.scratch {
			cand = pushOut(cand, world.Collider(i).Box.Expand(a.Radius, 0))
		}
		c.scratch = world.AppendOverlaps(c.scratch[:0], bodyAt(cand, a.Radius, a.Height, p.Skin))
	}
	if len(c.scratch) > 0 {
		// Wedged between boxes; stay put rather than end up inside one.
		cand = core.V3(prev.X, prev.Y, prev.Z)
	}
	a.Position = cand
	return false, true
}

// pushOut moves the point p (an actor's feet) out of the radius-expanded box
// along whichever of X or Z needs the shortest correction.
func pushOut(p core.Vec3, expanded core.AABB) core.Vec3 {
	if !expanded.ContainsXZ(p.X, p.Z) {
		return p
	}
	left := p.X - expanded.Min.X
	right := expanded.Max.X - p.X
	back := p.Z - expanded.Min.Z
	front := expanded.Max.Z - p.Z

	best := math.Min(math.Min(left, right), math.Min(back, front))
	switch best {
	case left:
		p.X = expanded.Min.X
	case right:
		p.X = expanded.Max.X
	case back:
		p.Z = expanded.Min.Z
	default:
		p.Z = expanded.Max.Z
	}
	return p
}

// moveVertical integrates vertical velocity, stopping at ceilings while
// ascending and snapping onto walkable ground while descending.
func (c *Controller) moveVertical(a *Actor, dt float64, world *collision.World) {
	p := c.params
	fp := bodyAt(a.Position, a.Radius, 0, 0)
	prevY := a.Position.Y
	dy := a.Velocity.Y * dt

	if a.Velocity.Y > 0 {
		head := prevY + a.Height
		if ceil, ok := world.CeilingAbove(fp, head-p.Skin, head+dy); ok {
			dy = math.Max(0, ceil-head)
			a.Velocity.Y = 0
		}
	}
	a.Position.Y += dy

	if a.Velocity.Y > 0 {
		a.Grounded = false
		return
	}

	// Sweep from just above the previous feet to the probe depth under the new
	// feet so a fast fall cannot pass through a thin surface.
	top, _, ok := world.FootprintSurface(fp, a.Position.Y-p.GroundProbe, prevY+p.Skin)
	if ok {
		a.Position.Y = top + p.FootOffset
		a.Velocity.Y = 0
		a.Grounded = true
		return
	}
	a.Grounded = false
}

func (c *Controller) groundBeneath(a *Actor, world *collision.World) bool {
	_, _, ok := world.FootprintSurface(bodyAt(a.Position, a.Radius, 0, 0), math.Inf(-1), a.Position.Y+c.params.Skin)
	return ok
}
