package ai

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/arena/internal/character"
	"github.com/vovakirdan/arena/internal/collision"
	"github.com/vovakirdan/arena/internal/combat"
	"github.com/vovakirdan/arena/internal/core"
)

// patrolAttempts bounds rejection sampling of patrol and spawn points.
const patrolAttempts = 8

// Agent is one enemy: a character body plus behavior state.
type Agent struct {
	*character.Actor
	State        State
	PatrolTarget core.Vec3
	FireCooldown float64
	OutOfBounds  bool
}

// Decision is an agent's plan for the current step.
type Decision struct {
	Agent  *Agent
	Intent character.Intent
	From   State
	To     State
	Fire   bool
	Aim    combat.Pose
	LOS    bool
}

// Transitioned reports whether the agent changed state this step.
func (d Decision) Transitioned() bool {
	return d.From != d.To
}

// RemovalReason tells why an agent was pruned.
type RemovalReason uint8

const (
	RemovedKilled RemovalReason = iota
	RemovedFell
)

// String returns the reason name.
func (r RemovalReason) String() string {
	if r == RemovedFell {
		return "fell"
	}
	return "killed"
}

// Removal records one pruned agent.
type Removal struct {
	ID       int
	Reason   RemovalReason
	Position core.Vec3
}

// Controller owns the enemy list.
type Controller struct {
	tuning    Tuning
	body      character.Body
	rng       *rand.Rand
	agents    []*Agent
	nextID    int
	wave      int
	cleared   float64 // seconds since the last wave was cleared
	decisions []Decision
}

// NewController creates an empty controller. Agent IDs start at firstID.
// Tuning.Health, when set, overrides body.MaxHealth.
func NewController(t Tuning, body character.Body, rng *rand.Rand, firstID int) *Controller {
	c := &Controller{body: body, rng: rng, nextID: firstID}
	c.SetTuning(t)
	return c
}

// Tuning returns the controller's tuning.
func (c *Controller) Tuning() Tuning { return c.tuning }

// SetTuning replaces the tuning. Agents already spawned keep their health.
func (c *Controller) SetTuning(t Tuning) {
	c.tuning = t
	if t.Health > 0 {
		c.body.MaxHealth = t.Health
	}
}

// Agents returns the live agents. Callers must not modify the slice.
func (c *Controller) Agents() []*Agent { return c.agents }

// Wave returns how many waves have been spawned.
func (c *Controller) Wave() int { return c.wave }

// Spawn places n agents at random reachable points, standing on the highest
// walkable surface there, and counts them as a new wave.
func (c *Controller) Spawn(n int, world *collision.World) []*Agent {
	spawned := make([]*Agent, 0, n)
	for i := 0; i < n; i++ {
		p := c.pickPoint(world)
		if top, ok := world.HighestSurface(p.X, p.Z); ok {
			p.Y = top
		}
		a := &Agent{
			Actor: character.NewActor(c.nextID, p, c.rng.Float64()*2*math.Pi-math.Pi, c.body),
			State: Patrol,
		}
		a.PatrolTarget = c.pickPoint(world)
		c.nextID++
		c.agents = append(c.agents, a)
		spawned = append(spawned, a)
	}
	if n > 0 {
		c.wave++
		c.cleared = 0
	}
	return spawned
}

// Add inserts a prepared agent. It is used by tests and scripted scenarios.
func (c *Controller) Add(a *Agent) {
	if a.ID >= c.nextID {
		c.nextID = a.ID + 1
	}
	c.agents = append(c.agents, a)
}

// pickPoint draws a point in the safe square, preferring points with walkable
// ground no higher than MaxPatrolHeight.
func (c *Controller) pickPoint(world *collision.World) core.Vec3 {
	t := c.tuning
	var p core.Vec3
	for i := 0; i < patrolAttempts; i++ {
		p = core.V3(
			(c.rng.Float64()*2-1)*t.SafeHalfExtent,
			0,
			(c.rng.Float64()*2-1)*t.SafeHalfExtent,
		)
		if top, ok := world.HighestSurface(p.X, p.Z); ok && top <= t.MaxPatrolHeight {
			return p
		}
	}
	return p
}

// Decide evaluates every agent once against the player and returns movement
// intents and fire requests. The returned slice is reused by the next call.
func (c *Controller) Decide(dt float64, player *character.Actor, world *collision.World) []Decision {
	t := c.tuning
	c.decisions = c.decisions[:0]

	for _, a := range c.agents {
		a.FireCooldown = math.Max(0, a.FireCooldown-dt)

		aim := player.Center()
		eye := a.Eye()
		p := Perception{
			Distance: a.Position.Dist(player.Position),
			LOS:      world.LineOfSight(eye, aim),
		}

		d := Decision{Agent: a, From: a.State, LOS: p.LOS}
		a.State = Next(a.State, p, t)
		d.To = a.State

		switch a.State {
		case Patrol:
			if a.Position.Flat().Dist(a.PatrolTarget.Flat()) < t.ArrivalRadius {
				a.PatrolTarget = c.pickPoint(world)
			}
			d.Intent = c.seek(a, a.PatrolTarget, 1)
		case Chase:
			d.Intent = c.seek(a, player.Position, 1)
		case Attack:
			speed := 0.0
			if p.Distance > t.FireRange*t.AdvanceFactor {
				speed = t.AdvanceSpeedScale
			}
			d.Intent = c.seek(a, player.Position, speed)
			if p.LOS && a.FireCooldown <= 0 && t.FireRate > 0 {
				a.FireCooldown = 1 / t.FireRate
				d.Fire = true
				d.Aim = combat.Pose{Position: eye, Direction: aim.Sub(eye)}
			}
		}
		c.decisions = append(c.decisions, d)
	}
	return c.decisions
}

// seek faces the target and walks toward it at the given fraction of full speed.
func (c *Controller) seek(a *Agent, target core.Vec3, speed float64) character.Intent {
	in := character.Intent{Move: core.Vec2{Y: speed}}
	if yaw, ok := core.YawTowards(a.Position, target); ok {
		in.Face = true
		in.FaceYaw = yaw
	} else {
		in.Move = core.Vec2{}
	}
	return in
}

// Confine keeps an agent inside the arena square, if one is configured.
func (c *Controller) Confine(a *Agent) {
	t := c.tuning
	if t.BoundsHalfExtent <= 0 {
		return
	}
	lim := t.BoundsHalfExtent - t.BoundsMargin
	a.Position.X = core.ClampF(a.Position.X, -lim, lim)
	a.Position.Z = core.ClampF(a.Position.Z, -lim, lim)
}

// Prune removes dead agents and agents flagged out of bounds.
func (c *Controller) Prune() []Removal {
	var removed []Removal
	kept := c.agents[:0]
	for _, a := range c.agents {
		switch {
		case !a.Alive():
			removed = append(removed, Removal{ID: a.ID, Reason: RemovedKilled, Position: a.Position})
		case a.OutOfBounds:
			removed = append(removed, Removal{ID: a.ID, Reason: RemovedFell, Position: a.Position})
		default:
			kept = append(kept, a)
		}
	}
	for i := len(kept); i < len(c.agents); i++ {
		c.agents[i] = nil
	}
	c.agents = kept
	return removed
}

// Respawn spawns a new wave once every agent is gone and RespawnDelay has passed.
func (c *Controller) Respawn(dt float64, world *collision.World) []*Agent {
	t := c.tuning
	if len(c.agents) > 0 || t.RespawnDelay <= 0 || t.WaveSize <= 0 {
		return nil
	}
	c.cleared += dt
	if c.cleared < t.RespawnDelay {
		return nil
	}
	return c.Spawn(t.WaveSize, world)
}

// Reset removes every agent.
func (c *Controller) Reset() {
	c.agents = nil
	c.cleared = 0
}
