// Package combat implements weapon cadence, the pooled projectile lifecycle,
// swept hit detection and damage dispatch.
package combat

import (
	"math"

	"github.com/vovakirdan/arena/internal/collision"
	"github.com/vovakirdan/arena/internal/core"
)

// FireResult is the outcome of a fire request.
type FireResult uint8

const (
	Fired FireResult = iota
	CoolingDown
	Reloading
	ReloadStarted
	Dropped // active cap reached; nothing spawned, weapon state untouched
)

// String returns the result name.
func (r FireResult) String() string {
	switch r {
	case Fired:
		return "Fired"
	case CoolingDown:
		return "CoolingDown"
	case Reloading:
		return "Reloading"
	case ReloadStarted:
		return "ReloadStarted"
	case Dropped:
		return "Dropped"
	default:
		return "Unknown"
	}
}

// Pose is a muzzle position and aim direction.
type Pose struct {
	Position  core.Vec3
	Direction core.Vec3
}

// EventKind classifies projectile outcomes.
type EventKind uint8

const (
	EventHit     EventKind = iota // struck a target
	EventImpact                   // struck static geometry
	EventExpired                  // lifetime, range or world bounds exceeded
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventHit:
		return "Hit"
	case EventImpact:
		return "Impact"
	default:
		return "Expired"
	}
}

// ExpireReason tells why a projectile expired.
type ExpireReason uint8

const (
	ExpireNone ExpireReason = iota
	ExpireLifetime
	ExpireRange
	ExpireBounds
)

// Event records a projectile leaving flight during Step.
type Event struct {
	Kind      EventKind
	Reason    ExpireReason
	Owner     Owner
	Weapon    string
	Point     core.Vec3
	TargetID  int // EventHit only
	Collider  int // EventImpact only
	Damage    float64
	Killed    bool // the hit took the target to zero health
	Age       float64
	Travelled float64
}

// Config tunes the combat system.
type Config struct {
	MaxActive     int     // concurrent projectile cap
	BoundsPadding float64 // distance outside the level bounds before a projectile is discarded
}

// DefaultConfig returns the stock combat tuning.
func DefaultConfig() Config {
	return Config{MaxActive: DefaultMaxActive, BoundsPadding: 20}
}

// System owns the projectile pool.
type System struct {
	cfg    Config
	pool   *Pool
	events []Event
}

// NewSystem creates a combat system with a preallocated pool.
func NewSystem(cfg Config) *System {
	if cfg.BoundsPadding < 0 {
		cfg.BoundsPadding = 0
	}
	return &System{cfg: cfg, pool: NewPool(cfg.MaxActive)}
}

// Pool exposes the projectile pool for inspection.
func (s *System) Pool() *Pool {
	return s.pool
}

// Fire attempts to shoot the loadout's current weapon.
// An empty magazine starts a reload instead of spawning anything.
func (s *System) Fire(l *Loadout, muzzle Pose, owner Owner) FireResult {
	def, st := l.Current(), l.CurrentState()
	switch {
	case st.Reloading:
		return Reloading
	case !st.Ready():
		return CoolingDown
	case def.Magazine > 0 && st.Ammo <= 0:
		l.RequestReload()
		return ReloadStarted
	}

	if s.spawn(def, muzzle, owner) != Fired {
		return Dropped
	}
	l.consume()
	return Fired
}

// FireDef spawns one projectile of def with no cadence or ammo checks.
// Callers that track their own cooldown (AI agents) use this.
func (s *System) FireDef(def WeaponDef, muzzle Pose, owner Owner) FireResult {
	return s.spawn(def, muzzle, owner)
}

func (s *System) spawn(def WeaponDef, muzzle Pose, owner Owner) FireResult {
	_, p, ok := s.pool.Acquire()
	if !ok {
		return Dropped
	}
	dir := muzzle.Direction.Normalize()
	if dir == (core.Vec3{}) {
		dir = core.V3(0, 0, -1)
	}
	*p = Projectile{
		Origin:      muzzle.Position,
		Position:    muzzle.Position,
		Velocity:    dir.Scale(def.Speed),
		Radius:      def.Radius,
		Owner:       owner,
		Damage:      def.Damage,
		MaxLifetime: def.MaxLifetime,
		MaxRange:    def.MaxRange,
		Weapon:      def.Name,
		Color:       def.Color,
	}
	return Fired
}

// Step advances every active projectile by dt. Each one sweeps a ray over this
// step's travel against static colliders and opposing, living targets; the
// nearest intersection wins. The returned slice is reused by the next call.
func (s *System) Step(dt float64, world *collision.World, targets []Target) []Event {
	s.events = s.events[:0]

	checkBounds := world.Len() > 0
	bounds := world.Bounds().Expand(s.cfg.BoundsPadding, s.cfg.BoundsPadding)

	s.pool.Each(func(h Handle, p *Projectile) {
		speed := p.Velocity.Len()

		// Clamp travel so neither safety bound is ever overshot.
		t := math.Min(dt, math.Max(0, p.MaxLifetime-p.Age))
		if speed > 0 {
			t = math.Min(t, math.Max(0, p.MaxRange-p.Travelled)/speed)
		}
		dist := speed * t
		dir := p.Velocity.Normalize()

		if ev, ok := s.sweep(p, dir, dist, world, targets); ok {
			s.events = append(s.events, ev)
			s.pool.Release(h)
			return
		}

		p.Position = p.Position.Add(dir.Scale(dist))
		p.Age += t
		p.Travelled += dist

		reason := ExpireNone
		switch {
		case p.Age >= p.MaxLifetime-readyEpsilon:
			reason = ExpireLifetime
		case p.Travelled >= p.MaxRange-readyEpsilon:
			reason = ExpireRange
		case checkBounds && !bounds.Contains(p.Position):
			reason = ExpireBounds
		}
		if reason != ExpireNone {
			s.events = append(s.events, Event{
				Kind: EventExpired, Reason: reason, Owner: p.Owner, Weapon: p.Weapon,
				Point: p.Position, Age: p.Age, Travelled: p.Travelled,
			})
			s.pool.Release(h)
		}
	})
	return s.events
}

// sweep finds the nearest static or target intersection within dist and
// applies damage for a target hit.
func (s *System) sweep(p *Projectile, dir core.Vec3, dist float64, world *collision.World, targets []Target) (Event, bool) {
	if dist <= 0 {
		return Event{}, false
	}

	best := math.Inf(1)
	collider := -1
	if hit, ok := world.SweepRadius(p.Position, dir, dist, p.Radius); ok {
		best, collider = hit.Distance, hit.Index
	}

	var struck Target
	for _, tg := range targets {
		if !tg.Alive() || tg.Team() == p.Owner.Team {
			continue
		}
		box := tg.HitBox().Expand(p.Radius, p.Radius)
		if d, ok := box.RayHit(p.Position, dir, dist); ok && d < best {
			best, struck = d, tg
		}
	}

	if struck == nil && collider < 0 {
		return Event{}, false
	}

	ev := Event{
		Owner:     p.Owner,
		Weapon:    p.Weapon,
		Point:     p.Position.Add(dir.Scale(best)),
		Collider:  -1,
		TargetID:  -1,
		Travelled: p.Travelled + best,
	}
	if speed := p.Velocity.Len(); speed > 0 {
		ev.Age = p.Age + best/speed
	}

	if struck != nil {
		struck.TakeDamage(p.Damage)
		ev.Kind = EventHit
		ev.TargetID = struck.TargetID()
		ev.Damage = p.Damage
		ev.Killed = !struck.Alive()
		return ev, true
	}
	ev.Kind = EventImpact
	ev.Collider = collider
	return ev, true
}

// Reset discards every projectile in flight.
func (s *System) Reset() {
	s.pool.Reset()
}
