package character

import (
	"math"

	"github.com/vovakirdan/arena/internal/core"
)

// Actor is the shared body of the player and every enemy.
// Position is the point between the feet.
type Actor struct {
	ID        int
	Position  core.Vec3
	Yaw       float64
	Velocity  core.Vec3 // Y is vertical velocity; XZ is the last step's horizontal velocity
	Grounded  bool
	Health    float64
	MaxHealth float64
	Radius    float64
	Height    float64
	EyeHeight float64

	// AirTime is seconds since the actor last stood on a walkable surface.
	AirTime float64
	// SnapLock is the remaining snap-turn cooldown.
	SnapLock float64

	jumpSpent bool
}

// Body describes collision extents and health for an actor kind.
type Body struct {
	Radius    float64
	Height    float64
	EyeHeight float64
	MaxHealth float64
}

// PlayerBody returns the default player extents.
func PlayerBody() Body {
	return Body{Radius: 0.35, Height: 1.7, EyeHeight: 1.6, MaxHealth: 100}
}

// EnemyBody returns the default enemy extents.
func EnemyBody() Body {
	return Body{Radius: 0.45, Height: 1.5, EyeHeight: 1.3, MaxHealth: 100}
}

// NewActor creates an airborne actor at pos with full health.
func NewActor(id int, pos core.Vec3, yaw float64, body Body) *Actor {
	return &Actor{
		ID:        id,
		Position:  pos,
		Yaw:       core.WrapAngle(yaw),
		Health:    body.MaxHealth,
		MaxHealth: body.MaxHealth,
		Radius:    body.Radius,
		Height:    body.Height,
		EyeHeight: body.EyeHeight,
		AirTime:   math.Inf(1),
	}
}

// TakeDamage subtracts amount from health, flooring at 0. Non-positive amounts are ignored.
func (a *Actor) TakeDamage(amount float64) {
	if amount <= 0 {
		return
	}
	a.Health = math.Max(0, a.Health-amount)
}

// Alive reports whether health is above zero.
func (a *Actor) Alive() bool {
	return a.Health > 0
}

// Respawn puts the actor back at pos with full health and no motion.
func (a *Actor) Respawn(pos core.Vec3, yaw float64) {
	a.Position = pos
	a.Yaw = core.WrapAngle(yaw)
	a.Velocity = core.Vec3{}
	a.Grounded = false
	a.Health = a.MaxHealth
	a.AirTime = math.Inf(1)
	a.SnapLock = 0
	a.jumpSpent = false
}

// Eye returns the eye point used for aiming and line of sight.
func (a *Actor) Eye() core.Vec3 {
	return a.Position.Add(core.V3(0, a.EyeHeight, 0))
}

// Center returns the middle of the body.
func (a *Actor) Center() core.Vec3 {
	return a.Position.Add(core.V3(0, a.Height/2, 0))
}

// Forward returns the horizontal facing direction.
func (a *Actor) Forward() core.Vec3 {
	return core.ForwardFromYaw(a.Yaw)
}

// Bounds returns the body box.
func (a *Actor) Bounds() core.AABB {
	return bodyAt(a.Position, a.Radius, a.Height, 0)
}

// bodyAt returns the box of a body standing at feet, bottom raised by lift.
func bodyAt(feet core.Vec3, radius, height, lift float64) core.AABB {
	return core.AABB{
		Min: core.V3(feet.X-radius, feet.Y+lift, feet.Z-radius),
		Max: core.V3(feet.X+radius, feet.Y+height, feet.Z+radius),
	}
}
