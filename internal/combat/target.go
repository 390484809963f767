package combat

import (
	"github.com/vovakirdan/arena/internal/character"
	"github.com/vovakirdan/arena/internal/core"
)

// Damageable is anything a confirmed hit can hurt.
type Damageable interface {
	TakeDamage(amount float64)
}

// Target is a dynamic hit volume that projectiles test against.
type Target interface {
	Damageable
	TargetID() int
	Team() Team
	HitBox() core.AABB
	Alive() bool
}

// ActorTarget exposes a character actor as a Target on the given side.
type ActorTarget struct {
	*character.Actor
	Side Team
}

// TargetID returns the actor ID.
func (t ActorTarget) TargetID() int { return t.ID }

// Team returns the actor's side.
func (t ActorTarget) Team() Team { return t.Side }

// HitBox returns the actor's body box.
func (t ActorTarget) HitBox() core.AABB { return t.Bounds() }
