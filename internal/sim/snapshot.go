package sim

import (
	"github.com/vovakirdan/arena/internal/ai"
	"github.com/vovakirdan/arena/internal/character"
	"github.com/vovakirdan/arena/internal/combat"
	"github.com/vovakirdan/arena/internal/core"
)

// ActorView is the transform and health of one actor.
type ActorView struct {
	ID        int
	Position  core.Vec3
	Yaw       float64
	Health    float64
	MaxHealth float64
	Grounded  bool
	Radius    float64
}

// EnemyView adds behavior state to an ActorView.
type EnemyView struct {
	ActorView
	State ai.State
}

// ProjectileView is one projectile in flight.
type ProjectileView struct {
	Position core.Vec3
	Velocity core.Vec3
	Team     combat.Team
	Color    string
}

// WeaponView is the current weapon's status.
type WeaponView struct {
	Name       string
	Index      int
	Ammo       int
	Magazine   int
	Reloading  bool
	ReloadLeft float64
}

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	Time        float64
	Wave        int
	Player      ActorView
	Enemies     []EnemyView
	Projectiles []ProjectileView
	Weapon      WeaponView
	Stats       Stats
}

func viewOf(a *character.Actor) ActorView {
	return ActorView{
		ID:        a.ID,
		Position:  a.Position,
		Yaw:       a.Yaw,
		Health:    a.Health,
		MaxHealth: a.MaxHealth,
		Grounded:  a.Grounded,
		Radius:    a.Radius,
	}
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	agents := s.ai.Agents()
	snap := Snapshot{
		Time:        s.time,
		Wave:        s.ai.Wave(),
		Player:      viewOf(s.player),
		Enemies:     make([]EnemyView, 0, len(agents)),
		Projectiles: make([]ProjectileView, 0, s.combat.Pool().Active()),
		Stats:       s.stats,
	}
	for _, a := range agents {
		snap.Enemies = append(snap.Enemies, EnemyView{ActorView: viewOf(a.Actor), State: a.State})
	}
	s.combat.Pool().Each(func(_ combat.Handle, p *combat.Projectile) {
		snap.Projectiles = append(snap.Projectiles, ProjectileView{
			Position: p.Position,
			Velocity: p.Velocity,
			Team:     p.Owner.Team,
			Color:    p.Color,
		})
	})

	def, st := s.loadout.Current(), s.loadout.CurrentState()
	snap.Weapon = WeaponView{
		Name:       def.Name,
		Index:      s.loadout.Index(),
		Ammo:       st.Ammo,
		Magazine:   def.Magazine,
		Reloading:  st.Reloading,
		ReloadLeft: st.ReloadLeft,
	}
	return snap
}
