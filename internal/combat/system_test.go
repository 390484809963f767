package combat

import (
	"math"
	"testing"

	"github.com/vovakirdan/arena/internal/character"
	"github.com/vovakirdan/arena/internal/collision"
	"github.com/vovakirdan/arena/internal/core"
)

func box(minX, minY, minZ, maxX, maxY, maxZ float64) core.AABB {
	return core.AABB{Min: core.V3(minX, minY, minZ), Max: core.V3(maxX, maxY, maxZ)}
}

var (
	playerOwner = Owner{ActorID: 1, Team: TeamPlayer}
	forward     = Pose{Position: core.V3(0, 1, 0), Direction: core.V3(0, 0, -1)}
)

func TestFireCadenceIndependentOfStepSize(t *testing.T) {
	def := WeaponDef{Name: "test", Speed: 10, FireRate: 10, Damage: 1, MaxLifetime: 0.01, MaxRange: 100}

	tests := []struct {
		name  string
		steps int
	}{
		{"30 Hz", 30},
		{"60 Hz", 60},
		{"144 Hz", 144},
		{"240 Hz", 240},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := NewSystem(DefaultConfig())
			world := collision.NewWorld(nil)
			l := NewLoadout([]WeaponDef{def})
			dt := 1.0 / float64(tt.steps)

			shots := 0
			for i := 0; i < 2*tt.steps; i++ {
				if sys.Fire(l, forward, playerOwner) == Fired {
					shots++
				}
				l.Tick(dt, true)
				sys.Step(dt, world, nil)
			}
			if shots != 20 {
				t.Errorf("shots in 2s = %d, expected 20", shots)
			}
		})
	}
}

func TestFireNotHeldDoesNotBurst(t *testing.T) {
	sys := NewSystem(DefaultConfig())
	l := NewLoadout([]WeaponDef{{Name: "x", Speed: 1, FireRate: 10, MaxLifetime: 1, MaxRange: 10}})

	sys.Fire(l, forward, playerOwner)
	for i := 0; i < 120; i++ {
		l.Tick(1.0/60.0, false)
	}
	if sys.Fire(l, forward, playerOwner) != Fired {
		t.Fatal("weapon should be ready after idling")
	}
	if got := sys.Fire(l, forward, playerOwner); got != CoolingDown {
		t.Errorf("second immediate shot = %v, expected CoolingDown", got)
	}
}

func TestFireEmptyMagazineStartsReload(t *testing.T) {
	sys := NewSystem(DefaultConfig())
	def := WeaponDef{Name: "x", Speed: 1, FireRate: 1000, Magazine: 2, ReloadTime: 0.5, MaxLifetime: 1, MaxRange: 10}
	l := NewLoadout([]WeaponDef{def})

	for i := 0; i < 2; i++ {
		if got := sys.Fire(l, forward, playerOwner); got != Fired {
			t.Fatalf("shot %d = %v", i, got)
		}
		l.Tick(0.01, true)
	}

	active := sys.Pool().Active()
	if got := sys.Fire(l, forward, playerOwner); got != ReloadStarted {
		t.Fatalf("empty magazine fire = %v, expected ReloadStarted", got)
	}
	if sys.Pool().Active() != active {
		t.Error("a reload redirect must not spawn a projectile")
	}
	if got := sys.Fire(l, forward, playerOwner); got != Reloading {
		t.Errorf("fire during reload = %v, expected Reloading", got)
	}

	for i := 0; i < 50; i++ {
		l.Tick(0.01, true)
	}
	if got := sys.Fire(l, forward, playerOwner); got != Fired {
		t.Errorf("fire after reload = %v, expected Fired", got)
	}
}

func TestFireDroppedAtCap(t *testing.T) {
	sys := NewSystem(Config{MaxActive: 2})
	def := WeaponDef{Name: "x", Speed: 1, FireRate: 1000, Magazine: 10, MaxLifetime: 5, MaxRange: 10}
	l := NewLoadout([]WeaponDef{def})

	for i := 0; i < 2; i++ {
		sys.Fire(l, forward, playerOwner)
		l.Tick(0.01, true)
	}
	before := l.CurrentState()

	if got := sys.Fire(l, forward, playerOwner); got != Dropped {
		t.Fatalf("fire at cap = %v, expected Dropped", got)
	}
	if after := l.CurrentState(); after != before {
		t.Errorf("dropped fire changed weapon state: %+v -> %+v", before, after)
	}
	if p := sys.Pool(); p.Active() != 2 || p.Active()+p.Free() != p.Cap() {
		t.Errorf("pool Active=%d Free=%d Cap=%d", p.Active(), p.Free(), p.Cap())
	}
}

func TestProjectileTravelBounds(t *testing.T) {
	tests := []struct {
		name   string
		def    WeaponDef
		reason ExpireReason
	}{
		{"lifetime bound", WeaponDef{Name: "slow", Speed: 16, MaxLifetime: 8, MaxRange: 150}, ExpireLifetime},
		{"range bound", WeaponDef{Name: "fast", Speed: 35, MaxLifetime: 8, MaxRange: 150}, ExpireRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := NewSystem(DefaultConfig())
			world := collision.NewWorld(nil)
			sys.FireDef(tt.def, forward, playerOwner)

			var got []Event
			for i := 0; i < 1000 && len(got) == 0; i++ {
				got = append(got, sys.Step(1.0/60.0, world, nil)...)
			}
			if len(got) != 1 {
				t.Fatalf("expected one event, got %d", len(got))
			}
			ev := got[0]
			if ev.Kind != EventExpired || ev.Reason != tt.reason {
				t.Fatalf("event = %v/%v, expected Expired/%v", ev.Kind, ev.Reason, tt.reason)
			}
			want := tt.def.Speed * math.Min(ev.Age, tt.def.MaxLifetime)
			if math.Abs(ev.Travelled-want) > 1e-6 {
				t.Errorf("travelled %f, expected speed*min(age, lifetime) = %f", ev.Travelled, want)
			}
			if ev.Age > tt.def.MaxLifetime+1e-9 || ev.Travelled > tt.def.MaxRange+1e-9 {
				t.Errorf("overshot bounds: age %f travelled %f", ev.Age, ev.Travelled)
			}
			if sys.Pool().Active() != 0 {
				t.Error("expired projectile should return to the pool")
			}
		})
	}
}

func TestNearestColliderWins(t *testing.T) {
	world := collision.NewWorld([]collision.StaticCollider{
		{ID: 0, Name: "far", Box: box(-1, 0, -12, 1, 3, -11)},
		{ID: 1, Name: "near", Box: box(-1, 0, -6, 1, 3, -5)},
	})
	sys := NewSystem(DefaultConfig())
	sys.FireDef(WeaponDef{Name: "x", Speed: 60, MaxLifetime: 8, MaxRange: 150}, forward, playerOwner)

	// One 0.5s step sweeps 30 units, crossing both walls.
	events := sys.Step(0.5, world, nil)

	if len(events) != 1 {
		t.Fatalf("expected exactly one event, got %d", len(events))
	}
	if ev := events[0]; ev.Kind != EventImpact || ev.Collider != 1 {
		t.Errorf("event = %+v, expected Impact on the near wall", ev)
	}
	if z := events[0].Point.Z; math.Abs(z+5) > 1e-9 {
		t.Errorf("impact z = %f, expected -5", z)
	}
}

func TestRoundRadiusAppliesToWalls(t *testing.T) {
	world := collision.NewWorld([]collision.StaticCollider{
		{Name: "wall", Box: box(-1, 0, -6, 1, 3, -5)},
	})
	beside := Pose{Position: core.V3(1.03, 1, 0), Direction: core.V3(0, 0, -1)}

	sys := NewSystem(DefaultConfig())
	sys.FireDef(WeaponDef{Name: "x", Speed: 60, Radius: 0.05, MaxLifetime: 8, MaxRange: 150}, beside, playerOwner)
	events := sys.Step(0.5, world, nil)
	if len(events) != 1 || events[0].Kind != EventImpact || events[0].Collider != 0 {
		t.Fatalf("events = %+v, expected an impact on the wall edge", events)
	}
	if z := events[0].Point.Z; math.Abs(z+4.95) > 1e-9 {
		t.Errorf("impact z = %f, expected -4.95", z)
	}

	sys = NewSystem(DefaultConfig())
	sys.FireDef(WeaponDef{Name: "x", Speed: 60, MaxLifetime: 8, MaxRange: 150}, beside, playerOwner)
	if events := sys.Step(0.5, world, nil); len(events) != 0 {
		t.Errorf("events = %+v, a point round should pass beside the wall", events)
	}
}

func TestTargetHits(t *testing.T) {
	wall := collision.StaticCollider{Name: "wall", Box: box(-2, 0, -8, 2, 3, -7)}
	world := collision.NewWorld([]collision.StaticCollider{wall})
	def := WeaponDef{Name: "x", Speed: 40, Damage: 30, Radius: 0.05, MaxLifetime: 8, MaxRange: 150}

	enemyAt := func(z float64) *character.Actor {
		return character.NewActor(7, core.V3(0, 0, z), 0, character.EnemyBody())
	}

	t.Run("target before wall", func(t *testing.T) {
		sys := NewSystem(DefaultConfig())
		enemy := enemyAt(-4)
		sys.FireDef(def, forward, playerOwner)

		events := sys.Step(0.5, world, []Target{ActorTarget{Actor: enemy, Side: TeamEnemy}})
		if len(events) != 1 || events[0].Kind != EventHit || events[0].TargetID != 7 {
			t.Fatalf("events = %+v, expected a hit on target 7", events)
		}
		if enemy.Health != 70 {
			t.Errorf("enemy health = %f, expected 70", enemy.Health)
		}
	})

	t.Run("wall before target", func(t *testing.T) {
		sys := NewSystem(DefaultConfig())
		enemy := enemyAt(-10)
		sys.FireDef(def, forward, playerOwner)

		events := sys.Step(0.5, world, []Target{ActorTarget{Actor: enemy, Side: TeamEnemy}})
		if len(events) != 1 || events[0].Kind != EventImpact {
			t.Fatalf("events = %+v, expected an impact on the wall", events)
		}
		if enemy.Health != enemy.MaxHealth {
			t.Error("occluded target must not take damage")
		}
	})

	t.Run("same team ignored", func(t *testing.T) {
		sys := NewSystem(DefaultConfig())
		ally := enemyAt(-4)
		sys.FireDef(def, forward, playerOwner)

		sys.Step(0.5, world, []Target{ActorTarget{Actor: ally, Side: TeamPlayer}})
		if ally.Health != ally.MaxHealth {
			t.Error("friendly fire should not apply")
		}
	})

	t.Run("kill reported", func(t *testing.T) {
		sys := NewSystem(DefaultConfig())
		enemy := enemyAt(-4)
		enemy.Health = 20
		sys.FireDef(def, forward, playerOwner)

		events := sys.Step(0.5, world, []Target{ActorTarget{Actor: enemy, Side: TeamEnemy}})
		if len(events) != 1 || !events[0].Killed {
			t.Errorf("events = %+v, expected Killed", events)
		}
	})
}

func TestProjectileLeavesBounds(t *testing.T) {
	world := collision.NewWorld([]collision.StaticCollider{
		{Name: "ground", Box: box(-5, -1, -5, 5, 0, 5), Walkable: true},
	})
	sys := NewSystem(Config{MaxActive: 4, BoundsPadding: 2})
	up := Pose{Position: core.V3(0, 1, 0), Direction: core.V3(0, 1, 0)}
	sys.FireDef(WeaponDef{Name: "x", Speed: 10, MaxLifetime: 8, MaxRange: 150}, up, playerOwner)

	var last []Event
	for i := 0; i < 60 && sys.Pool().Active() > 0; i++ {
		last = sys.Step(1.0/60.0, world, nil)
	}
	if len(last) != 1 || last[0].Reason != ExpireBounds {
		t.Errorf("events = %+v, expected an ExpireBounds event", last)
	}
}
