package sim

import (
	"context"
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arena/internal/ai"
	"github.com/vovakirdan/arena/internal/character"
	"github.com/vovakirdan/arena/internal/collision"
	"github.com/vovakirdan/arena/internal/combat"
	"github.com/vovakirdan/arena/internal/config"
	"github.com/vovakirdan/arena/internal/core"
	"github.com/vovakirdan/arena/internal/level"
	"github.com/vovakirdan/arena/internal/scheduler"
)

const dt = 1.0 / 60.0

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// quietConfig disables waves and difficulty so tests place enemies themselves.
func quietConfig() config.Config {
	cfg := config.Default()
	cfg.Enemy.WaveSize = 0
	cfg.Enemy.RespawnDelay = 0
	cfg.Difficulty.Enabled = false
	return cfg
}

func flatWorld(half float64) *collision.World {
	return collision.NewWorld([]collision.StaticCollider{{
		Name:     "ground",
		Box:      core.AABB{Min: core.V3(-half, -1, -half), Max: core.V3(half, 0, half)},
		Walkable: true,
	}})
}

func addEnemy(s *Session, id int, pos core.Vec3, state ai.State) *ai.Agent {
	a := &ai.Agent{
		Actor: character.NewActor(id, pos, 0, s.Config().EnemyBody()),
		State: state,
	}
	a.PatrolTarget = pos
	s.AI().Add(a)
	return a
}

func TestNewSpawnsFirstWave(t *testing.T) {
	cfg := config.Default()
	cfg.Difficulty.Enabled = false
	s := New(cfg, flatWorld(12), WithLogger(quietLogger()), WithSeed(1))

	if got := len(s.AI().Agents()); got != cfg.Enemy.WaveSize {
		t.Fatalf("first wave has %d enemies, want %d", got, cfg.Enemy.WaveSize)
	}
	if s.Stats().Waves != 1 {
		t.Errorf("Waves = %d, want 1", s.Stats().Waves)
	}
	if s.Player().Position != core.V3(0, 0, 0) {
		t.Errorf("player spawned at %v, want the ground at the origin", s.Player().Position)
	}
	for _, a := range s.AI().Agents() {
		if a.ID <= PlayerID {
			t.Errorf("enemy ID %d collides with the player", a.ID)
		}
	}
}

func TestEnemyChasesAfterOneStep(t *testing.T) {
	s := New(quietConfig(), flatWorld(12), WithLogger(quietLogger()))
	a := addEnemy(s, 1, core.V3(0, 0, -5), ai.Patrol)

	in := core.NewInputFrame()
	s.Step(dt, &in)

	if a.State != ai.Chase {
		t.Errorf("state = %v, want Chase", a.State)
	}
}

func TestProjectileKillsEnemyBeforeItsNextDecision(t *testing.T) {
	s := New(quietConfig(), flatWorld(12), WithLogger(quietLogger()))
	a := addEnemy(s, 1, core.V3(0, 0, -1), ai.Patrol)
	a.Health = 10

	in := core.NewInputFrame()
	in.FireHeld = true
	rep := s.Step(dt, &in)

	if rep.Fire != combat.Fired {
		t.Fatalf("fire result = %v, want Fired", rep.Fire)
	}
	if len(rep.Removed) != 1 || rep.Removed[0].Reason != ai.RemovedKilled {
		t.Fatalf("removed = %+v, want one killed enemy", rep.Removed)
	}
	if n := len(s.AI().Agents()); n != 0 {
		t.Errorf("%d agents left after the kill", n)
	}
	st := s.Stats()
	if st.Kills != 1 || st.Hits != 1 || st.ShotsFired != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestEdgesActOncePerFrame(t *testing.T) {
	s := New(quietConfig(), flatWorld(12), WithLogger(quietLogger()))
	sched := scheduler.New(s.Config().SchedulerConfig(), scheduler.StepFunc(func(dt float64, in *core.InputFrame) {
		s.Step(dt, in)
	}))

	in := core.NewInputFrame()
	in.Press(core.EdgeCycleWeapon)
	res := sched.Frame(3*sched.StepDuration(), &in)

	if res.Steps != 3 {
		t.Fatalf("steps = %d, want 3", res.Steps)
	}
	if got := s.Loadout().Index(); got != 1 {
		t.Errorf("weapon index = %d, want 1", got)
	}
	if in.Pending() != 0 {
		t.Errorf("edges still pending after the frame: %v", in.Pending())
	}
}

func newScheduled(s *Session) *scheduler.Scheduler {
	return scheduler.New(s.Config().SchedulerConfig(), scheduler.StepFunc(func(dt float64, in *core.InputFrame) {
		s.Step(dt, in)
	}))
}

func TestFrameWithoutInputSteps(t *testing.T) {
	s := New(quietConfig(), flatWorld(12), WithLogger(quietLogger()))
	sched := newScheduled(s)

	res := sched.Frame(2*sched.StepDuration(), nil)
	if res.Steps != 2 {
		t.Fatalf("steps = %d, want 2", res.Steps)
	}
	if s.Stats().Ticks != 2 {
		t.Errorf("Ticks = %d, want 2", s.Stats().Ticks)
	}
	if s.Player().Position != s.Spawn() {
		t.Errorf("idle player moved to %v", s.Player().Position)
	}
}

func TestJumpPressedInAirIsHonoredAfterLandingInSameFrame(t *testing.T) {
	s := New(quietConfig(), flatWorld(12), WithLogger(quietLogger()))
	sched := newScheduled(s)

	p := s.Player()
	p.Position = core.V3(0, 0.05, 0)
	p.Velocity = core.V3(0, -3, 0)
	p.Grounded = false
	p.AirTime = 1 // well past coyote time

	in := core.NewInputFrame()
	in.Press(core.EdgeJump)
	if res := sched.Frame(3*sched.StepDuration(), &in); res.Steps != 3 {
		t.Fatalf("steps = %d, want 3", res.Steps)
	}

	if p.Velocity.Y <= 0 || p.Position.Y <= 0 {
		t.Errorf("player did not jump after landing: y=%.3f vy=%.3f", p.Position.Y, p.Velocity.Y)
	}
	if in.Pending() != 0 {
		t.Errorf("edges still pending after the frame: %v", in.Pending())
	}
}

func TestSnapTurnWaitsOutCooldownWithinFrame(t *testing.T) {
	cfg := quietConfig()
	cfg.Player.TurnMode = character.TurnSnap.String()
	s := New(cfg, flatWorld(12), WithLogger(quietLogger()))
	sched := newScheduled(s)

	p := s.Player()
	yaw := p.Yaw
	p.SnapLock = 1.5 * sched.Dt()

	in := core.NewInputFrame()
	in.SnapTurn(math.Pi / 6)
	sched.Frame(3*sched.StepDuration(), &in)

	if diff := math.Abs(core.WrapAngle(p.Yaw - yaw - math.Pi/6)); diff > 1e-9 {
		t.Errorf("yaw = %.4f, want one snap of pi/6 from %.4f", p.Yaw, yaw)
	}
}

func TestEnemyOffTheLevelIsRemoved(t *testing.T) {
	cfg := quietConfig()
	cfg.Enemy.BoundsHalfExtent = 0
	s := New(cfg, flatWorld(3), WithLogger(quietLogger()))
	a := addEnemy(s, 1, core.V3(4, 0, 4), ai.Patrol)

	in := core.NewInputFrame()
	for i := 0; i < 10; i++ {
		rep := s.Step(dt, &in)
		for _, r := range rep.Removed {
			if r.ID != a.ID {
				continue
			}
			if r.Reason != ai.RemovedFell {
				t.Fatalf("removed as %v, want fell", r.Reason)
			}
			if r.Position.X <= 3 && r.Position.Z <= 3 {
				t.Errorf("removed at %v, still above the ground", r.Position)
			}
			if len(s.AI().Agents()) != 0 {
				t.Errorf("%d agents remain", len(s.AI().Agents()))
			}
			return
		}
	}
	t.Fatal("enemy past the edge was never removed")
}

func TestPlayerFallsAndRespawns(t *testing.T) {
	cfg := quietConfig()
	w := collision.NewWorld([]collision.StaticCollider{{
		Name:     "ledge",
		Box:      core.AABB{Min: core.V3(-1, -1, -1), Max: core.V3(1, 0, 1)},
		Walkable: true,
	}})
	s := New(cfg, w, WithLogger(quietLogger()))

	in := core.NewInputFrame()
	in.MoveAxis = core.Vec2{Y: 1}
	for i := 0; i < 600; i++ {
		if rep := s.Step(dt, &in); rep.Fell {
			if s.Player().Position != s.Spawn() {
				t.Errorf("respawned at %v, want %v", s.Player().Position, s.Spawn())
			}
			if s.Stats().Falls != 1 {
				t.Errorf("Falls = %d, want 1", s.Stats().Falls)
			}
			// Grace is 1.5 s of falling plus the walk to the edge.
			if secs := s.Time(); secs < cfg.Rules.OutOfBoundsGrace {
				t.Errorf("respawned after %.2fs, before the grace period", secs)
			}
			return
		}
	}
	t.Fatal("player never fell out of the arena")
}

func TestPlayerDeathRespawnsWithFullHealth(t *testing.T) {
	s := New(quietConfig(), flatWorld(12), WithLogger(quietLogger()))
	addEnemy(s, 1, core.V3(0, 0, -3), ai.Attack)
	s.Player().Health = 5

	in := core.NewInputFrame()
	for i := 0; i < 120; i++ {
		if rep := s.Step(dt, &in); rep.Died {
			p := s.Player()
			if p.Health != p.MaxHealth {
				t.Errorf("health = %v after respawn, want %v", p.Health, p.MaxHealth)
			}
			if st := s.Stats(); st.Deaths != 1 || st.DamageTaken <= 0 {
				t.Errorf("stats = %+v", st)
			}
			return
		}
	}
	t.Fatal("enemy never killed the player")
}

func TestWaveRespawnEscalates(t *testing.T) {
	cfg := config.Default()
	cfg.Enemy.WaveSize = 1
	cfg.Enemy.RespawnDelay = 0.5
	cfg.Difficulty.InitialLevel = 0
	cfg.Difficulty.Progression = config.ProgressionConfig{Type: "wave", MaxAt: 2}
	s := New(cfg, flatWorld(12), WithLogger(quietLogger()), WithSeed(3))

	if n := len(s.AI().Agents()); n != 1 {
		t.Fatalf("first wave has %d enemies, want 1", n)
	}
	s.AI().Agents()[0].Health = 0

	in := core.NewInputFrame()
	for i := 0; i < 120; i++ {
		rep := s.Step(dt, &in)
		if rep.Spawned == 0 {
			continue
		}
		// Wave 2 sits at level 0.5: wave size 1+round(1.5), health x1.25.
		if rep.Spawned != 3 {
			t.Errorf("spawned %d, want 3", rep.Spawned)
		}
		for _, a := range s.AI().Agents() {
			if math.Abs(a.MaxHealth-125) > 1e-9 {
				t.Errorf("enemy max health = %v, want 125", a.MaxHealth)
			}
		}
		if s.Time() < cfg.Enemy.RespawnDelay {
			t.Errorf("wave spawned after %.2fs, before the delay", s.Time())
		}
		if s.Stats().Waves != 2 {
			t.Errorf("Waves = %d, want 2", s.Stats().Waves)
		}
		return
	}
	t.Fatal("no second wave")
}

func TestMuzzleFollowsWeaponHand(t *testing.T) {
	tests := []struct {
		hand string
		side float64
	}{
		{"right", 1},
		{"left", -1},
	}
	for _, tt := range tests {
		t.Run(tt.hand, func(t *testing.T) {
			cfg := quietConfig()
			cfg.Player.WeaponHand = tt.hand
			s := New(cfg, flatWorld(12), WithLogger(quietLogger()))

			m := s.Muzzle(0)
			if m.Position.X*tt.side <= 0 {
				t.Errorf("muzzle x = %v on the wrong side", m.Position.X)
			}
			if m.Direction.Z >= 0 || math.Abs(m.Direction.Y) > 1e-12 {
				t.Errorf("direction = %v, want level and forward", m.Direction)
			}

			up := s.Muzzle(0.5).Direction
			if math.Abs(up.Y-math.Sin(0.5)) > 1e-12 {
				t.Errorf("pitched direction = %v", up)
			}
		})
	}
}

func TestSnapshot(t *testing.T) {
	s := New(quietConfig(), flatWorld(12), WithLogger(quietLogger()))
	addEnemy(s, 1, core.V3(0, 0, -10), ai.Patrol)

	in := core.NewInputFrame()
	in.FireHeld = true
	s.Step(dt, &in)

	snap := s.Snapshot()
	if len(snap.Enemies) != 1 || snap.Enemies[0].ID != 1 {
		t.Fatalf("enemies = %+v", snap.Enemies)
	}
	if len(snap.Projectiles) != 1 || snap.Projectiles[0].Team != combat.TeamPlayer {
		t.Fatalf("projectiles = %+v", snap.Projectiles)
	}
	if snap.Weapon.Name != "AR" || snap.Weapon.Ammo != snap.Weapon.Magazine-1 {
		t.Errorf("weapon = %+v", snap.Weapon)
	}
	if snap.Stats.Ticks != 1 {
		t.Errorf("ticks = %d", snap.Stats.Ticks)
	}
}

func runFortress(t *testing.T, seed int64) (RunResult, core.Vec3) {
	t.Helper()
	lvl := level.Fortress()
	w, err := level.Build(lvl, seed, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	spawn := level.SafeSpawn(w, lvl.Spawn.Vec())
	s := New(config.Default(), w, WithLogger(quietLogger()), WithSeed(seed), WithSpawn(spawn, 0))

	res, err := Run(context.Background(), s, NewAutopilot(), RunOptions{
		Duration:  10 * time.Second,
		RenderFPS: 45,
		Jitter:    0.4,
		Seed:      seed,
	})
	if err != nil {
		t.Fatal(err)
	}
	return res, s.Player().Position
}

func TestRunIsDeterministic(t *testing.T) {
	a, posA := runFortress(t, 11)
	b, posB := runFortress(t, 11)

	if a != b {
		t.Errorf("runs differ:\n%+v\n%+v", a, b)
	}
	if posA != posB {
		t.Errorf("final positions differ: %v vs %v", posA, posB)
	}
	if a.Scheduler.SimTime < 10*time.Second {
		t.Errorf("simulated %v, want at least 10s", a.Scheduler.SimTime)
	}
	if a.Stats.Ticks != a.Scheduler.Steps {
		t.Errorf("session ticks %d != scheduler steps %d", a.Stats.Ticks, a.Scheduler.Steps)
	}
}

func TestRunHonorsContext(t *testing.T) {
	s := New(quietConfig(), flatWorld(12), WithLogger(quietLogger()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, s, NewAutopilot(), RunOptions{Duration: time.Second, RenderFPS: 30})
	if err == nil {
		t.Fatal("expected context error")
	}
	if _, err := Run(context.Background(), s, NewAutopilot(), RunOptions{Duration: time.Second}); err == nil {
		t.Fatal("expected an error for zero fps")
	}
}

func TestStatsScore(t *testing.T) {
	tests := []struct {
		name  string
		stats Stats
		want  int
	}{
		{"empty", Stats{}, 0},
		{"first wave", Stats{Waves: 1, Kills: 2, Hits: 5}, 250},
		{"later waves", Stats{Waves: 3, Kills: 6, Hits: 20, Deaths: 1}, 800},
		{"never negative", Stats{Waves: 1, Deaths: 4, Falls: 2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stats.Score(); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewForLevelAppliesBoundsAndSpawn(t *testing.T) {
	lvl := level.Steps()
	lvl.Bounds = 5

	s, err := NewForLevel(quietConfig(), lvl, 1, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if got := s.AI().Tuning().BoundsHalfExtent; got != 5 {
		t.Errorf("enemy leash = %v, want 5", got)
	}
	if s.Spawn() != core.V3(0, 0, 4) {
		t.Errorf("spawn = %v, want (0, 0, 4)", s.Spawn())
	}
}

func TestRecordCopiesTotals(t *testing.T) {
	s := New(quietConfig(), flatWorld(12), WithLogger(quietLogger()))
	for range 30 {
		s.Step(dt, &core.InputFrame{})
	}

	r := Record(s, "flat", "headless", "bot", 42)
	if r.ID != "" {
		t.Errorf("ID = %q, want empty before save", r.ID)
	}
	if r.Level != "flat" || r.Mode != "headless" || r.Player != "bot" || r.Seed != 42 {
		t.Errorf("identity fields not copied: %+v", r)
	}
	if math.Abs(r.SimSeconds-s.Time()) > 1e-9 {
		t.Errorf("SimSeconds = %v, want %v", r.SimSeconds, s.Time())
	}
	if r.Score != s.Stats().Score() || r.Waves != s.Stats().Waves {
		t.Errorf("score/waves = %d/%d, want %d/%d", r.Score, r.Waves, s.Stats().Score(), s.Stats().Waves)
	}
}
