// Package sim runs one arena session: the player, the enemy wave and every
// projectile, advanced together in a fixed order once per simulation step.
package sim

import (
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arena/internal/ai"
	"github.com/vovakirdan/arena/internal/character"
	"github.com/vovakirdan/arena/internal/collision"
	"github.com/vovakirdan/arena/internal/combat"
	"github.com/vovakirdan/arena/internal/config"
	"github.com/vovakirdan/arena/internal/core"
)

// PlayerID is the actor ID of the player. Enemy IDs start above it.
const PlayerID = 0

const maxAimPitch = 1.2

// Muzzle placement relative to the player's feet and heading.
const (
	muzzleDrop    = 0.25
	muzzleForward = 0.44
	muzzleSide    = 0.25
)

// Stats counts what happened during a session.
type Stats struct {
	Ticks        int64
	ShotsFired   int
	ShotsDropped int
	EnemyShots   int
	Hits         int
	Kills        int
	Deaths       int
	Falls        int
	Reloads      int
	Waves        int
	DamageDealt  float64
	DamageTaken  float64
}

// Accuracy returns the share of fired player shots that hit an enemy.
func (s Stats) Accuracy() float64 {
	if s.ShotsFired == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.ShotsFired)
}

// Score rates a session: kills and hits earn points, deaths and falls cost them.
func (s Stats) Score() int {
	score := s.Kills*100 + s.Hits*10 + (s.Waves-1)*50 - s.Deaths*100 - s.Falls*50
	return max(score, 0)
}

// Report describes one step.
type Report struct {
	Player    character.Result
	Fire      combat.FireResult
	FireTried bool
	Events    []combat.Event
	Removed   []ai.Removal
	Spawned   int
	Died      bool // the player was killed and respawned
	Fell      bool // the player fell out of the arena and respawned
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithSeed seeds enemy placement and patrol choices.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.seed = seed }
}

// WithSpawn sets the player's spawn point and heading.
func WithSpawn(pos core.Vec3, yaw float64) Option {
	return func(s *Session) {
		s.spawn, s.spawnYaw, s.spawnSet = pos, yaw, true
	}
}

// Session owns every mutable entity. All mutation happens inside Step.
type Session struct {
	cfg    config.Config
	world  *collision.World
	logger *log.Logger
	seed   int64

	spawn    core.Vec3
	spawnYaw float64
	spawnSet bool

	player    *character.Actor
	playerCtl *character.Controller
	enemyCtl  *character.Controller
	loadout   *combat.Loadout
	combat    *combat.System
	ai        *ai.Controller
	baseAI    ai.Tuning
	diff      *config.DifficultyManager

	time     float64
	fallTime float64
	stats    Stats
	targets  []combat.Target
}

// New creates a session on world and spawns the first enemy wave.
func New(cfg config.Config, world *collision.World, opts ...Option) *Session {
	s := &Session{cfg: cfg, world: world}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if !s.spawnSet {
		if top, ok := world.HighestSurface(0, 0); ok {
			s.spawn = core.V3(0, top, 0)
		}
	}

	s.playerCtl = character.NewController(cfg.PlayerParams())
	s.enemyCtl = character.NewController(cfg.EnemyParams())
	s.combat = combat.NewSystem(cfg.CombatTuning())
	s.diff = config.NewDifficultyManager(cfg.Difficulty)

	s.baseAI = cfg.Enemy.Tuning
	s.Reset()
	return s
}

// Reset restarts the session from its spawn with a fresh wave.
func (s *Session) Reset() {
	s.player = character.NewActor(PlayerID, s.spawn, s.spawnYaw, s.cfg.PlayerBody())
	s.loadout = combat.NewLoadout(s.cfg.Weapons)
	s.combat.Reset()
	s.ai = ai.NewController(s.baseAI, s.cfg.EnemyBody(), rand.New(rand.NewSource(s.seed)), PlayerID+1)

	s.time = 0
	s.fallTime = 0
	s.stats = Stats{}

	s.ai.SetTuning(s.tuningFor(1))
	if n := s.ai.Tuning().WaveSize; n > 0 {
		s.ai.Spawn(n, s.world)
		s.stats.Waves = s.ai.Wave()
	}
}

// tuningFor returns the enemy tuning for the given wave.
func (s *Session) tuningFor(wave int) ai.Tuning {
	level := s.diff.Level(wave, s.time)
	return s.diff.Tuning(s.baseAI, level)
}

// Step advances the session by dt seconds: AI decisions first, then character
// movement for the player and every enemy, then combat.
func (s *Session) Step(dt float64, in *core.InputFrame) Report {
	var rep Report
	s.time += dt
	s.stats.Ticks++

	decisions := s.ai.Decide(dt, s.player, s.world)
	for _, d := range decisions {
		if d.Transitioned() {
			s.logger.Debug("enemy state", "id", d.Agent.ID, "from", d.From, "to", d.To)
		}
	}

	rep.Player = s.playerCtl.Advance(s.player, s.playerIntent(in), dt, s.world)
	if rep.Player.Jumped {
		in.Take(core.EdgeJump)
	}
	if rep.Player.Snapped {
		in.Take(core.EdgeSnapTurn)
	}
	rep.Fell = s.applyPlayerBounds(rep.Player, dt)

	killY := s.cfg.Rules.KillY
	for _, d := range decisions {
		r := s.enemyCtl.Advance(d.Agent.Actor, d.Intent, dt, s.world)
		s.ai.Confine(d.Agent)
		if r.OutOfBounds || d.Agent.Position.Y < killY {
			d.Agent.OutOfBounds = true
		}
	}

	s.playerWeapon(in, dt, &rep)

	for _, d := range decisions {
		if !d.Fire || !d.Agent.Alive() || d.Agent.OutOfBounds {
			continue
		}
		owner := combat.Owner{ActorID: d.Agent.ID, Team: combat.TeamEnemy}
		if s.combat.FireDef(s.cfg.Enemy.Weapon, d.Aim, owner) == combat.Fired {
			s.stats.EnemyShots++
		} else {
			s.stats.ShotsDropped++
			s.logger.Debug("enemy shot dropped", "id", d.Agent.ID)
		}
	}

	rep.Events = s.combat.Step(dt, s.world, s.gatherTargets())
	s.tally(rep.Events)

	rep.Removed = s.ai.Prune()
	for _, r := range rep.Removed {
		s.logger.Debug("enemy removed", "id", r.ID, "reason", r.Reason)
	}

	if len(s.ai.Agents()) == 0 {
		s.ai.SetTuning(s.tuningFor(s.ai.Wave() + 1))
	}
	if spawned := s.ai.Respawn(dt, s.world); len(spawned) > 0 {
		rep.Spawned = len(spawned)
		s.stats.Waves = s.ai.Wave()
		t := s.ai.Tuning()
		s.logger.Info("wave", "n", s.ai.Wave(), "enemies", len(spawned),
			"health", t.Health, "fire_rate", t.FireRate)
	}

	if !s.player.Alive() {
		s.stats.Deaths++
		rep.Died = true
		s.logger.Info("player killed", "deaths", s.stats.Deaths, "t", s.time)
		s.respawnPlayer()
	}
	return rep
}

// playerIntent maps the input frame onto a movement intent. Pending edges are
// offered to every step of a frame and taken by Step only once they act, so a
// frame jumps or snap-turns at most once and never loses the press.
func (s *Session) playerIntent(in *core.InputFrame) character.Intent {
	pending := in.Pending()
	it := character.Intent{
		Move: in.MoveAxis.ClampUnit(),
		Turn: in.TurnAxis,
		Jump: pending&core.EdgeJump != 0,
	}
	if pending&core.EdgeSnapTurn != 0 {
		it.SnapDelta = in.TurnSnapDelta
	}
	return it
}

// applyPlayerBounds respawns the player below KillY or after falling with no
// ground beneath for longer than the grace period.
func (s *Session) applyPlayerBounds(r character.Result, dt float64) bool {
	if r.OutOfBounds {
		s.fallTime += dt
	} else {
		s.fallTime = 0
	}
	if s.player.Position.Y >= s.cfg.Rules.KillY && s.fallTime <= s.cfg.Rules.OutOfBoundsGrace {
		return false
	}
	s.stats.Falls++
	s.logger.Info("player fell", "x", s.player.Position.X, "y", s.player.Position.Y, "z", s.player.Position.Z)
	s.respawnPlayer()
	return true
}

func (s *Session) respawnPlayer() {
	s.player.Respawn(s.spawn, s.spawnYaw)
	s.loadout.Refill()
	s.fallTime = 0
}

// playerWeapon handles cycle and reload edges, fires while the trigger is held
// and advances weapon timers.
func (s *Session) playerWeapon(in *core.InputFrame, dt float64, rep *Report) {
	if in.Take(core.EdgeCycleWeapon) {
		s.loadout.Cycle()
		s.logger.Debug("weapon", "name", s.loadout.Current().Name)
	}
	if in.Pending()&core.EdgeReload != 0 && s.loadout.RequestReload() {
		in.Take(core.EdgeReload)
		s.stats.Reloads++
		s.logger.Debug("reload", "weapon", s.loadout.Current().Name)
	}

	if in.FireHeld {
		rep.FireTried = true
		rep.Fire = s.combat.Fire(s.loadout, s.Muzzle(in.AimPitch), combat.Owner{ActorID: PlayerID, Team: combat.TeamPlayer})
		switch rep.Fire {
		case combat.Fired:
			s.stats.ShotsFired++
		case combat.Dropped:
			s.stats.ShotsDropped++
			s.logger.Debug("shot dropped", "active", s.combat.Pool().Active())
		case combat.ReloadStarted:
			s.stats.Reloads++
			s.logger.Debug("reload", "weapon", s.loadout.Current().Name, "auto", true)
		}
	}
	s.loadout.Tick(dt, in.FireHeld)
}

// Muzzle returns where the player's weapon fires from and its direction for
// the given pitch. The weapon hand decides which side of the body it is on.
func (s *Session) Muzzle(pitch float64) combat.Pose {
	p := s.player
	pitch = core.ClampF(pitch, -maxAimPitch, maxAimPitch)
	fwd := p.Forward()
	side := muzzleSide
	if s.cfg.Player.WeaponHand == "left" {
		side = -side
	}
	pos := p.Eye().
		Add(core.V3(0, -muzzleDrop, 0)).
		Add(core.RightFromYaw(p.Yaw).Scale(side)).
		Add(fwd.Scale(muzzleForward))
	dir := core.V3(fwd.X*math.Cos(pitch), math.Sin(pitch), fwd.Z*math.Cos(pitch))
	return combat.Pose{Position: pos, Direction: dir}
}

func (s *Session) gatherTargets() []combat.Target {
	s.targets = s.targets[:0]
	s.targets = append(s.targets, combat.ActorTarget{Actor: s.player, Side: combat.TeamPlayer})
	for _, a := range s.ai.Agents() {
		s.targets = append(s.targets, combat.ActorTarget{Actor: a.Actor, Side: combat.TeamEnemy})
	}
	return s.targets
}

func (s *Session) tally(events []combat.Event) {
	for _, ev := range events {
		if ev.Kind != combat.EventHit {
			continue
		}
		if ev.Owner.Team == combat.TeamPlayer {
			s.stats.Hits++
			s.stats.DamageDealt += ev.Damage
			if ev.Killed {
				s.stats.Kills++
				s.logger.Debug("kill", "id", ev.TargetID, "weapon", ev.Weapon)
			}
		} else if ev.TargetID == PlayerID {
			s.stats.DamageTaken += ev.Damage
		}
	}
}

// Config returns the session configuration.
func (s *Session) Config() config.Config { return s.cfg }

// World returns the static geometry.
func (s *Session) World() *collision.World { return s.world }

// Player returns the player actor.
func (s *Session) Player() *character.Actor { return s.player }

// Loadout returns the player's weapons.
func (s *Session) Loadout() *combat.Loadout { return s.loadout }

// AI returns the enemy controller.
func (s *Session) AI() *ai.Controller { return s.ai }

// Combat returns the projectile system.
func (s *Session) Combat() *combat.System { return s.combat }

// Time returns simulated seconds since the last reset.
func (s *Session) Time() float64 { return s.time }

// Stats returns the session counters.
func (s *Session) Stats() Stats { return s.stats }

// Spawn returns the player's spawn point.
func (s *Session) Spawn() core.Vec3 { return s.spawn }
