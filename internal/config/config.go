// Package config provides YAML-based configuration loading, validation and
// difficulty management for arena sessions.
package config

import (
	"github.com/vovakirdan/arena/internal/ai"
	"github.com/vovakirdan/arena/internal/combat"
)

// Config is everything a simulation session needs besides the level geometry.
// It is a value scoped to one session; nothing here is process-wide.
type Config struct {
	Sim        SimConfig          `yaml:"sim"`
	Player     PlayerConfig       `yaml:"player"`
	Enemy      EnemyConfig        `yaml:"enemy"`
	Weapons    []combat.WeaponDef `yaml:"weapons"`
	Combat     CombatConfig       `yaml:"combat"`
	Rules      RulesConfig        `yaml:"rules"`
	Difficulty DifficultyConfig   `yaml:"difficulty"`
}

// MaxTickRate bounds sim.tick_rate.
const MaxTickRate = 1000

// SimConfig controls fixed-timestep stepping.
type SimConfig struct {
	TickRate   int `yaml:"tick_rate"`    // steps per second
	MaxSteps   int `yaml:"max_steps"`    // per frame before pending time is discarded
	MaxFrameMS int `yaml:"max_frame_ms"` // frame time clamp in milliseconds
}

// PlayerConfig tunes the player's body, locomotion and input handling.
type PlayerConfig struct {
	MoveSpeed    float64 `yaml:"move_speed"`
	TurnRate     float64 `yaml:"turn_rate"`
	TurnMode     string  `yaml:"turn_mode"` // "smooth" or "snap"
	SnapAngleDeg float64 `yaml:"snap_angle_deg"`
	SnapCooldown float64 `yaml:"snap_cooldown"`
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	CoyoteTime   float64 `yaml:"coyote_time"`
	StepHeight   float64 `yaml:"step_height"`
	GroundProbe  float64 `yaml:"ground_probe"`
	FootOffset   float64 `yaml:"foot_offset"`
	Radius       float64 `yaml:"radius"`
	Height       float64 `yaml:"height"`
	EyeHeight    float64 `yaml:"eye_height"`
	Health       float64 `yaml:"health"`
	WeaponHand   string  `yaml:"weapon_hand"` // "left" or "right"
}

// EnemyConfig tunes enemy bodies, behavior and weapon. Shot cadence comes
// from the inline fire_rate; the weapon only shapes the projectile.
type EnemyConfig struct {
	MoveSpeed    float64          `yaml:"move_speed"`
	GravityScale float64          `yaml:"gravity_scale"`
	Radius       float64          `yaml:"radius"`
	Height       float64          `yaml:"height"`
	EyeHeight    float64          `yaml:"eye_height"`
	Weapon       combat.WeaponDef `yaml:"weapon"`
	ai.Tuning    `yaml:",inline"`
}

// CombatConfig tunes the projectile system.
type CombatConfig struct {
	MaxActive     int     `yaml:"max_active"`
	BoundsPadding float64 `yaml:"bounds_padding"`
}

// RulesConfig holds session policies.
type RulesConfig struct {
	KillY            float64 `yaml:"kill_y"`              // the player respawns below this height
	OutOfBoundsGrace float64 `yaml:"out_of_bounds_grace"` // seconds the player may fall with no ground beneath
}

// DifficultyConfig defines how enemy waves escalate.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string  `yaml:"type"`   // "wave", "time", or "none"
	MaxAt float64 `yaml:"max_at"` // wave number or seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes at level 1.0.
type ScalingConfig struct {
	FireRateMultiplier float64 `yaml:"fire_rate_multiplier"` // added fraction of enemy fire rate
	DetectRangeBonus   float64 `yaml:"detect_range_bonus"`   // added detect range in units
	HealthMultiplier   float64 `yaml:"health_multiplier"`    // added fraction of enemy health
	WaveSizeBonus      int     `yaml:"wave_size_bonus"`      // extra enemies per wave
}
