package config

import (
	_ "embed"

	"github.com/vovakirdan/arena/internal/ai"
	"github.com/vovakirdan/arena/internal/combat"
)

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

// Default returns the hard-coded configuration. It matches defaults/arena.yaml.
func Default() Config {
	tuning := ai.DefaultTuning()
	tuning.RespawnDelay = 4

	return Config{
		Sim: SimConfig{
			TickRate:   60,
			MaxSteps:   5,
			MaxFrameMS: 250,
		},
		Player: PlayerConfig{
			MoveSpeed:    3.5,
			TurnRate:     1.8,
			TurnMode:     "smooth",
			SnapAngleDeg: 30,
			SnapCooldown: 0.18,
			Gravity:      -9.81,
			JumpImpulse:  4.5,
			CoyoteTime:   0.12,
			StepHeight:   0.35,
			GroundProbe:  0.2,
			FootOffset:   0,
			Radius:       0.35,
			Height:       1.7,
			EyeHeight:    1.6,
			Health:       100,
			WeaponHand:   "right",
		},
		Enemy: EnemyConfig{
			MoveSpeed:    2.6,
			GravityScale: 0.45,
			Radius:       0.45,
			Height:       1.5,
			EyeHeight:    1.3,
			Weapon:       combat.EnemyWeapon(),
			Tuning:       tuning,
		},
		Weapons: combat.DefaultWeapons(),
		Combat: CombatConfig{
			MaxActive:     combat.DefaultMaxActive,
			BoundsPadding: 20,
		},
		Rules: RulesConfig{
			KillY:            -20,
			OutOfBoundsGrace: 1.5,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0,
			Progression: ProgressionConfig{
				Type:  "wave",
				MaxAt: 8,
			},
			Scaling: ScalingConfig{
				FireRateMultiplier: 0.8,
				DetectRangeBonus:   4,
				HealthMultiplier:   0.5,
				WaveSizeBonus:      3,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultArenaYAML
}
