package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/arena/internal/character"
	"github.com/vovakirdan/arena/internal/combat"
	"github.com/vovakirdan/arena/internal/scheduler"
)

// Source names where a configuration was loaded from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
	SourceBuiltin  Source = "builtin"
)

// Load loads the arena configuration.
// Search order: customPath -> ~/.arena/configs/arena.yaml -> ./configs/arena.yaml -> embedded default.
// Keys missing from a file keep their default values. A custom path that cannot
// be read or parsed is an error; the other locations are skipped silently.
func Load(customPath string) (Config, Source, error) {
	if customPath != "" {
		cfg, err := LoadFile(customPath)
		if err != nil {
			return cfg, SourceCustom, err
		}
		return cfg, SourceCustom, nil
	}

	if userCfgPath := userConfigPath("arena.yaml"); userCfgPath != "" {
		if cfg, err := LoadFile(userCfgPath); err == nil {
			return cfg, SourceUser, nil
		}
	}

	if cfg, err := LoadFile(filepath.Join("configs", "arena.yaml")); err == nil {
		return cfg, SourceLocal, nil
	}

	cfg, err := Parse(defaultArenaYAML)
	if err != nil {
		return Default(), SourceBuiltin, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

// LoadFile reads and parses a single configuration file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arena", "configs", filename)
}

// Validate reports every problem found, joined into one error.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Sim.TickRate > 0 && c.Sim.TickRate <= MaxTickRate, "sim.tick_rate must be in (0, %d], got %d", MaxTickRate, c.Sim.TickRate)
	check(c.Sim.MaxSteps > 0, "sim.max_steps must be positive, got %d", c.Sim.MaxSteps)
	check(c.Sim.MaxFrameMS > 0, "sim.max_frame_ms must be positive, got %d", c.Sim.MaxFrameMS)

	p := c.Player
	check(p.MoveSpeed >= 0, "player.move_speed must not be negative")
	check(p.Gravity < 0, "player.gravity must be negative, got %g", p.Gravity)
	check(p.Radius > 0 && p.Height > 0, "player radius and height must be positive")
	check(p.EyeHeight > 0 && p.EyeHeight <= p.Height, "player.eye_height must be within the body height")
	check(p.Health > 0, "player.health must be positive")
	check(p.GroundProbe > 0, "player.ground_probe must be positive")
	check(p.StepHeight >= 0, "player.step_height must not be negative")
	if _, err := character.ParseTurnMode(p.TurnMode); err != nil {
		errs = append(errs, err)
	}
	check(p.WeaponHand == "left" || p.WeaponHand == "right", "player.weapon_hand must be left or right, got %q", p.WeaponHand)

	e := c.Enemy
	check(e.Radius > 0 && e.Height > 0, "enemy radius and height must be positive")
	check(e.FireRange <= e.DetectRange, "enemy.fire_range (%g) must not exceed detect_range (%g)", e.FireRange, e.DetectRange)
	check(e.DisengageFactor >= 1 && e.OuterDisengageFactor >= 1, "enemy disengage factors must be at least 1")
	check(e.WaveSize >= 0, "enemy.wave_size must not be negative")
	check(e.Weapon.Speed > 0, "enemy.weapon.speed must be positive")

	check(len(c.Weapons) > 0, "at least one weapon is required")
	for i, w := range c.Weapons {
		check(w.Speed > 0, "weapons[%d] (%s): speed must be positive", i, w.Name)
		check(w.FireRate > 0, "weapons[%d] (%s): fire_rate must be positive", i, w.Name)
		check(w.Magazine >= 0, "weapons[%d] (%s): magazine must not be negative", i, w.Name)
		check(w.MaxLifetime > 0 && w.MaxRange > 0, "weapons[%d] (%s): max_lifetime and max_range must be positive", i, w.Name)
	}

	check(c.Combat.MaxActive > 0, "combat.max_active must be positive")
	check(c.Rules.OutOfBoundsGrace >= 0, "rules.out_of_bounds_grace must not be negative")

	switch c.Difficulty.Progression.Type {
	case "wave", "time", "none", "":
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type %q is not wave, time or none", c.Difficulty.Progression.Type))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// SchedulerConfig returns the stepping parameters.
func (c Config) SchedulerConfig() scheduler.Config {
	return scheduler.Config{
		TickRate:     c.Sim.TickRate,
		MaxSteps:     c.Sim.MaxSteps,
		MaxFrameTime: time.Duration(c.Sim.MaxFrameMS) * time.Millisecond,
	}
}

// PlayerParams returns the player's controller tuning.
func (c Config) PlayerParams() character.Params {
	p := c.Player
	mode, _ := character.ParseTurnMode(p.TurnMode)
	return character.Params{
		MoveSpeed:    p.MoveSpeed,
		TurnRate:     p.TurnRate,
		TurnMode:     mode,
		SnapCooldown: p.SnapCooldown,
		Gravity:      p.Gravity,
		JumpImpulse:  p.JumpImpulse,
		CoyoteTime:   p.CoyoteTime,
		StepHeight:   p.StepHeight,
		GroundProbe:  p.GroundProbe,
		FootOffset:   p.FootOffset,
		Skin:         character.PlayerParams().Skin,
	}
}

// PlayerBody returns the player's extents.
func (c Config) PlayerBody() character.Body {
	return character.Body{
		Radius:    c.Player.Radius,
		Height:    c.Player.Height,
		EyeHeight: c.Player.EyeHeight,
		MaxHealth: c.Player.Health,
	}
}

// EnemyParams returns the enemy controller tuning. Enemies share the player's
// step and probe settings but move and fall at their own rates.
func (c Config) EnemyParams() character.Params {
	p := c.PlayerParams()
	p.MoveSpeed = c.Enemy.MoveSpeed
	p.Gravity = c.Player.Gravity * c.Enemy.GravityScale
	p.TurnMode = character.TurnSmooth
	return p
}

// EnemyBody returns the enemy extents.
func (c Config) EnemyBody() character.Body {
	return character.Body{
		Radius:    c.Enemy.Radius,
		Height:    c.Enemy.Height,
		EyeHeight: c.Enemy.EyeHeight,
		MaxHealth: c.Enemy.Health,
	}
}

// CombatTuning returns the projectile system tuning.
func (c Config) CombatTuning() combat.Config {
	return combat.Config{MaxActive: c.Combat.MaxActive, BoundsPadding: c.Combat.BoundsPadding}
}
