package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/arena/internal/character"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadCustomPathOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.yaml")
	data := []byte(`
player:
  move_speed: 5
  turn_mode: snap
enemy:
  detect_range: 20
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, src, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, SourceCustom, src)
	require.Equal(t, 5.0, cfg.Player.MoveSpeed)
	require.Equal(t, 20.0, cfg.Enemy.DetectRange)
	require.Equal(t, 7.0, cfg.Enemy.FireRange, "unset keys keep defaults")
	require.Len(t, cfg.Weapons, 3)
	require.Equal(t, character.TurnSnap, cfg.PlayerParams().TurnMode)
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("sim: [unclosed"), 0o600))
	_, _, err = Load(bad)
	require.ErrorContains(t, err, "parse")
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	work := t.TempDir()
	t.Chdir(work)

	cfg, src, err := Load("")
	require.NoError(t, err)
	require.Equal(t, SourceEmbedded, src)
	require.Equal(t, Default(), cfg)

	require.NoError(t, os.MkdirAll(filepath.Join(work, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(work, "configs", "arena.yaml"), []byte("sim:\n  tick_rate: 120\n"), 0o600))
	cfg, src, err = Load("")
	require.NoError(t, err)
	require.Equal(t, SourceLocal, src)
	require.Equal(t, 120, cfg.Sim.TickRate)

	userDir := filepath.Join(home, ".arena", "configs")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "arena.yaml"), []byte("sim:\n  tick_rate: 90\n"), 0o600))
	cfg, src, err = Load("")
	require.NoError(t, err)
	require.Equal(t, SourceUser, src)
	require.Equal(t, 90, cfg.Sim.TickRate)
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Sim.TickRate = 0
	cfg.Player.TurnMode = "teleport"
	cfg.Player.WeaponHand = "tail"
	cfg.Enemy.FireRange = 30
	cfg.Weapons = nil

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"tick_rate", "turn mode", "weapon_hand", "fire_range", "at least one weapon"} {
		require.ErrorContains(t, err, want)
	}
}

func TestValidateBoundsTickRate(t *testing.T) {
	cfg := Default()
	cfg.Sim.TickRate = MaxTickRate
	require.NoError(t, cfg.Validate())

	cfg.Sim.TickRate = 2_000_000_000
	require.ErrorContains(t, cfg.Validate(), "tick_rate")
}

func TestDerivedParams(t *testing.T) {
	cfg := Default()

	require.Equal(t, character.PlayerParams(), cfg.PlayerParams())
	require.Equal(t, character.PlayerBody(), cfg.PlayerBody())
	require.Equal(t, character.EnemyBody(), cfg.EnemyBody())

	enemy := cfg.EnemyParams()
	require.Equal(t, 2.6, enemy.MoveSpeed)
	require.InDelta(t, -9.81*0.45, enemy.Gravity, 1e-12)

	sc := cfg.SchedulerConfig()
	require.Equal(t, 60, sc.TickRate)
	require.Equal(t, 5, sc.MaxSteps)
	require.Equal(t, int64(250), sc.MaxFrameTime.Milliseconds())
}
