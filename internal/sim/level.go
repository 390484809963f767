package sim

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arena/internal/config"
	"github.com/vovakirdan/arena/internal/level"
)

// NewForLevel builds the level's world with seed and starts a session on it.
// The player spawns on the walkable surface under the level's spawn point and
// the level's bounds, when set, replace the configured enemy leash.
func NewForLevel(cfg config.Config, lvl level.Level, seed int64, logger *log.Logger) (*Session, error) {
	if logger == nil {
		logger = log.Default()
	}
	w, err := level.Build(lvl, seed, logger)
	if err != nil {
		return nil, err
	}
	if lvl.Bounds > 0 {
		cfg.Enemy.BoundsHalfExtent = lvl.Bounds
	}
	spawn := level.SafeSpawn(w, lvl.Spawn.Vec())
	logger.Debug("level built", "level", lvl.Name, "colliders", w.Len(), "skipped", len(w.Skipped()), "spawn", spawn)
	return New(cfg, w, WithLogger(logger), WithSeed(seed), WithSpawn(spawn, lvl.SpawnYaw)), nil
}
