package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arena/internal/config"
	"github.com/vovakirdan/arena/internal/level"
)

// newLogger builds the stderr logger shared by every command.
func newLogger(prefix string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	}), nil
}

// loadConfig loads the config, applies the difficulty preset and the tick
// rate override, then validates the result.
func loadConfig(logger *log.Logger) (config.Config, config.DifficultyPreset, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.Config{}, "", err
	}

	cfg, src, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, "", err
	}
	logger.Debug("config loaded", "source", src)

	if flagDifficulty != "" {
		config.ApplyPreset(&cfg, preset)
	}
	if flagFPS > 0 {
		cfg.Sim.TickRate = flagFPS
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, "", err
	}
	return cfg, preset, nil
}

// resolveSeed returns --seed, or a time-based seed when it is 0.
func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// resolveLevel returns the level named by arg, or by --level when arg is empty.
func resolveLevel(arg string) (level.Level, error) {
	name := arg
	if name == "" {
		name = flagLevel
	}
	lvl, err := level.Resolve(name)
	if err != nil {
		return level.Level{}, fmt.Errorf("%w (run 'arena levels' to see built-in levels)", err)
	}
	return lvl, nil
}
