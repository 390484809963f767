package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/arena/internal/config"
	"github.com/vovakirdan/arena/internal/level"
	"github.com/vovakirdan/arena/internal/platform/tui"
	"github.com/vovakirdan/arena/internal/sim"
	"github.com/vovakirdan/arena/internal/storage"
)

var flagViewFPS int

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play in the terminal",
	Long: `Play a session with a top-down view centered on you. Without a level
argument a menu lets you pick the level and difficulty; after a game you
return to it.

Controls:
  W/S, Up/Down   - Move forward/back
  A/D            - Strafe
  Left/Right     - Turn (snap turn when turn_mode is snap)
  I/K            - Aim up/down
  Space          - Jump
  F/Enter        - Fire
  Tab/E          - Next weapon
  R              - Reload
  ?              - Toggle help
  Esc/B          - Back to menu
  Q/Ctrl+C       - Quit

Examples:
  arena play
  arena play fortress --difficulty hard
  arena play ./my-level.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagViewFPS, "view-fps", 30, "Viewer frame rate")
}

func runPlay(_ *cobra.Command, args []string) error {
	// The viewer owns the terminal, so logs go to a file.
	logger, closeLog, err := fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, preset, err := loadConfig(logger)
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if len(args) == 1 {
		lvl, err := resolveLevel(args[0])
		if err != nil {
			return err
		}
		return playLevel(cfg, lvl, store, logger, width, height)
	}

	// Menu loop
	for {
		res, err := tui.RunMenu(store, preset, width, height)
		if err != nil {
			return err
		}
		if res.Quit {
			return nil
		}
		if res.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, width, height)
			if sbErr != nil {
				return sbErr
			}
			if !goBack {
				return nil
			}
			continue
		}

		preset = res.Preset
		lvl, err := level.Get(res.Level)
		if err != nil {
			return err
		}
		gameCfg := cfg
		config.ApplyPreset(&gameCfg, preset)
		if err := playLevel(gameCfg, lvl, store, logger, width, height); err != nil {
			return err
		}
		flagSeed = 0 // a fixed seed applies to the first game only
	}
}

func playLevel(cfg config.Config, lvl level.Level, store *storage.Store, logger *log.Logger, width, height int) error {
	seed := resolveSeed()
	s, err := sim.NewForLevel(cfg, lvl, seed, logger.With("level", lvl.Name))
	if err != nil {
		return err
	}
	return tui.Run(s, store, logger, tui.GameOptions{
		Level:     lvl.Name,
		Mode:      "play",
		Player:    os.Getenv("USER"),
		Seed:      seed,
		RenderFPS: flagViewFPS,
		Width:     width,
		Height:    height,
	})
}

// fileLogger logs to ~/.arena/arena.log.
func fileLogger() (*log.Logger, func(), error) {
	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, err
	}
	dir := filepath.Join(home, ".arena")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, "arena.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "arena", Level: lvl})
	return logger, func() { f.Close() }, nil
}
