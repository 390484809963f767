package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arena/internal/sim"
	"github.com/vovakirdan/arena/internal/storage"
)

var (
	flagSeconds   float64
	flagRenderFPS float64
	flagJitter    float64
	flagNoSave    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a headless session",
	Long: `Run a session without a terminal UI. Frames arrive at --render-fps with
up to --jitter variation and the scheduler turns them into fixed steps.
An autopilot plays: it turns toward the nearest visible enemy, keeps its
distance, and fires when lined up.

The summary is printed and the run saved to the database.

Examples:
  arena run
  arena run --seconds 120 --level steps --seed 7
  arena run --render-fps 20 --jitter 0.5 --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().Float64Var(&flagSeconds, "seconds", 30, "Simulated seconds to run")
	runCmd.Flags().Float64Var(&flagRenderFPS, "render-fps", 30, "Synthetic frame rate")
	runCmd.Flags().Float64Var(&flagJitter, "jitter", 0, "Frame time jitter as a fraction of the frame (0-1)")
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run")
}

func runRun(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger("arena")
	if err != nil {
		return err
	}
	cfg, _, err := loadConfig(logger)
	if err != nil {
		return err
	}
	lvl, err := resolveLevel("")
	if err != nil {
		return err
	}
	if flagJitter < 0 || flagJitter >= 1 {
		return fmt.Errorf("--jitter must be in [0, 1), got %g", flagJitter)
	}

	seed := resolveSeed()
	s, err := sim.NewForLevel(cfg, lvl, seed, logger.With("level", lvl.Name))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, runErr := sim.Run(ctx, s, sim.NewAutopilot(), sim.RunOptions{
		Duration:  time.Duration(flagSeconds * float64(time.Second)),
		RenderFPS: flagRenderFPS,
		Jitter:    flagJitter,
		Seed:      seed,
	})
	if runErr != nil && ctx.Err() == nil {
		return runErr
	}

	printSummary(cmd, lvl.Name, seed, res)

	if flagNoSave || res.Stats.Ticks == 0 {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		return nil
	}
	defer store.Close()

	id, err := store.SaveRun(sim.Record(s, lvl.Name, "headless", "autopilot", seed))
	if err != nil {
		logger.Warn("could not save run", "error", err)
		return nil
	}
	logger.Info("run saved", "id", id)
	return nil
}

func printSummary(cmd *cobra.Command, levelName string, seed int64, res sim.RunResult) {
	out := cmd.OutOrStdout()
	st, sc := res.Stats, res.Scheduler
	fmt.Fprintf(out, "Level %s, seed %d\n\n", levelName, seed)
	fmt.Fprintf(out, "  Simulated   %v in %d frames, %d steps (%d dropped)\n", sc.SimTime.Round(time.Millisecond), sc.Frames, sc.Steps, sc.DroppedSteps)
	fmt.Fprintf(out, "  Waves       %d\n", st.Waves)
	fmt.Fprintf(out, "  Kills       %d\n", st.Kills)
	fmt.Fprintf(out, "  Shots       %d fired, %d hits (%.0f%%), %d refused by the pool\n", st.ShotsFired, st.Hits, st.Accuracy()*100, st.ShotsDropped)
	fmt.Fprintf(out, "  Damage      %.0f dealt, %.0f taken\n", st.DamageDealt, st.DamageTaken)
	fmt.Fprintf(out, "  Deaths      %d (%d falls)\n", st.Deaths, st.Falls)
	fmt.Fprintf(out, "  Score       %d\n", st.Score())
}
