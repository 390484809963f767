// arena is a real-time arena combat simulation: a fixed-timestep core with a
// character controller, projectile combat and enemy AI, played in the
// terminal or run headless.
//
// Usage:
//
//	arena run                - Headless simulation driven by the autopilot
//	arena play [level]       - Play in the terminal (menu if no level given)
//	arena serve              - Start SSH server for remote play
//	arena levels             - List built-in levels
//	arena runs               - Show the best recorded runs
//
// Global flags:
//
//	--fps <rate>          - Simulation tick rate (default: from config, 60)
//	--seed <value>        - RNG seed for reproducible sessions
//	--db <path>           - Database path (default: ~/.arena/runs.db)
//	--config <path>       - Custom config YAML
//	--level <name|path>   - Level name or YAML file
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLevel      string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arena",
	Short: "Arena - a real-time 3D combat simulation in your terminal",
	Long: `Arena simulates a first-person combat arena: a player and waves of
enemies moving, jumping and shooting among static boxes, stepped at a fixed
rate no matter how fast frames arrive.

Available commands:
  run      - Run a headless session with the autopilot
  play     - Play in the terminal with a top-down view
  serve    - Start SSH server for remote play
  levels   - Show all built-in levels
  runs     - View the best recorded runs

Examples:
  arena run --seconds 60 --render-fps 45 --jitter 0.3
  arena play fortress --difficulty hard
  arena serve --ssh :2222
  arena runs --level fortress`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 0, "Simulation tick rate (0 = from config)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arena/runs.db", "Path to runs database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagLevel, "level", "fortress", "Level name or path to a level YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(runsCmd)
}
