package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arena/internal/level"
)

var flagLevelsDump bool

var levelsCmd = &cobra.Command{
	Use:   "levels [name]",
	Short: "List all built-in levels",
	Long: `Shows the built-in levels. With a name and --yaml, prints that level as
YAML, a starting point for a custom level file.

Examples:
  arena levels
  arena levels fortress --yaml > my-level.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagLevelsDump, "yaml", false, "Print the named level as YAML")
}

func runLevels(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		lvl, err := level.Get(args[0])
		if err != nil {
			return err
		}
		if !flagLevelsDump {
			fmt.Fprintf(out, "%s (%s): %d colliders, spawn %v\n", lvl.Name, lvl.Title, len(lvl.Colliders), lvl.Spawn)
			return nil
		}
		data, err := level.Marshal(lvl)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	levels := level.List()
	if len(levels) == 0 {
		fmt.Fprintln(out, "No levels available.")
		return nil
	}

	fmt.Fprintln(out, "Available levels:")
	fmt.Fprintln(out)

	maxNameLen := 4 // "Name" header
	for _, l := range levels {
		maxNameLen = max(maxNameLen, len(l.Name))
	}

	fmt.Fprintf(out, "  %-*s  %s\n", maxNameLen, "Name", "Title")
	fmt.Fprintf(out, "  %-*s  %s\n", maxNameLen, "----", "-----")
	for _, l := range levels {
		fmt.Fprintf(out, "  %-*s  %s\n", maxNameLen, l.Name, l.Title)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'arena play <name>' to play a level.")
	return nil
}
