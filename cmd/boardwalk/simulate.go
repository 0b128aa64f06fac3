package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samdwyer/boardwalk/internal/game"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless session and print its event trace",
	Long: `Simulate plays a full session without a terminal UI. With a fixed
seed the trace is reproducible, which makes it useful for comparing
board layouts and for debugging turn flow.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		turns, _ := cmd.Flags().GetInt("turns")
		choices, _ := cmd.Flags().GetIntSlice("choices")

		res, err := game.Simulate(cmd.Context(), cfg, turns, choices)
		if err != nil {
			return err
		}

		fmt.Printf("board %s, seed %d, %d turns\n\n", res.BoardID, res.Seed, res.Turns)
		for _, line := range res.Trace {
			fmt.Println(line)
		}
		fmt.Printf("\nplayer finished at waypoint %d, rival at %d\n", res.PlayerEnd, res.RivalEnd)
		return nil
	},
}

func init() {
	simulateCmd.Flags().Int("turns", 10, "Number of player turns to play")
	simulateCmd.Flags().IntSlice("choices", nil, "Scripted fork choices for the player, in order")
	simulateCmd.Flags().String("board", "", "Board ID to play, or 'random' for a generated one")
	simulateCmd.Flags().Int64("seed", 0, "Seed for the session (0 = time-derived)")
	rootCmd.AddCommand(simulateCmd)
}
