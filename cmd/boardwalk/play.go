package main

import (
	"github.com/spf13/cobra"

	"github.com/samdwyer/boardwalk/internal/game"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a session in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		g, err := game.New(cfg)
		if err != nil {
			return err
		}
		defer g.Close()
		return g.Run(cmd.Context())
	},
}

func init() {
	playCmd.Flags().String("board", "", "Board ID to play, or 'random' for a generated one")
	playCmd.Flags().Int64("seed", 0, "Seed for board generation and rival play (0 = time-derived)")
	rootCmd.AddCommand(playCmd)
}
