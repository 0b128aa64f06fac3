package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/samdwyer/boardwalk/internal/game"
)

var rootCmd = &cobra.Command{
	Use:   "boardwalk",
	Short: "Boardwalk is a turn-based board traversal game for the terminal",
	Long: `Boardwalk moves tokens across a curved waypoint graph, one dice roll
at a time. Forks suspend the move for a path choice, and special tiles
fire effects when a token lands on them.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", game.DefaultConfigFile, "Path to the session config file")
}

// loadConfig resolves the config file plus any command-line overrides.
func loadConfig(cmd *cobra.Command) (game.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := game.LoadConfig(path)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("board") {
		cfg.Board, _ = cmd.Flags().GetString("board")
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed, _ = cmd.Flags().GetInt64("seed")
	}
	return cfg, nil
}
