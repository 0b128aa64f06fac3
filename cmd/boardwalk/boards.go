package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samdwyer/boardwalk/internal/boarddata"
)

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List authored boards and check their tile references",
	RunE: func(cmd *cobra.Command, args []string) error {
		boards, err := boarddata.LoadBoardRegistry()
		if err != nil {
			return err
		}
		tiles, err := boarddata.LoadTileRegistry()
		if err != nil {
			return err
		}

		for _, def := range boards.All() {
			status := "ok"
			if err := def.Validate(tiles); err != nil {
				status = err.Error()
			}
			fmt.Printf("%-12s %3d waypoints  %s\n", def.ID, len(def.Nodes), status)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(boardsCmd)
}
