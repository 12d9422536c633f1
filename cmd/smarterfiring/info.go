package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/smarterfiring/internal/game"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show rules and tips",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(game.Title)
		for _, section := range game.Info {
			fmt.Println()
			fmt.Println(section.Title)
			for _, line := range section.Lines {
				fmt.Printf("  %s\n", line)
			}
		}
	},
}
