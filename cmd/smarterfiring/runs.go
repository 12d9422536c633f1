package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/smarterfiring/internal/platform/tui"
	"github.com/vovakirdan/smarterfiring/internal/storage"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse recorded runs",
	Long: `List the most recent runs in the journal.

On a terminal this opens an interactive table: Enter replays the
selected run, X deletes it. Otherwise a plain list is printed.

Examples:
  smarterfiring runs
  smarterfiring runs --limit 5 | cat`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "How many runs to list when not on a terminal")
}

func runRuns(_ *cobra.Command, _ []string) {
	store, err := storage.Open(cfg.Journal.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(fd); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunHistory(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running history: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runs, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	// Print header
	fmt.Printf("  %-8s  %-14s  %-16s  %-6s  %s\n", "Run", "Source", "Started", "Events", "Status")
	fmt.Printf("  %-8s  %-14s  %-16s  %-6s  %s\n", "---", "------", "-------", "------", "------")

	for _, r := range runs {
		fmt.Printf("  %-8s  %-14s  %-16s  %-6d  %s\n",
			tui.ShortID(r.ID), r.Source, r.StartedAt.Format("2006-01-02 15:04"), r.EventCount, tui.RunStatus(r))
	}
}
