package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/smarterfiring/internal/core"
	"github.com/vovakirdan/smarterfiring/internal/game"
	"github.com/vovakirdan/smarterfiring/internal/journal"
	"github.com/vovakirdan/smarterfiring/internal/storage"
)

var flagSteps bool

var replayCmd = &cobra.Command{
	Use:   "replay <run-id>",
	Short: "Replay a recorded run",
	Long: `Re-apply the journal of a run to a fresh session and print the
final board. A unique prefix of the run ID is enough.

Examples:
  smarterfiring replay 3f2a
  smarterfiring replay 3f2a --steps`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagSteps, "steps", false, "Print the score after every fire and sweep")
}

func runReplay(_ *cobra.Command, args []string) {
	store, err := storage.Open(cfg.Journal.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	run, err := store.FindRun(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	events, err := store.Events(run.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving events: %v\n", err)
		os.Exit(1)
	}

	var step journal.StepFunc
	if flagSteps {
		step = func(rec storage.EventRecord, state game.Snapshot) {
			switch rec.Kind {
			case journal.KindFire, journal.KindSweep, journal.KindEnd:
				fmt.Printf("  #%-4d %-5s score %-4d dragons %d\n", rec.Seq, rec.Kind, state.Score, len(state.Enemies))
			}
		}
	}

	final, err := journal.Replay(journal.RunParams(*run), events, step)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error replaying run: %v\n", err)
		os.Exit(1)
	}

	w, h := game.BoardSize(final.GridSize)
	screen := core.NewScreen(w, h)
	final.RenderBoard(screen, 0, 0)

	fmt.Printf("Run %s (%s)\n", run.ID, run.Source)
	fmt.Println(screen.String())
	fmt.Println(final.HUD())
	fmt.Printf("Final score: %d\n", final.Score)
}
