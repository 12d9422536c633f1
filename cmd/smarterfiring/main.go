// smarterfiring is a terminal arcade game: breathe fire at the dragons
// that come at you across a small grid before the clock runs out.
//
// Usage:
//
//	smarterfiring play          - Play in the current terminal
//	smarterfiring serve         - Start SSH server for remote play
//	smarterfiring runs          - Browse recorded runs
//	smarterfiring replay <id>   - Replay a recorded run
//	smarterfiring autoplay      - Let the bot play one session
//	smarterfiring info          - Show the rules
//
// Global flags:
//
//	--config <path>     - Use a custom config YAML
//	--seed <value>      - Set RNG seed for reproducible dragon spawns
//	--db <path>         - Set journal database path
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/smarterfiring/internal/config"
	"github.com/vovakirdan/smarterfiring/internal/game"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	// Resolved in PersistentPreRunE
	cfg    config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "smarterfiring",
	Short: "Smarterfiring - Burn the dragons before the clock runs out",
	Long: `Smarterfiring is a fast-paced terminal game. You stand on a 5x5 grid,
every shot summons a dragon on the edge, and only dragons coming
straight at you from the direction you face can be hit.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  runs      - Browse recorded runs
  replay    - Replay a recorded run
  autoplay  - Watch the bot play a session
  info      - Show rules and tips

Examples:
  smarterfiring play
  smarterfiring play --seed 42
  smarterfiring serve --ssh :2222
  smarterfiring replay 3f2a`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed for dragon spawns (0 = use config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to journal database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(autoplayCmd)
	rootCmd.AddCommand(infoCmd)
}

// setup loads the configuration, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		loaded.Game.Seed = flagSeed
	}
	if flagDBPath != "" {
		loaded.Journal.Path = flagDBPath
	}
	if flagLogLevel != "" {
		loaded.Log.Level = flagLogLevel
	}
	cfg = loaded

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "smarterfiring",
		Level:           level,
	})
	return nil
}

// sessionOptions returns the session options implied by the seed setting.
func sessionOptions() []game.Option {
	if cfg.Game.Seed == 0 {
		return nil
	}
	return []game.Option{game.WithSpawner(game.NewRandomSpawner(cfg.Game.Seed))}
}
