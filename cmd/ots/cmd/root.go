package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSchem/internal/config"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/editor"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/obstacle"
)

var (
	// Global flags
	verbose    bool
	configPath string
	policy     obstacle.Policy
	batch      editor.BatchMode
)

var rootCmd = &cobra.Command{
	Use:   "ots",
	Short: "OpenTraceSchem - schematic editor with automatic wire routing",
	Long: `OpenTraceSchem (ots) places two-terminal components on a grid and routes
the wires between their terminals around components and other wires.

Examples:
  ots ui                                  # Launch the editor window
  ots route --from 20,0 --to 80,0         # Route one wire on an empty grid
  ots run session.ots                     # Run a session script and print wires
  ots show session.ots                    # Show a session in the terminal
  ots nets session.ots --json             # Print connectivity
  ots import board.kicad_sch              # Read obstacles from a KiCad schematic`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: user config directory)")
	rootCmd.PersistentFlags().Var(&policy, "policy", "obstacle policy (both, components, wires, none)")
	rootCmd.PersistentFlags().Var(&batch, "batch", "reroute-all ordering (frozen, sequential)")
}

// newLogger returns the command logger: text on stderr, Debug with --verbose.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadSettings reads the config file and applies command-line overrides.
func loadSettings(cmd *cobra.Command) (*config.AppConfig, *editor.Config, error) {
	var (
		app *config.AppConfig
		err error
	)
	if configPath != "" {
		app, err = config.LoadConfigFrom(configPath)
	} else {
		app, err = config.LoadConfig()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("error loading config: %w", err)
	}

	cfg, err := app.EditorConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("policy") {
		cfg.Policy = policy
	}
	if flags.Changed("batch") {
		cfg.Batch = batch
	}
	return app, cfg, nil
}
