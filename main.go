// Command gridlearn plans and learns routes for collecting items on
// generated grid worlds.
//
// Usage:
//
//	gridlearn plan  [--config file] [--seed n] [--planner name] [--png file]
//	gridlearn solve [--config file] [--seed n] [--png file] [--progress]
//	gridlearn bench [--config file] [--seed n] [--html file]
//	gridlearn config
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/samuelfneumann/gridlearn/experiment"
	"github.com/samuelfneumann/gridlearn/utils/logger"
)

var (
	configPath string
	seed       uint64
	logLevel   string
	colors     bool
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logger.GetLogger().Error().Err(err).Msg("gridlearn failed")
		os.Exit(1)
	}
}

// newRootCommand returns the gridlearn command with every subcommand
// attached
func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "gridlearn",
		Short:         "Plan and learn item collection routes on grid worlds",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "",
		"YAML experiment configuration (defaults are used if empty)")
	root.PersistentFlags().Uint64Var(&seed, "seed", 0,
		"Random seed, overriding the configured seed")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&colors, "color", true,
		"Colour the terminal rendering")

	root.AddCommand(
		PlanCommand(),
		SolveCommand(),
		BenchCommand(),
		ConfigCommand(),
	)
	return root
}

// setup returns the experiment configuration and the logger selected
// by the persistent flags
func setup(cmd *cobra.Command) (experiment.Config, *zerolog.Logger, error) {
	level, err := logger.ParseLevel(logLevel)
	if err != nil {
		return experiment.Config{}, nil, err
	}
	log := logger.GetLoggerConfigured(level)

	c := experiment.DefaultConfig()
	if configPath != "" {
		c, err = experiment.LoadConfig(configPath)
		if err != nil {
			return experiment.Config{}, nil, err
		}
		log.Debug().Str("path", configPath).Msg("configuration loaded")
	}
	if cmd.Flags().Changed("seed") {
		c.Seed = seed
	}

	return c, log, nil
}

// ConfigCommand returns the command that prints the default
// configuration
func ConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the default configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := experiment.DefaultConfig().Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
