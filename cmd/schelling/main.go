package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"schelling/internal/config"
	"schelling/internal/logging"
	_ "schelling/internal/sims/schelling"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "schelling",
		Short: "Schelling housing segregation simulator",
		Long: `schelling simulates a variant of Schelling's model of housing segregation.

Households of two types live on a square grid. Each step, unsatisfied
households visit homes for sale and settle in the patience-th home where
the share of similar neighbors falls inside [sim_lb, sim_ub].`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug, trace (overrides config)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newGenerateCmd(),
		newParamsCmd(),
		newSimsCmd(),
		newTweetsCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "schelling version %s\n", version)
		},
	}
}

// loadSettings reads the config file named by --config, applies --log-level
// and builds the stderr logger.
func loadSettings(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
	return cfg, logger, nil
}
