package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"schelling/internal/config"
	"schelling/internal/gridfile"
	"schelling/internal/logging"
	"schelling/internal/sims/schelling"
	"schelling/internal/sweep"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schelling-sweep",
		Short: "Run one city under many relocation parameter sets",
		Example: `  schelling-sweep --grid-file city.txt --r 1,2 --range 0.3:0.7,0.4:0.8 --patience 1,3,5
  schelling-sweep --size 60 --seed 7 --top 3 --json`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			cfgPath, _ := flags.GetString("config")
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if lvl, _ := flags.GetString("log-level"); lvl != "" {
				cfg.Logging.Level = lvl
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())

			radii, _ := flags.GetIntSlice("r")
			patiences, _ := flags.GetIntSlice("patience")
			rangeSpecs, _ := flags.GetStringSlice("range")
			workers, _ := flags.GetInt("workers")
			top, _ := flags.GetInt("top")
			jsonOut, _ := flags.GetBool("json")
			maxSteps := cfg.Simulation.MaxSteps
			if flags.Changed("max-steps") {
				maxSteps, _ = flags.GetInt("max-steps")
			}

			ranges := make([]schelling.Range, 0, len(rangeSpecs))
			for _, spec := range rangeSpecs {
				rng, err := parseRange(spec)
				if err != nil {
					return err
				}
				ranges = append(ranges, rng)
			}

			city, err := startingCity(cmd, cfg)
			if err != nil {
				return err
			}

			sets := sweep.Grid(radii, ranges, patiences, maxSteps)
			logger.Info("sweeping", "sets", len(sets), "workers", workers, "size", city.Size(), "max_steps", maxSteps)

			start := time.Now()
			results, err := sweep.Run(cmd.Context(), city, sets, workers)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			if top > 0 && top < len(results) {
				results = results[:top]
			}
			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(results)
			}

			fmt.Fprintf(out, "Top %d results (elapsed %s):\n", len(results), elapsed.Round(time.Millisecond))
			for i, res := range results {
				fmt.Fprintf(out, "%2d) similarity=%.3f satisfied=%s%% relocations=%s steps=%d (%s) %s\n",
					i+1, res.MeanSimilarity, humanize.FtoaWithDigits(res.SatisfiedShare*100, 1),
					humanize.Comma(int64(res.Relocations)), res.Steps, res.Outcome, res)
			}
			return nil
		},
	}

	cmd.Flags().String("config", "", "Path to a YAML config file")
	cmd.Flags().String("log-level", "", "Log level: info, debug, trace (overrides config)")
	cmd.Flags().Bool("json", false, "Output as JSON")
	cmd.Flags().String("grid-file", "", "Starting city; generated from the config when empty")
	cmd.Flags().Int("size", 0, "Side length of a generated city (overrides config)")
	cmd.Flags().Int64("seed", 0, "Seed of a generated city (overrides config)")
	cmd.Flags().IntSlice("r", []int{1, 2}, "Neighborhood radii")
	cmd.Flags().StringSlice("range", []string{"0.3:0.7", "0.4:0.7", "0.5:1"}, "Satisfaction ranges as lower:upper")
	cmd.Flags().IntSlice("patience", []int{1, 3, 5}, "Patience values")
	cmd.Flags().Int("max-steps", 0, "Maximum steps per run (overrides config)")
	cmd.Flags().Int("workers", runtime.NumCPU(), "Number of worker goroutines")
	cmd.Flags().Int("top", 10, "Number of results to report, 0 for all")

	return cmd
}

func startingCity(cmd *cobra.Command, cfg *config.Config) (*schelling.City, error) {
	if path, _ := cmd.Flags().GetString("grid-file"); path != "" {
		return gridfile.Load(path)
	}
	wc := cfg.WorldConfig()
	if cmd.Flags().Changed("size") {
		wc.Size, _ = cmd.Flags().GetInt("size")
	}
	if cmd.Flags().Changed("seed") {
		wc.Seed, _ = cmd.Flags().GetInt64("seed")
	}
	if wc.Size <= 0 {
		return nil, fmt.Errorf("--size must be positive, got %d", wc.Size)
	}
	return schelling.NewWithConfig(wc).City(), nil
}

func parseRange(spec string) (schelling.Range, error) {
	lo, hi, ok := strings.Cut(spec, ":")
	if !ok {
		return schelling.Range{}, fmt.Errorf("range %q: want lower:upper", spec)
	}
	lower, err := strconv.ParseFloat(lo, 64)
	if err != nil {
		return schelling.Range{}, fmt.Errorf("range %q: %w", spec, err)
	}
	upper, err := strconv.ParseFloat(hi, 64)
	if err != nil {
		return schelling.Range{}, fmt.Errorf("range %q: %w", spec, err)
	}
	return schelling.Range{Lower: lower, Upper: upper}, nil
}
