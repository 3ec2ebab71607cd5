package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"schelling/internal/core"
	"schelling/internal/gridfile"
	"schelling/internal/logging"
	"schelling/internal/render"
	"schelling/internal/sims/schelling"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation on a grid file",
		Example: `  schelling run --grid-file tests/a20-sample-writeup.txt --r 1 \
      --sim-lb 0.40 --sim-ub 0.7 --patience 3 --max-steps 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")
			gridPath, _ := cmd.Flags().GetString("grid-file")
			outPath, _ := cmd.Flags().GetString("output")
			tracePath, _ := cmd.Flags().GetString("trace")
			printGrid, _ := cmd.Flags().GetBool("print-grid")
			pngPath, _ := cmd.Flags().GetString("png")
			pngScale, _ := cmd.Flags().GetInt("png-scale")
			chartPath, _ := cmd.Flags().GetString("chart")
			overrides, _ := cmd.Flags().GetStringArray("set")

			flags := cmd.Flags()
			if flags.Changed("r") {
				cfg.Simulation.R, _ = flags.GetInt("r")
			}
			if flags.Changed("sim-lb") {
				cfg.Simulation.SimLB, _ = flags.GetFloat64("sim-lb")
			}
			if flags.Changed("sim-ub") {
				cfg.Simulation.SimUB, _ = flags.GetFloat64("sim-ub")
			}
			if flags.Changed("patience") {
				cfg.Simulation.Patience, _ = flags.GetInt("patience")
			}
			if flags.Changed("max-steps") {
				cfg.Simulation.MaxSteps, _ = flags.GetInt("max-steps")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			city, err := gridfile.Load(gridPath)
			if err != nil {
				return err
			}

			trace, err := logging.OpenTrace(tracePath)
			if err != nil {
				return err
			}
			defer trace.Close()

			observe := func(r schelling.Relocation) {
				trace.Log(r)
				logger.Log(context.Background(), logging.LevelTrace, "relocated",
					"step", r.Step, "type", r.Type, "from", r.From.String(), "to", r.To.String())
			}
			world := schelling.FromCity(city, cfg.WorldConfig(),
				schelling.WithLogger(logger), schelling.WithObserver(observe))
			for _, kv := range overrides {
				key, value, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("--set %q: want key=value", kv)
				}
				if err := core.ApplyParameter(world, key, value); err != nil {
					return err
				}
			}
			params := world.Config().Params
			if err := params.Validate(); err != nil {
				return err
			}

			logger.Debug("starting run",
				"grid", gridPath, "size", city.Size(), "r", params.Radius,
				"sim_lb", params.Range.Lower, "sim_ub", params.Range.Upper,
				"patience", params.Patience, "max_steps", params.MaxSteps)

			res := world.Simulation().Run()
			if err := trace.Close(); err != nil {
				return err
			}
			stats := schelling.ComputeStats(city, params.Radius, params.Range)

			if outPath != "" {
				if err := gridfile.Save(outPath, city); err != nil {
					return err
				}
			}
			if pngPath != "" {
				if err := render.SavePNG(pngPath, world, render.CityPalette, pngScale); err != nil {
					return err
				}
			}

			if chartPath != "" && res.Steps > 0 {
				if err := render.SaveStepChart(chartPath, "Relocations so far", relocationSeries(res)); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(map[string]any{
					"relocations":     res.Relocations,
					"steps":           res.Steps,
					"outcome":         res.Outcome.String(),
					"satisfied_share": stats.SatisfiedShare(),
					"mean_similarity": map[string]float64{
						schelling.TypeA.String(): stats.MeanSimilarity[schelling.TypeA],
						schelling.TypeB.String(): stats.MeanSimilarity[schelling.TypeB],
					},
				})
			}

			fmt.Fprintf(out, "Number of relocations done: %s\n", humanize.Comma(int64(res.Relocations)))
			fmt.Fprintf(out, "Steps: %d (%s)\n", res.Steps, res.Outcome)
			fmt.Fprintf(out, "Satisfied: %s%%\n", humanize.FtoaWithDigits(stats.SatisfiedShare()*100, 1))
			fmt.Fprintf(out, "Mean similarity: M=%.3f B=%.3f\n",
				stats.MeanSimilarity[schelling.TypeA], stats.MeanSimilarity[schelling.TypeB])
			if printGrid {
				return gridfile.Write(out, city)
			}
			return nil
		},
	}

	def := schelling.DefaultConfig().Params
	cmd.Flags().String("grid-file", "", "File containing the city grid")
	cmd.Flags().Int("r", def.Radius, "Neighborhood radius")
	cmd.Flags().Float64("sim-lb", def.Range.Lower, "Lower bound of the similarity satisfaction range")
	cmd.Flags().Float64("sim-ub", def.Range.Upper, "Upper bound of the similarity satisfaction range")
	cmd.Flags().Int("patience", def.Patience, "Satisfactory homes visited before settling")
	cmd.Flags().Int("max-steps", def.MaxSteps, "Maximum number of simulation steps")
	cmd.Flags().String("output", "", "Write the final grid to this file")
	cmd.Flags().String("trace", "", "Write every relocation as JSON lines to this file")
	cmd.Flags().Bool("print-grid", false, "Print the final grid after the summary")
	cmd.Flags().String("png", "", "Write an image of the final grid to this file")
	cmd.Flags().Int("png-scale", 8, "Pixels per cell in the --png image")
	cmd.Flags().String("chart", "", "Write a chart of cumulative relocations per step to this PNG file")
	cmd.Flags().StringArray("set", nil, "Parameter override in key=value form (repeatable)")
	cmd.MarkFlagRequired("grid-file")

	return cmd
}

// relocationSeries accumulates the per-step relocations of each household
// type, starting from zero before the first step.
func relocationSeries(res schelling.Result) []render.Series {
	series := make([]render.Series, 0, len(schelling.Households))
	for _, t := range schelling.Households {
		values := make([]float64, 1, len(res.PerStep)+1)
		for _, sr := range res.PerStep {
			values = append(values, values[len(values)-1]+float64(sr.ByType[t]))
		}
		series = append(series, render.Series{Name: t.String(), Color: render.CityPalette[t], Values: values})
	}
	return series
}
