package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"schelling/internal/core"
	"schelling/internal/sims/schelling"
)

func newParamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "Show the effective simulation parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")
			world := schelling.NewWithConfig(cfg.WorldConfig())
			snap := world.Parameters()

			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(snap)
			}
			for _, g := range snap.Groups {
				fmt.Fprintf(out, "%s\n", g.Name)
				if g.Summary != "" {
					fmt.Fprintf(out, "  %s\n", g.Summary)
				}
				for _, p := range g.Params {
					fmt.Fprintf(out, "  %-24s %-6s %s\n", p.Key, p.Type, p.Value)
				}
			}
			return nil
		},
	}
}

func newSimsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sims",
		Short: "List the registered simulations",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range core.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
