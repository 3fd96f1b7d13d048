package main

import (
	"github.com/spf13/cobra"

	"conductor/pkg/conductor"
)

func newScoreCmd() *cobra.Command {
	var (
		ground, overlays int
		brix             float64
		fifth, inoculant bool
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a voicing and its derived effects",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := map[string]any{"voicing": conductor.Score(ground, overlays)}
			if cmd.Flags().Changed("brix") {
				out["projected_brix"] = conductor.ProjectedYield(brix, fifth)
			}
			if cmd.Flags().Changed("inoculant") {
				out["water_multiplier"] = conductor.WaterReductionMultiplier(inoculant)
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().IntVar(&ground, "ground", 0, "filled ground roles (0-4)")
	cmd.Flags().IntVar(&overlays, "overlays", 0, "filled overlay slots (0-2)")
	cmd.Flags().Float64Var(&brix, "brix", 0, "measured brix to project")
	cmd.Flags().BoolVar(&fifth, "fifth", false, "the Fifth is filled")
	cmd.Flags().BoolVar(&inoculant, "inoculant", false, "the inoculant overlay is present")
	return cmd
}
