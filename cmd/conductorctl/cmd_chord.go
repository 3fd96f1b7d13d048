package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"conductor/entities"
	"conductor/pkg/conductor"
	"conductor/pkg/zone"
)

func newChordCmd(opts *options) *cobra.Command {
	var (
		freq   string
		rootID string
	)
	cmd := &cobra.Command{
		Use:   "chord",
		Short: "Propose a chord for a bed around a root crop",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, ok := entities.ParseFrequency(freq)
			if !ok {
				return fmt.Errorf("unknown frequency %q", freq)
			}
			svc, err := opts.catalog()
			if err != nil {
				return err
			}
			root, err := svc.Get(rootID)
			if err != nil {
				return err
			}
			catalog, err := svc.Catalog()
			if err != nil {
				return err
			}
			zones, err := zone.LoadFile(opts.zonesPath)
			if err != nil {
				return err
			}
			chord := conductor.Generate(catalog, f, root, zones)
			return writeJSON(cmd.OutOrStdout(), map[string]any{"chord": chord, "voicing": chord.Voicing()})
		},
	}
	cmd.Flags().StringVar(&freq, "frequency", "", "bed frequency, e.g. 528")
	cmd.Flags().StringVar(&rootID, "root", "", "crop id for the Root")
	_ = cmd.MarkFlagRequired("frequency")
	_ = cmd.MarkFlagRequired("root")
	return cmd
}
