package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a crop sheet (csv, xlsx, yaml or html) into the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.catalog()
			if err != nil {
				return err
			}
			res, err := svc.ImportFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "imported %d crops\n", len(res.Crops))
			for _, s := range res.Skipped {
				fmt.Fprintf(out, "  skipped %s\n", s)
			}
			return nil
		},
	}
}
