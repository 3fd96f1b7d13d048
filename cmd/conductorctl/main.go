// Command conductorctl drives the catalog and the chord engine from a shell.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"conductor/config"
	"conductor/database"
	catRepoImp "conductor/pkg/catalog/repositoryImp"
	catSvcImp "conductor/pkg/catalog/serviceImp"
)

type options struct {
	dbPath    string
	zonesPath string
	verbose   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	opts := &options{dbPath: cfg.DBPath, zonesPath: cfg.ZonesPath}

	root := &cobra.Command{
		Use:          "conductorctl",
		Short:        "Import crops and propose bed chords",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.dbPath, "db", opts.dbPath, "sqlite database path")
	root.PersistentFlags().StringVar(&opts.zonesPath, "zones", opts.zonesPath, "zone table (yaml, csv or xlsx)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(newImportCmd(opts), newChordCmd(opts), newScoreCmd())
	return root
}

func (o *options) logger() *zap.Logger {
	if !o.verbose {
		return zap.NewNop()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func (o *options) catalog() (*catSvcImp.Svc, error) {
	db, err := database.Open(o.dbPath)
	if err != nil {
		return nil, err
	}
	return catSvcImp.New(catRepoImp.New(db), o.logger()), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
