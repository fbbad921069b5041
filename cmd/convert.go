package main

import (
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/uvacreate/registers-rdf/internal/entity"
	"github.com/uvacreate/registers-rdf/internal/lookup"
	"github.com/uvacreate/registers-rdf/internal/pipeline"
	"github.com/uvacreate/registers-rdf/internal/rdf"
)

var (
	convertSource  string
	convertDest    string
	convertWorkers int
	convertSkipBad bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert all index files under the source root to RDF",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if convertSource != "" {
			cfg.Convert.Source = convertSource
		}
		if convertDest != "" {
			cfg.Convert.Dest = convertDest
		}
		if cmd.Flags().Changed("workers") {
			cfg.Convert.Workers = convertWorkers
		}
		if cmd.Flags().Changed("skip-bad-records") {
			cfg.Convert.SkipBadRecords = convertSkipBad
		}

		format := rdf.Format(cfg.Convert.Format)

		occs, err := lookup.LoadOccupations(cfg.Resources.Occupations)
		if err != nil {
			return eris.Wrap(err, "load occupations table")
		}
		hoods, err := lookup.LoadNeighbourhoods(cfg.Resources.Neighbourhoods)
		if err != nil {
			return eris.Wrap(err, "load neighbourhoods table")
		}

		files, err := pipeline.Discover(cfg.Convert.Source, cfg.Convert.Dest, format)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			zap.L().Info("no source files found", zap.String("source", cfg.Convert.Source))
			return nil
		}

		scheme := entity.Scheme{
			Base:         cfg.URIs.Base,
			DatasetURI:   cfg.URIs.Dataset,
			DatasetTitle: cfg.URIs.DatasetTitle,
			CodeSetURI:   cfg.URIs.CodeSet,
			CodeSetName:  cfg.URIs.CodeSetName,
		}

		conv := pipeline.NewConverter(scheme, format, occs, hoods)
		conv.SkipBadRecords = cfg.Convert.SkipBadRecords

		return conv.Run(ctx, files, cfg.Convert.Workers)
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertSource, "source", "", "source data root (default from config)")
	convertCmd.Flags().StringVar(&convertDest, "dest", "", "destination root (default from config)")
	convertCmd.Flags().IntVar(&convertWorkers, "workers", 2, "number of concurrent file workers")
	convertCmd.Flags().BoolVar(&convertSkipBad, "skip-bad-records", false, "skip malformed records instead of aborting the file")
	rootCmd.AddCommand(convertCmd)
}
