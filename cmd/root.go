package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/uvacreate/registers-rdf/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "registers-rdf",
	Short: "Population-register index to linked data converter",
	Long:  "Converts civil-registry index records (XML) into RDF named graphs describing persons, names, births, addresses and occupations.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
