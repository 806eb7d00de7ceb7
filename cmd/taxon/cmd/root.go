// Package cmd implements the taxon CLI: detect categories for item
// titles, inspect the index, and watch a taxonomy file for changes.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/silver-fir/taxon/internal/config"
	"github.com/silver-fir/taxon/internal/engine"
	"github.com/silver-fir/taxon/internal/logging"
	"github.com/silver-fir/taxon/internal/source"
)

var rootCmd = &cobra.Command{
	Use:   "taxon",
	Short: "taxon — product category detection from item titles",
	Long:  "Ranks a flat taxonomy of category paths against free-text item titles with TF-IDF vectors. No model calls, no persistence.",
}

var jsonOutput bool

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "machine-readable output")
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(watchCmd)
}

// setup loads config, initializes logging, and builds a detector over the
// configured source. Commands call this first.
func setup() (config.Config, *engine.Detector) {
	cfg := config.Load()
	logging.Init(jsonOutput, logging.ParseLevel(cfg.Log.Level))
	return cfg, engine.New(buildSource(cfg))
}

// buildSource picks the taxonomy source from config; a URL wins over the
// local file.
func buildSource(cfg config.Config) source.Source {
	if cfg.Source.URL != "" {
		return source.NewHTTP(cfg.Source.URL,
			source.WithTimeout(cfg.Source.HTTPTimeout),
			source.WithCacheTTL(cfg.Source.CacheTTL))
	}
	return source.NewFile(cfg.Source.File)
}

func fail(err error) error {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	return err
}
