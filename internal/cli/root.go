// Package cli implements the cobra commands for the export orchestrator.
// Each subcommand (plan, run, preview, datasets, settings) lives in its
// own file;
// this file defines the root command and the flags shared by all of them.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GSIL-UCalgary/Hackathon15-AlphaEarth-Alberta/internal/config"
	"github.com/GSIL-UCalgary/Hackathon15-AlphaEarth-Alberta/internal/dataset"
	"github.com/GSIL-UCalgary/Hackathon15-AlphaEarth-Alberta/internal/geometry"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flag values bound to persistent flags on the root command.
var (
	settingsPath string
	verbose      bool
)

// NewRootCommand builds the root command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aeexport",
		Short: "Tile grid generation and band export orchestrator",
		Long: `aeexport splits a region boundary polygon into a grid of rectangular
tiles and submits one export job per tile per band to the geospatial
compute platform. Datasets (Landsat-8, Sentinel-2, AlphaEarth) are
declarative records; see "aeexport datasets".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}

	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", config.DefaultPath(), "Settings file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewPreviewCommand())
	rootCmd.AddCommand(NewDatasetsCommand())
	rootCmd.AddCommand(NewSettingsCommand())

	return rootCmd
}

// Execute runs the root command and maps errors to the exit code.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadSettings reads the settings file named by the --settings flag.
func loadSettings() (*config.Settings, error) {
	return config.Load(settingsPath)
}

// loadDataset resolves a dataset id against the built-ins plus any
// overrides file configured in settings.
func loadDataset(settings *config.Settings, id string) (*dataset.Dataset, error) {
	records, err := dataset.Load(settings.DatasetsFile)
	if err != nil {
		return nil, err
	}
	ds, ok := records[id]
	if !ok {
		return nil, fmt.Errorf("unknown dataset %q (known: %v)", id, dataset.IDs())
	}
	return ds, nil
}

// loadRegion reads the boundary polygon named by the --region flag.
func loadRegion(path, name string) (*geometry.Region, error) {
	if path == "" {
		return nil, fmt.Errorf("--region boundary file is required")
	}
	return geometry.LoadRegion(name, path)
}

// verboseLog prints to stderr only with --verbose.
func verboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
