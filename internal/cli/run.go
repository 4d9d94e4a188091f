package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GSIL-UCalgary/Hackathon15-AlphaEarth-Alberta/internal/export"
	"github.com/GSIL-UCalgary/Hackathon15-AlphaEarth-Alberta/internal/platform"
	"github.com/GSIL-UCalgary/Hackathon15-AlphaEarth-Alberta/internal/telemetry"
)

// runFlags holds the flag values for the run command.
type runFlags struct {
	regionPath string
	regionName string
	datasetID  string
	numTiles   int
	bands      []string
	root       string
	workers    int
}

// NewRunCommand creates the "run" command: submit export jobs for every
// surviving (tile, band) pair.
func NewRunCommand() *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Submit per-tile export jobs for a dataset",
		Long: `Run partitions the region into tiles and submits one export job per
(tile, band) pair to the platform's asynchronous job queue. Submission
is fire-and-forget: the platform executes and retries jobs on its own.

Interrupting the run stops further submissions; jobs the platform
already accepted keep running there.

Examples:
  aeexport run --region alberta.geojson --dataset landsat8 --tiles 25
  aeexport run --region alberta.geojson --dataset alphaearth --tiles 25 --bands A00,A01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.regionPath, "region", "", "Boundary GeoJSON file (required)")
	cmd.Flags().StringVar(&flags.regionName, "region-name", "Alberta", "Region label used in file names")
	cmd.Flags().StringVar(&flags.datasetID, "dataset", "", "Dataset id (required, see \"aeexport datasets\")")
	cmd.Flags().IntVar(&flags.numTiles, "tiles", 25, "Requested tile count (perfect square)")
	cmd.Flags().StringSliceVar(&flags.bands, "bands", nil, "Band subset (default: all dataset bands)")
	cmd.Flags().StringVar(&flags.root, "root", "", "Destination folder root (default: from settings)")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "Concurrent submissions (default: from settings)")
	cmd.MarkFlagRequired("region")
	cmd.MarkFlagRequired("dataset")

	return cmd
}

func runRun(cmd *cobra.Command, flags *runFlags) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if settings.PlatformURL == "" {
		return fmt.Errorf("platform URL is not configured (set platformURL in %s)", settingsPath)
	}

	ds, err := loadDataset(settings, flags.datasetID)
	if err != nil {
		return err
	}

	region, err := loadRegion(flags.regionPath, flags.regionName)
	if err != nil {
		return err
	}

	root := flags.root
	if root == "" {
		root = settings.DestinationRoot
	}
	workers := flags.workers
	if workers == 0 {
		workers = settings.MaxWorkers
	}

	tracker := telemetry.New(settings.TelemetryKey, settings.TelemetryEndpoint)
	defer tracker.Close()

	client := platform.NewClient(settings.PlatformURL, settings.PlatformAPIKey)
	orch := export.New(client, workers)
	orch.SetTrackEventCallback(tracker.Track)

	// Ctrl-C stops submitting further jobs; already-accepted jobs keep
	// running on the platform.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	verboseLog("submitting dataset=%s tiles=%d workers=%d root=%s", ds.ID, flags.numTiles, workers, root)

	report, runErr := orch.Run(ctx, region, ds, export.Options{
		NumTiles:        flags.numTiles,
		Bands:           flags.bands,
		DestinationRoot: root,
		Workers:         workers,
	})
	if report == nil {
		return runErr
	}

	fmt.Printf("Run %s: %d of %d jobs submitted (%d tiles, grid %dx%d)\n",
		report.RunID, report.JobsSubmitted, report.JobsPlanned,
		report.TilesPlanned, report.GridSize, report.GridSize)
	for _, f := range report.Failures {
		fmt.Printf("  failed: %s: %v\n", f.FileNamePrefix, f.Err)
	}
	if runErr != nil {
		return fmt.Errorf("run interrupted: %w", runErr)
	}
	return nil
}
