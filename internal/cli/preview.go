package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GSIL-UCalgary/Hackathon15-AlphaEarth-Alberta/internal/grid"
	"github.com/GSIL-UCalgary/Hackathon15-AlphaEarth-Alberta/internal/preview"
)

// previewFlags holds the flag values for the preview command.
type previewFlags struct {
	regionPath string
	regionName string
	numTiles   int
	out        string
	width      int
}

// NewPreviewCommand creates the "preview" command: render the tile grid to
// a local grayscale GeoTIFF for visual inspection.
func NewPreviewCommand() *cobra.Command {
	flags := &previewFlags{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Write a grayscale GeoTIFF of the tile grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(flags)
		},
	}

	cmd.Flags().StringVar(&flags.regionPath, "region", "", "Boundary GeoJSON file (required)")
	cmd.Flags().StringVar(&flags.regionName, "region-name", "Alberta", "Region label")
	cmd.Flags().IntVar(&flags.numTiles, "tiles", 25, "Requested tile count (perfect square)")
	cmd.Flags().StringVar(&flags.out, "out", "grid_preview.tif", "Output GeoTIFF path")
	cmd.Flags().IntVar(&flags.width, "width", 512, "Preview width in pixels")
	cmd.MarkFlagRequired("region")

	return cmd
}

func runPreview(flags *previewFlags) error {
	region, err := loadRegion(flags.regionPath, flags.regionName)
	if err != nil {
		return err
	}

	p, err := grid.Compute(region, flags.numTiles)
	if err != nil {
		return err
	}
	if len(p.Tiles) == 0 {
		return fmt.Errorf("region %s produced no tiles, nothing to preview", region.Name())
	}

	if err := preview.WriteGeoTIFF(flags.out, region, p, flags.width); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d tiles, grid %dx%d)\n", flags.out, len(p.Tiles), p.GridSize, p.GridSize)
	return nil
}
