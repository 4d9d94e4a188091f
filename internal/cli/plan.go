package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GSIL-UCalgary/Hackathon15-AlphaEarth-Alberta/internal/grid"
)

// planFlags holds the flag values for the plan command.
type planFlags struct {
	regionPath string
	regionName string
	numTiles   int
}

// NewPlanCommand creates the "plan" command: compute and print the tile
// grid without submitting anything.
func NewPlanCommand() *cobra.Command {
	flags := &planFlags{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute the tile grid for a region and print it",
		Long: `Plan partitions the region's bounding box into a square grid, drops
cells that do not intersect the boundary polygon, and prints the
surviving tiles. Nothing is submitted to the platform.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(flags)
		},
	}

	cmd.Flags().StringVar(&flags.regionPath, "region", "", "Boundary GeoJSON file (required)")
	cmd.Flags().StringVar(&flags.regionName, "region-name", "Alberta", "Region label used in file names")
	cmd.Flags().IntVar(&flags.numTiles, "tiles", 25, "Requested tile count (perfect square)")
	cmd.MarkFlagRequired("region")

	return cmd
}

func runPlan(flags *planFlags) error {
	region, err := loadRegion(flags.regionPath, flags.regionName)
	if err != nil {
		return err
	}

	p, err := grid.Compute(region, flags.numTiles)
	if err != nil {
		return err
	}

	b := p.Bounds
	fmt.Printf("Region %s: bounds x[%.4f, %.4f] y[%.4f, %.4f], area %.4f\n",
		region.Name(), b.XMin, b.XMax, b.YMin, b.YMax, region.Area())
	fmt.Printf("Grid %dx%d: %d of %d cells intersect the region (covered area %.4f)\n",
		p.GridSize, p.GridSize, len(p.Tiles), p.GridSize*p.GridSize, p.CoveredArea())

	for _, t := range p.Tiles {
		fmt.Printf("  tile %3d R%dC%d  x[%.4f, %.4f] y[%.4f, %.4f]  area %.6f\n",
			t.ID, t.Row, t.Col, t.Cell.XMin, t.Cell.XMax, t.Cell.YMin, t.Cell.YMax, t.ClippedArea)
	}
	return nil
}
