// Package preview rasterizes a tile partition into a small grayscale
// GeoTIFF so an operator can eyeball the grid before committing a run of
// hundreds of export jobs.
package preview

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"

	"github.com/GSIL-UCalgary/Hackathon15-AlphaEarth-Alberta/internal/geometry"
	"github.com/GSIL-UCalgary/Hackathon15-AlphaEarth-Alberta/internal/grid"
	"github.com/GSIL-UCalgary/Hackathon15-AlphaEarth-Alberta/internal/raster"
	"github.com/GSIL-UCalgary/Hackathon15-AlphaEarth-Alberta/pkg/geotiff"
)

// Background value for pixels outside the region; matches the exported
// rasters' NoData convention.
const noDataValue = 0

// Render paints the partition onto a width-pixel-wide image. Pixels
// outside the region stay invalid; pixels inside get a gray level derived
// from their tile id so adjacent cells are distinguishable. Height follows
// from the bounding box aspect ratio.
func Render(region *geometry.Region, p *grid.Partition, width int) (*raster.Image8, error) {
	if width < 8 {
		return nil, fmt.Errorf("preview width %d too small", width)
	}
	bounds := p.Bounds
	if err := bounds.Validate(); err != nil {
		return nil, err
	}

	height := int(float64(width) * bounds.Height() / bounds.Width())
	if height < 1 {
		height = 1
	}

	img := raster.NewImage8(width, height)
	xStep := bounds.Width() / float64(width)
	yStep := bounds.Height() / float64(height)

	for py := 0; py < height; py++ {
		// Row 0 is the north edge of the image.
		y := bounds.YMax - (float64(py)+0.5)*yStep
		for px := 0; px < width; px++ {
			x := bounds.XMin + (float64(px)+0.5)*xStep
			pt := orb.Point{x, y}
			if !region.Contains(pt) {
				continue
			}
			tile, ok := tileAt(p, pt)
			if !ok {
				continue
			}
			img.Set(px, py, shade(tile.ID))
		}
	}
	return img, nil
}

// WriteGeoTIFF renders the partition and writes it with georeferencing
// tags for the partition's bounding box.
func WriteGeoTIFF(path string, region *geometry.Region, p *grid.Partition, width int) error {
	img, err := Render(region, p, width)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create preview file: %w", err)
	}
	defer f.Close()

	tags := geotiff.GeoTags(p.Bounds.XMin, p.Bounds.YMin, p.Bounds.XMax, p.Bounds.YMax,
		img.Width, img.Height, noDataValue)
	if err := geotiff.Encode(f, img.Width, img.Height, img.Pix, tags); err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}
	return nil
}

// tileAt finds the tile whose raw cell rectangle contains the point.
// Shared cell edges resolve to the lower row/col, which is fine for a
// visual aid.
func tileAt(p *grid.Partition, pt orb.Point) (grid.Tile, bool) {
	for _, t := range p.Tiles {
		if pt[0] >= t.Cell.XMin && pt[0] <= t.Cell.XMax &&
			pt[1] >= t.Cell.YMin && pt[1] <= t.Cell.YMax {
			return t, true
		}
	}
	return grid.Tile{}, false
}

// shade spreads tile ids over mid grays, away from the NoData value and
// pure white.
func shade(id int) uint8 {
	return uint8(64 + (id*37)%160)
}
