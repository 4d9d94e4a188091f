// Package grid splits a region's bounding box into rectangular cells and
// keeps the cells that actually overlap the region polygon. The surviving
// cells ("tiles") are the unit of work for one export run.
package grid

import (
	"fmt"
	"log"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
	"github.com/paulmach/orb/planar"

	"github.com/GSIL-UCalgary/Hackathon15-AlphaEarth-Alberta/internal/geometry"
)

// Tile identifies one grid cell that intersects the region. Tiles are
// immutable once created.
type Tile struct {
	// ID is Row*GridSize + Col, unique within a partition.
	ID  int
	Row int
	Col int

	// Cell is the raw rectangular bounds before intersection.
	Cell geometry.BoundingBox

	// Clipped is the intersection of Cell with the region polygon.
	// Always non-empty: tiles with zero intersection area are never
	// materialized.
	Clipped orb.Geometry

	// ClippedArea is the planar area of Clipped, strictly positive.
	ClippedArea float64
}

// Partition holds the full tile set produced for one region.
type Partition struct {
	GridSize int
	Bounds   geometry.BoundingBox
	Tiles    []Tile
}

// GridSizeFor maps a requested tile count to a grid dimension. The grid is
// always square: gridSize = floor(sqrt(numTiles)). Callers should pass a
// perfect square; other values are accepted and floored, which is an
// explicit policy rather than silent truncation (the caller is warned via
// the returned exact flag).
func GridSizeFor(numTiles int) (gridSize int, exact bool, err error) {
	if numTiles < 1 {
		return 0, false, fmt.Errorf("numTiles must be >= 1, got %d", numTiles)
	}
	gridSize = int(math.Sqrt(float64(numTiles)))
	// Guard against sqrt landing just under an integer for large squares.
	for (gridSize+1)*(gridSize+1) <= numTiles {
		gridSize++
	}
	return gridSize, gridSize*gridSize == numTiles, nil
}

// Compute partitions the region's bounding box into gridSize x gridSize
// cells, intersects each cell with the region polygon, and returns the
// cells with strictly positive intersection area in row-major order.
//
// The result is deterministic: the same (region, numTiles) input always
// yields the same tile set, ids included. A region whose polygon misses
// every cell yields an empty tile list, which is a valid degenerate result,
// not an error.
func Compute(region *geometry.Region, numTiles int) (*Partition, error) {
	gridSize, exact, err := GridSizeFor(numTiles)
	if err != nil {
		return nil, err
	}
	if !exact {
		log.Printf("[Grid] numTiles=%d is not a perfect square, using %dx%d grid (%d cells)",
			numTiles, gridSize, gridSize, gridSize*gridSize)
	}

	bounds := region.Bounds()
	if err := bounds.Validate(); err != nil {
		return nil, fmt.Errorf("degenerate region bounds: %w", err)
	}

	polygon := region.Polygon()
	xStep := bounds.Width() / float64(gridSize)
	yStep := bounds.Height() / float64(gridSize)

	p := &Partition{
		GridSize: gridSize,
		Bounds:   bounds,
		Tiles:    make([]Tile, 0, gridSize*gridSize),
	}

	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			cell := geometry.BoundingBox{
				XMin: bounds.XMin + float64(col)*xStep,
				XMax: bounds.XMin + float64(col+1)*xStep,
				YMin: bounds.YMin + float64(row)*yStep,
				YMax: bounds.YMin + float64(row+1)*yStep,
			}

			// clip.Geometry mutates its input, so each cell clips a copy.
			clipped := clip.Geometry(cell.Bound(), polygon.Clone())
			if clipped == nil {
				continue
			}
			area := math.Abs(planar.Area(clipped))
			if area <= 0 {
				continue
			}

			p.Tiles = append(p.Tiles, Tile{
				ID:          row*gridSize + col,
				Row:         row,
				Col:         col,
				Cell:        cell,
				Clipped:     clipped,
				ClippedArea: area,
			})
		}
	}

	return p, nil
}

// CoveredArea sums the clipped areas of all tiles. Up to clipping
// tolerance this equals the region's own area, which makes it a cheap
// sanity check before submitting a large run.
func (p *Partition) CoveredArea() float64 {
	var total float64
	for _, t := range p.Tiles {
		total += t.ClippedArea
	}
	return total
}
