package geometry

import (
	"fmt"

	"github.com/paulmach/orb"
)

// BoundingBox is the axis-aligned extent of a region. It is computed once
// per run, read only, and discarded after grid construction.
type BoundingBox struct {
	XMin float64 `json:"xMin"`
	XMax float64 `json:"xMax"`
	YMin float64 `json:"yMin"`
	YMax float64 `json:"yMax"`
}

// Validate checks that the box spans a non-empty area.
func (b BoundingBox) Validate() error {
	if b.XMin >= b.XMax {
		return fmt.Errorf("xMin (%f) must be less than xMax (%f)", b.XMin, b.XMax)
	}
	if b.YMin >= b.YMax {
		return fmt.Errorf("yMin (%f) must be less than yMax (%f)", b.YMin, b.YMax)
	}
	return nil
}

// Width returns the x extent of the box.
func (b BoundingBox) Width() float64 { return b.XMax - b.XMin }

// Height returns the y extent of the box.
func (b BoundingBox) Height() float64 { return b.YMax - b.YMin }

// Bound converts to an orb.Bound for clipping operations.
func (b BoundingBox) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.XMin, b.YMin},
		Max: orb.Point{b.XMax, b.YMax},
	}
}
