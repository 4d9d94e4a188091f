package raster

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Reducer selects how a temporal stack collapses into one composite image.
type Reducer string

const (
	// ReducerMedian takes the per-pixel median across valid observations.
	// Used for reflectance datasets that need cloud-free compositing.
	ReducerMedian Reducer = "median"

	// ReducerMosaic takes the first valid observation in input order.
	// Used for single-snapshot embedding datasets where no temporal
	// averaging is wanted.
	ReducerMosaic Reducer = "mosaic"
)

// Validate checks the reducer is one of the supported modes.
func (r Reducer) Validate() error {
	switch r {
	case ReducerMedian, ReducerMosaic:
		return nil
	default:
		return fmt.Errorf("unknown reducer %q (want %q or %q)", r, ReducerMedian, ReducerMosaic)
	}
}

// Composite reduces a stack of masked images sharing one footprint into a
// single image. A pixel with zero valid observations across the whole
// stack stays invalid in the output; it is never defaulted to zero, so the
// normalizer cannot turn "no data" into a valid 8-bit value.
//
// Median takes the middle observation for odd-length stacks and the mean
// of the two middle observations for even-length stacks. Mosaic resolves
// overlaps first-valid-wins in input order.
func Composite(stack []*Image, r Reducer) (*Image, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if len(stack) == 0 {
		return nil, fmt.Errorf("empty image stack")
	}
	base := stack[0]
	for i, img := range stack[1:] {
		if !sameSize(base, img) {
			return nil, fmt.Errorf("image %d size %dx%d does not match stack footprint %dx%d",
				i+1, img.Width, img.Height, base.Width, base.Height)
		}
	}

	out := NewImage(base.Width, base.Height)
	obs := make([]float64, 0, len(stack))

	for y := 0; y < base.Height; y++ {
		for x := 0; x < base.Width; x++ {
			switch r {
			case ReducerMosaic:
				for _, img := range stack {
					if v, ok := img.At(x, y); ok {
						out.Set(x, y, v)
						break
					}
				}
			case ReducerMedian:
				obs = obs[:0]
				for _, img := range stack {
					if v, ok := img.At(x, y); ok {
						obs = append(obs, v)
					}
				}
				if len(obs) == 0 {
					continue
				}
				sort.Float64s(obs)
				mid := len(obs) / 2
				if len(obs)%2 == 1 {
					out.Set(x, y, obs[mid])
				} else {
					out.Set(x, y, stat.Mean(obs[mid-1:mid+1], nil))
				}
			}
		}
	}
	return out, nil
}
