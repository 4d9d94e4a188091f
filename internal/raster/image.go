// Package raster implements the per-pixel stages of the export pipeline:
// quality masking, temporal compositing, and 8-bit normalization. Images
// are small in-memory single-band rasters with an explicit validity mask,
// so "no data" is never confused with a zero sample.
package raster

import "fmt"

// Image is a single-band raster. Samples are stored row-major; a parallel
// validity mask tracks NoData pixels.
type Image struct {
	Width  int
	Height int

	samples []float64
	valid   []bool
}

// NewImage creates an image with every pixel marked invalid.
func NewImage(width, height int) *Image {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("raster: invalid dimensions %dx%d", width, height))
	}
	return &Image{
		Width:   width,
		Height:  height,
		samples: make([]float64, width*height),
		valid:   make([]bool, width*height),
	}
}

// NewFilled creates an image with every pixel valid and set to v.
func NewFilled(width, height int, v float64) *Image {
	img := NewImage(width, height)
	for i := range img.samples {
		img.samples[i] = v
		img.valid[i] = true
	}
	return img
}

func (m *Image) index(x, y int) int {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		panic(fmt.Sprintf("raster: pixel (%d,%d) out of %dx%d image", x, y, m.Width, m.Height))
	}
	return y*m.Width + x
}

// Set marks the pixel valid with the given sample value.
func (m *Image) Set(x, y int, v float64) {
	i := m.index(x, y)
	m.samples[i] = v
	m.valid[i] = true
}

// SetInvalid marks the pixel as NoData.
func (m *Image) SetInvalid(x, y int) {
	i := m.index(x, y)
	m.samples[i] = 0
	m.valid[i] = false
}

// At returns the sample value and whether the pixel is valid. The sample
// value of an invalid pixel is meaningless.
func (m *Image) At(x, y int) (float64, bool) {
	i := m.index(x, y)
	return m.samples[i], m.valid[i]
}

// Valid reports whether the pixel holds data.
func (m *Image) Valid(x, y int) bool {
	return m.valid[m.index(x, y)]
}

// ValidCount returns the number of valid pixels.
func (m *Image) ValidCount() int {
	n := 0
	for _, ok := range m.valid {
		if ok {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (m *Image) Clone() *Image {
	out := NewImage(m.Width, m.Height)
	copy(out.samples, m.samples)
	copy(out.valid, m.valid)
	return out
}

func sameSize(a, b *Image) bool {
	return a.Width == b.Width && a.Height == b.Height
}

// Image8 is a single-band unsigned 8-bit raster, the output encoding of
// the normalizer. Pix is row-major; Valid mirrors the NoData mask of the
// source image.
type Image8 struct {
	Width  int
	Height int
	Pix    []uint8
	Valid  []bool
}

// NewImage8 creates an 8-bit image with every pixel invalid.
func NewImage8(width, height int) *Image8 {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("raster: invalid dimensions %dx%d", width, height))
	}
	return &Image8{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
		Valid:  make([]bool, width*height),
	}
}

// At returns the 8-bit value and validity of the pixel.
func (m *Image8) At(x, y int) (uint8, bool) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		panic(fmt.Sprintf("raster: pixel (%d,%d) out of %dx%d image", x, y, m.Width, m.Height))
	}
	i := y*m.Width + x
	return m.Pix[i], m.Valid[i]
}

// Set stores a valid 8-bit value at the pixel.
func (m *Image8) Set(x, y int, v uint8) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		panic(fmt.Sprintf("raster: pixel (%d,%d) out of %dx%d image", x, y, m.Width, m.Height))
	}
	i := y*m.Width + x
	m.Pix[i] = v
	m.Valid[i] = true
}
