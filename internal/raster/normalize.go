package raster

import (
	"fmt"
	"math"
)

// BandSpec describes how one band's source values map to the unsigned
// 8-bit output range.
type BandSpec struct {
	// Name is the band identifier, e.g. "SR_B4" or "A17".
	Name string

	// DomainMin/DomainMax bound the physical value domain after the
	// source affine, e.g. [0,1] for scaled reflectance or [-1,1] for
	// embedding channels.
	DomainMin float64
	DomainMax float64

	// Scale and Offset form the source affine for scaled integer
	// encodings: physical = raw*Scale + Offset. Scale 1 / Offset 0 means
	// the raw values are already physical.
	Scale  float64
	Offset float64
}

// Validate checks the spec's numeric domain.
func (s BandSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("band spec has empty name")
	}
	if !(s.DomainMax > s.DomainMin) {
		return fmt.Errorf("band %s: domain [%g,%g] is empty", s.Name, s.DomainMin, s.DomainMax)
	}
	if s.Scale == 0 {
		return fmt.Errorf("band %s: affine scale must be non-zero", s.Name)
	}
	return nil
}

// quantize maps one physical value into [0,255]. Clamping happens before
// scaling, so out-of-domain values saturate at 0 or 255 instead of
// wrapping. Rounding is half-away-from-zero (math.Round) for every pixel:
// the domain midpoint of [-1,1] quantizes to 128.
func (s BandSpec) quantize(raw float64) uint8 {
	v := raw*s.Scale + s.Offset
	if v < s.DomainMin {
		v = s.DomainMin
	}
	if v > s.DomainMax {
		v = s.DomainMax
	}
	q := math.Round((v - s.DomainMin) / (s.DomainMax - s.DomainMin) * 255)
	return uint8(q)
}

// Dequantize maps an 8-bit value back to the physical domain. Only used to
// bound quantization error; the export pipeline itself never inverts.
func (s BandSpec) Dequantize(q uint8) float64 {
	return s.DomainMin + float64(q)/255*(s.DomainMax-s.DomainMin)
}

// Normalize converts a composite image to the unsigned 8-bit encoding per
// the band spec. Invalid (NoData) pixels stay invalid; they are never
// coerced to 0 or 255.
func Normalize(img *Image, spec BandSpec) (*Image8, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	out := NewImage8(img.Width, img.Height)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			v, ok := img.At(x, y)
			if !ok {
				continue
			}
			out.Set(x, y, spec.quantize(v))
		}
	}
	return out, nil
}
