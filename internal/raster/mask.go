package raster

import "fmt"

// QualitySchemeKind selects how a dataset's quality band is interpreted.
type QualitySchemeKind string

const (
	// QualityNone means the dataset has no quality band; every observed
	// pixel is usable.
	QualityNone QualitySchemeKind = "none"

	// QualityBitfield interprets the quality value as a bit mask; a pixel
	// is unusable when any listed bit is set (Landsat QA_PIXEL style).
	QualityBitfield QualitySchemeKind = "bitfield"

	// QualityCategorical interprets the quality value as a class code; a
	// pixel is unusable when its code is listed (Sentinel-2 SCL style).
	QualityCategorical QualitySchemeKind = "categorical"
)

// QualityScheme is a dataset-specific description of which quality-band
// values mark a pixel unusable (cloud, shadow, snow, cirrus, unclassified).
type QualityScheme struct {
	Kind QualitySchemeKind `json:"kind" yaml:"kind"`

	// Bits lists bit positions that flag an unusable pixel (bitfield kind).
	Bits []uint `json:"bits,omitempty" yaml:"bits,omitempty"`

	// Codes lists class codes that flag an unusable pixel (categorical kind).
	Codes []int `json:"codes,omitempty" yaml:"codes,omitempty"`
}

// Validate checks the scheme's internal consistency.
func (s QualityScheme) Validate() error {
	switch s.Kind {
	case QualityNone:
		return nil
	case QualityBitfield:
		if len(s.Bits) == 0 {
			return fmt.Errorf("bitfield quality scheme needs at least one bit")
		}
		for _, b := range s.Bits {
			if b > 15 {
				return fmt.Errorf("quality bit %d out of range [0,15]", b)
			}
		}
		return nil
	case QualityCategorical:
		if len(s.Codes) == 0 {
			return fmt.Errorf("categorical quality scheme needs at least one code")
		}
		return nil
	default:
		return fmt.Errorf("unknown quality scheme kind %q", s.Kind)
	}
}

// Usable is the per-pixel predicate: it depends only on the quality band
// value, never on neighbouring pixels. Multiple exclusion conditions
// combine as a logical AND of "is usable", so their order is irrelevant.
func (s QualityScheme) Usable(quality float64) bool {
	switch s.Kind {
	case QualityBitfield:
		q := int(quality)
		for _, bit := range s.Bits {
			if q&(1<<bit) != 0 {
				return false
			}
		}
		return true
	case QualityCategorical:
		q := int(quality)
		for _, code := range s.Codes {
			if q == code {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// ApplyQualityMask marks pixels whose quality value is unusable as NoData
// and leaves usable pixels unchanged. The input images are not modified.
// A pixel that is already invalid in either input stays invalid.
func ApplyQualityMask(img, quality *Image, scheme QualityScheme) (*Image, error) {
	if err := scheme.Validate(); err != nil {
		return nil, err
	}
	if scheme.Kind == QualityNone {
		return img.Clone(), nil
	}
	if quality == nil {
		return nil, fmt.Errorf("quality scheme %q requires a quality band", scheme.Kind)
	}
	if !sameSize(img, quality) {
		return nil, fmt.Errorf("quality band size %dx%d does not match image %dx%d",
			quality.Width, quality.Height, img.Width, img.Height)
	}

	out := NewImage(img.Width, img.Height)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			v, ok := img.At(x, y)
			if !ok {
				continue
			}
			q, qok := quality.At(x, y)
			if !qok || !scheme.Usable(q) {
				continue
			}
			out.Set(x, y, v)
		}
	}
	return out, nil
}
