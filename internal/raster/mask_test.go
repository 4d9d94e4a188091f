package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQualitySchemeValidate(t *testing.T) {
	assert.NoError(t, QualityScheme{Kind: QualityNone}.Validate())
	assert.NoError(t, QualityScheme{Kind: QualityBitfield, Bits: []uint{3}}.Validate())
	assert.NoError(t, QualityScheme{Kind: QualityCategorical, Codes: []int{9}}.Validate())

	assert.Error(t, QualityScheme{Kind: QualityBitfield}.Validate())
	assert.Error(t, QualityScheme{Kind: QualityBitfield, Bits: []uint{16}}.Validate())
	assert.Error(t, QualityScheme{Kind: QualityCategorical}.Validate())
	assert.Error(t, QualityScheme{Kind: "fuzzy"}.Validate())
}

func TestBitfieldUsable(t *testing.T) {
	// Cloud bit 3, shadow bit 4, snow bit 5.
	s := QualityScheme{Kind: QualityBitfield, Bits: []uint{3, 4, 5}}

	assert.True(t, s.Usable(0))
	assert.True(t, s.Usable(1))            // unrelated bit 0
	assert.False(t, s.Usable(1<<3))        // cloud
	assert.False(t, s.Usable(1<<4))        // shadow
	assert.False(t, s.Usable(1<<5))        // snow
	assert.False(t, s.Usable(1<<3|1<<4))   // multiple flags
	assert.False(t, s.Usable(1|1<<5))      // flag plus unrelated bit
	assert.True(t, s.Usable(1<<6))         // unlisted bit
}

func TestCategoricalUsable(t *testing.T) {
	s := QualityScheme{Kind: QualityCategorical, Codes: []int{3, 8, 9, 10, 11}}

	assert.True(t, s.Usable(4))  // vegetation
	assert.True(t, s.Usable(5))  // bare soil
	assert.False(t, s.Usable(3)) // cloud shadow
	assert.False(t, s.Usable(9)) // cloud high probability
}

func TestApplyQualityMask(t *testing.T) {
	img := NewFilled(2, 2, 0.5)
	img.SetInvalid(1, 1)

	quality := NewFilled(2, 2, 0)
	quality.Set(1, 0, float64(1<<3)) // cloud at (1,0)

	scheme := QualityScheme{Kind: QualityBitfield, Bits: []uint{3}}
	out, err := ApplyQualityMask(img, quality, scheme)
	require.NoError(t, err)

	v, ok := out.At(0, 0)
	assert.True(t, ok)
	assert.Equal(t, 0.5, v) // usable pixels unchanged
	assert.False(t, out.Valid(1, 0), "cloud pixel masked")
	assert.False(t, out.Valid(1, 1), "already-invalid pixel stays invalid")
	assert.True(t, out.Valid(0, 1))

	// Inputs untouched.
	assert.True(t, img.Valid(1, 0))
}

func TestApplyQualityMaskNoneClones(t *testing.T) {
	img := NewFilled(2, 1, 3.0)
	out, err := ApplyQualityMask(img, nil, QualityScheme{Kind: QualityNone})
	require.NoError(t, err)
	assert.Equal(t, img.ValidCount(), out.ValidCount())

	out.SetInvalid(0, 0)
	assert.True(t, img.Valid(0, 0), "clone must not alias the input")
}

func TestApplyQualityMaskErrors(t *testing.T) {
	img := NewFilled(2, 2, 1)

	_, err := ApplyQualityMask(img, nil, QualityScheme{Kind: QualityBitfield, Bits: []uint{3}})
	assert.Error(t, err, "bitfield scheme without quality band")

	_, err = ApplyQualityMask(img, NewFilled(3, 2, 0), QualityScheme{Kind: QualityBitfield, Bits: []uint{3}})
	assert.Error(t, err, "size mismatch")
}

// Adding more exclusion categories never increases the count of valid
// pixels.
func TestQualityMaskMonotonicity(t *testing.T) {
	img := NewFilled(4, 4, 1.0)
	quality := NewImage(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			quality.Set(x, y, float64(y*4+x)) // codes 0..15
		}
	}

	prevValid := img.ValidCount()
	codes := []int{}
	for c := 0; c < 16; c++ {
		codes = append(codes, c)
		out, err := ApplyQualityMask(img, quality, QualityScheme{Kind: QualityCategorical, Codes: codes})
		require.NoError(t, err)
		assert.LessOrEqual(t, out.ValidCount(), prevValid)
		prevValid = out.ValidCount()
	}
	assert.Equal(t, 0, prevValid, "excluding every code masks everything")
}

// The order of mask application across conditions is irrelevant.
func TestQualityMaskCommutative(t *testing.T) {
	img := NewFilled(4, 1, 1.0)
	quality := NewImage(4, 1)
	for x := 0; x < 4; x++ {
		quality.Set(x, 0, float64(x<<3))
	}

	a := QualityScheme{Kind: QualityBitfield, Bits: []uint{3, 4}}
	b := QualityScheme{Kind: QualityBitfield, Bits: []uint{4, 3}}

	outA, err := ApplyQualityMask(img, quality, a)
	require.NoError(t, err)
	outB, err := ApplyQualityMask(img, quality, b)
	require.NoError(t, err)

	for x := 0; x < 4; x++ {
		assert.Equal(t, outA.Valid(x, 0), outB.Valid(x, 0))
	}
}
