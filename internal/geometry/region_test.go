package geometry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitSquareRing() []orb.Point {
	return []orb.Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
}

func TestNewRegionBounds(t *testing.T) {
	r, err := NewRegion("test", unitSquareRing())
	require.NoError(t, err)

	b := r.Bounds()
	assert.Equal(t, 0.0, b.XMin)
	assert.Equal(t, 1.0, b.XMax)
	assert.Equal(t, 0.0, b.YMin)
	assert.Equal(t, 1.0, b.YMax)
	assert.InDelta(t, 1.0, r.Area(), 1e-12)
}

func TestNewRegionClosedRingNotDoubleCounted(t *testing.T) {
	open, err := NewRegion("open", unitSquareRing())
	require.NoError(t, err)

	closed, err := NewRegion("closed", append(unitSquareRing(), orb.Point{0, 0}))
	require.NoError(t, err)

	assert.Equal(t, open.Bounds(), closed.Bounds())
	assert.InDelta(t, open.Area(), closed.Area(), 1e-12)
}

func TestNewRegionRejectsDegenerate(t *testing.T) {
	tests := []struct {
		name string
		ring []orb.Point
	}{
		{"empty", nil},
		{"single point", []orb.Point{{0, 0}}},
		{"two points", []orb.Point{{0, 0}, {1, 1}}},
		{"repeated point", []orb.Point{{0, 0}, {0, 0}, {0, 0}, {1, 1}}},
		{"closed two points", []orb.Point{{0, 0}, {1, 1}, {0, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegion("bad", tt.ring)
			assert.Error(t, err)
		})
	}
}

func TestConcavePolygonBounds(t *testing.T) {
	// L-shaped polygon: bounding box still spans all vertices.
	ring := []orb.Point{{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}, {0, 2}}
	r, err := NewRegion("ell", ring)
	require.NoError(t, err)

	b := r.Bounds()
	assert.Equal(t, BoundingBox{XMin: 0, XMax: 2, YMin: 0, YMax: 2}, b)
	assert.InDelta(t, 3.0, r.Area(), 1e-12)
}

func TestContains(t *testing.T) {
	r, err := NewRegion("sq", unitSquareRing())
	require.NoError(t, err)

	assert.True(t, r.Contains(orb.Point{0.5, 0.5}))
	assert.False(t, r.Contains(orb.Point{1.5, 0.5}))
}

func TestLoadRegionFeatureCollection(t *testing.T) {
	geo := `{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"properties": {"name": "Alberta"},
			"geometry": {
				"type": "Polygon",
				"coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]
			}
		}]
	}`
	path := filepath.Join(t.TempDir(), "boundary.geojson")
	require.NoError(t, os.WriteFile(path, []byte(geo), 0644))

	r, err := LoadRegion("Alberta", path)
	require.NoError(t, err)
	assert.Equal(t, "Alberta", r.Name())
	assert.InDelta(t, 1.0, r.Area(), 1e-12)
}

func TestLoadRegionMultiPolygonPicksLargest(t *testing.T) {
	// A big square plus a tiny island: the island must not win.
	geo := `{
		"type": "MultiPolygon",
		"coordinates": [
			[[[10,10],[10.01,10],[10.01,10.01],[10,10.01],[10,10]]],
			[[[0,0],[2,0],[2,2],[0,2],[0,0]]]
		]
	}`
	path := filepath.Join(t.TempDir(), "multi.geojson")
	require.NoError(t, os.WriteFile(path, []byte(geo), 0644))

	r, err := LoadRegion("multi", path)
	require.NoError(t, err)
	assert.Equal(t, BoundingBox{XMin: 0, XMax: 2, YMin: 0, YMax: 2}, r.Bounds())
}

func TestLoadRegionMissingFile(t *testing.T) {
	_, err := LoadRegion("x", filepath.Join(t.TempDir(), "nope.geojson"))
	assert.Error(t, err)
}

func TestBoundingBoxValidate(t *testing.T) {
	assert.NoError(t, BoundingBox{XMin: 0, XMax: 1, YMin: 0, YMax: 1}.Validate())
	assert.Error(t, BoundingBox{XMin: 1, XMax: 1, YMin: 0, YMax: 1}.Validate())
	assert.Error(t, BoundingBox{XMin: 0, XMax: 1, YMin: 2, YMax: 1}.Validate())
}
