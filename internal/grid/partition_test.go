package grid

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GSIL-UCalgary/Hackathon15-AlphaEarth-Alberta/internal/geometry"
)

func unitSquare(t *testing.T) *geometry.Region {
	t.Helper()
	r, err := geometry.NewRegion("square", []orb.Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	require.NoError(t, err)
	return r
}

// Triangle occupying the lower-left half of the unit square.
func lowerLeftTriangle(t *testing.T) *geometry.Region {
	t.Helper()
	r, err := geometry.NewRegion("triangle", []orb.Point{{0, 0}, {1, 0}, {0, 1}})
	require.NoError(t, err)
	return r
}

func TestGridSizeFor(t *testing.T) {
	tests := []struct {
		numTiles int
		gridSize int
		exact    bool
	}{
		{1, 1, true},
		{4, 2, true},
		{9, 3, true},
		{25, 5, true},
		{10, 3, false},
		{24, 4, false},
		{1000000, 1000, true},
	}
	for _, tt := range tests {
		gridSize, exact, err := GridSizeFor(tt.numTiles)
		require.NoError(t, err)
		assert.Equal(t, tt.gridSize, gridSize, "numTiles=%d", tt.numTiles)
		assert.Equal(t, tt.exact, exact, "numTiles=%d", tt.numTiles)
	}

	_, _, err := GridSizeFor(0)
	assert.Error(t, err)
	_, _, err = GridSizeFor(-4)
	assert.Error(t, err)
}

func TestComputeUnitSquareFourTiles(t *testing.T) {
	p, err := Compute(unitSquare(t), 4)
	require.NoError(t, err)

	require.Len(t, p.Tiles, 4)
	assert.Equal(t, 2, p.GridSize)

	ids := make([]int, 0, 4)
	for _, tile := range p.Tiles {
		ids = append(ids, tile.ID)
		assert.InDelta(t, 0.5, tile.Cell.Width(), 1e-12)
		assert.InDelta(t, 0.5, tile.Cell.Height(), 1e-12)
		assert.InDelta(t, 0.25, tile.ClippedArea, 1e-9)
		assert.Equal(t, tile.Row*p.GridSize+tile.Col, tile.ID)
	}
	assert.Equal(t, []int{0, 1, 2, 3}, ids, "row-major order")
}

// Clipping one cell must not affect the cells after it: every cell of a
// dense grid over the unit square survives with the same clipped area.
func TestComputeLaterCellsUnaffectedByEarlierClips(t *testing.T) {
	p, err := Compute(unitSquare(t), 25)
	require.NoError(t, err)

	require.Len(t, p.Tiles, 25)
	for _, tile := range p.Tiles {
		assert.InDelta(t, 0.04, tile.ClippedArea, 1e-9, "tile %d R%dC%d", tile.ID, tile.Row, tile.Col)
	}
}

func TestComputeTriangleExcludesEmptyQuadrant(t *testing.T) {
	p, err := Compute(lowerLeftTriangle(t), 4)
	require.NoError(t, err)

	// The upper-right quadrant touches the hypotenuse only along a line:
	// zero intersection area, so exactly 3 tiles survive.
	require.Len(t, p.Tiles, 3)
	for _, tile := range p.Tiles {
		assert.False(t, tile.Row == 1 && tile.Col == 1, "upper-right quadrant must be excluded")
		assert.Greater(t, tile.ClippedArea, 0.0)
	}
}

func TestComputeIdempotent(t *testing.T) {
	region := lowerLeftTriangle(t)

	a, err := Compute(region, 9)
	require.NoError(t, err)
	b, err := Compute(region, 9)
	require.NoError(t, err)

	require.Equal(t, len(a.Tiles), len(b.Tiles))
	for i := range a.Tiles {
		assert.Equal(t, a.Tiles[i].ID, b.Tiles[i].ID)
		assert.Equal(t, a.Tiles[i].Row, b.Tiles[i].Row)
		assert.Equal(t, a.Tiles[i].Col, b.Tiles[i].Col)
		assert.Equal(t, a.Tiles[i].Cell, b.Tiles[i].Cell)
		assert.Equal(t, a.Tiles[i].ClippedArea, b.Tiles[i].ClippedArea)
	}
}

func TestComputeIDsUniqueAndInRange(t *testing.T) {
	p, err := Compute(lowerLeftTriangle(t), 25)
	require.NoError(t, err)

	seen := make(map[int]bool)
	for _, tile := range p.Tiles {
		assert.False(t, seen[tile.ID], "duplicate id %d", tile.ID)
		seen[tile.ID] = true
		assert.GreaterOrEqual(t, tile.ID, 0)
		assert.Less(t, tile.ID, p.GridSize*p.GridSize)
	}
}

func TestComputeCoveredAreaMatchesRegion(t *testing.T) {
	for _, numTiles := range []int{1, 4, 9, 16, 25} {
		region := lowerLeftTriangle(t)
		p, err := Compute(region, numTiles)
		require.NoError(t, err)
		assert.InDelta(t, region.Area(), p.CoveredArea(), 1e-9, "numTiles=%d", numTiles)
	}
}

func TestComputeNonPerfectSquareFloors(t *testing.T) {
	p, err := Compute(unitSquare(t), 10)
	require.NoError(t, err)
	assert.Equal(t, 3, p.GridSize)
	assert.Len(t, p.Tiles, 9)
}

func TestComputeSingleTile(t *testing.T) {
	p, err := Compute(unitSquare(t), 1)
	require.NoError(t, err)
	require.Len(t, p.Tiles, 1)
	assert.Equal(t, 0, p.Tiles[0].ID)
	assert.InDelta(t, 1.0, p.Tiles[0].ClippedArea, 1e-9)
}
