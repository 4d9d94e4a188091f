package geometry

import (
	"fmt"
	"math"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Region is the polygon boundary of an area of interest. It is built once
// from an administrative-boundary file and never mutated afterwards; all
// accessors return copies or read-only views.
type Region struct {
	name    string
	polygon orb.Polygon
}

// NewRegion creates a region from an outer ring of lon/lat vertices.
// The ring may be open or closed (first vertex repeated at the end); a
// closed ring is not double-counted. Rings with fewer than 3 distinct
// vertices are rejected.
func NewRegion(name string, ring []orb.Point) (*Region, error) {
	r := orb.Ring(ring)
	if len(r) > 1 && r[0] == r[len(r)-1] {
		r = r[:len(r)-1]
	}
	if distinctVertices(r) < 3 {
		return nil, fmt.Errorf("region %q: polygon needs at least 3 distinct vertices, got %d", name, distinctVertices(r))
	}

	// Work on a closed copy so the caller's slice stays untouched.
	closed := make(orb.Ring, 0, len(r)+1)
	closed = append(closed, r...)
	closed = append(closed, r[0])

	return &Region{
		name:    name,
		polygon: orb.Polygon{closed},
	}, nil
}

// NewRegionFromPolygon wraps an existing polygon (outer ring plus optional
// holes) as a region. Used when the boundary file carries holes that a
// plain vertex ring cannot express.
func NewRegionFromPolygon(name string, p orb.Polygon) (*Region, error) {
	if len(p) == 0 || distinctVertices(p[0]) < 3 {
		return nil, fmt.Errorf("region %q: polygon outer ring needs at least 3 distinct vertices", name)
	}
	return &Region{name: name, polygon: p.Clone()}, nil
}

// LoadRegion reads a region polygon from a GeoJSON file. The file may hold
// a Feature, FeatureCollection, or bare geometry; for a MultiPolygon the
// largest member polygon by area is used (administrative boundaries often
// carry tiny islands that would skew the grid).
func LoadRegion(name, path string) (*Region, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read boundary file: %w", err)
	}

	geom, err := decodeGeometry(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse boundary file %s: %w", path, err)
	}

	switch g := geom.(type) {
	case orb.Polygon:
		return NewRegionFromPolygon(name, g)
	case orb.MultiPolygon:
		if len(g) == 0 {
			return nil, fmt.Errorf("boundary file %s: empty MultiPolygon", path)
		}
		best := g[0]
		bestArea := math.Abs(planar.Area(best))
		for _, p := range g[1:] {
			if a := math.Abs(planar.Area(p)); a > bestArea {
				best, bestArea = p, a
			}
		}
		return NewRegionFromPolygon(name, best)
	default:
		return nil, fmt.Errorf("boundary file %s: unsupported geometry type %s", path, geom.GeoJSONType())
	}
}

// decodeGeometry accepts the common GeoJSON containers and returns the
// first polygonal geometry found.
func decodeGeometry(data []byte) (orb.Geometry, error) {
	if fc, err := geojson.UnmarshalFeatureCollection(data); err == nil {
		for _, f := range fc.Features {
			switch f.Geometry.(type) {
			case orb.Polygon, orb.MultiPolygon:
				return f.Geometry, nil
			}
		}
		return nil, fmt.Errorf("no polygon feature in collection")
	}
	if f, err := geojson.UnmarshalFeature(data); err == nil {
		return f.Geometry, nil
	}
	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return nil, err
	}
	return g.Geometry(), nil
}

// Name returns the region's label, used in file name prefixes.
func (r *Region) Name() string { return r.name }

// Polygon returns a copy of the region geometry.
func (r *Region) Polygon() orb.Polygon { return r.polygon.Clone() }

// Bounds computes the axis-aligned bounding box over all vertices. The box
// is always axis-aligned, not a minimal rotated box, so concave polygons
// are handled without special cases.
func (r *Region) Bounds() BoundingBox {
	b := r.polygon.Bound()
	return BoundingBox{
		XMin: b.Min[0],
		XMax: b.Max[0],
		YMin: b.Min[1],
		YMax: b.Max[1],
	}
}

// Area returns the planar area of the region polygon in squared map units.
func (r *Region) Area() float64 {
	return math.Abs(planar.Area(r.polygon))
}

// Contains reports whether the point lies inside the region polygon.
func (r *Region) Contains(p orb.Point) bool {
	return planar.PolygonContains(r.polygon, p)
}

func distinctVertices(ring orb.Ring) int {
	seen := make(map[orb.Point]struct{}, len(ring))
	for _, p := range ring {
		seen[p] = struct{}{}
	}
	return len(seen)
}
