package geom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
)

var (
	// ErrNoGeometry is returned when a source parses but holds nothing drawable.
	ErrNoGeometry = errors.New("no geometries found")
	// ErrUnsupported is returned for file types and geometry types geoedit cannot handle.
	ErrUnsupported = errors.New("unsupported")
)

// Editable reports whether g is a geometry the editor can hold (Point or Polygon).
func Editable(g orb.Geometry) bool {
	switch g.(type) {
	case orb.Point, orb.Polygon:
		return true
	}
	return false
}

// Normalize collapses single-member collections into the plain geometry the
// editor understands. MultiPoint{p} becomes p, MultiPolygon{poly} becomes poly
// and a bare Ring becomes a one-ring Polygon. Anything else is returned as is.
func Normalize(g orb.Geometry) orb.Geometry {
	switch v := g.(type) {
	case orb.MultiPoint:
		if len(v) == 1 {
			return v[0]
		}
	case orb.MultiPolygon:
		if len(v) == 1 {
			return v[0]
		}
	case orb.Ring:
		return orb.Polygon{closeRing(v)}
	case orb.Polygon:
		// close open rings so downstream fill and shapefile export agree
		out := make(orb.Polygon, len(v))
		for i, r := range v {
			out[i] = closeRing(r)
		}
		return out
	}
	return g
}

// ringClosed reports whether r repeats its first vertex at the end. Unlike
// orb.Ring.Closed it also holds for rings shorter than four points.
func ringClosed(r orb.Ring) bool {
	return len(r) > 1 && r[0] == r[len(r)-1]
}

func closeRing(r orb.Ring) orb.Ring {
	if len(r) == 0 || ringClosed(r) {
		return r
	}
	out := make(orb.Ring, len(r), len(r)+1)
	copy(out, r)
	return append(out, r[0])
}

// Vertices returns every coordinate of g in ring order. For polygons the
// closing vertex of each ring is omitted.
func Vertices(g orb.Geometry) []orb.Point {
	switch v := g.(type) {
	case orb.Point:
		return []orb.Point{v}
	case orb.Polygon:
		var out []orb.Point
		for _, r := range v {
			n := len(r)
			if ringClosed(r) {
				n--
			}
			out = append(out, r[:n]...)
		}
		return out
	}
	return nil
}

// Degenerate reports whether poly's outer ring has fewer than three distinct
// vertices or encloses no area.
func Degenerate(poly orb.Polygon) bool {
	if len(poly) == 0 {
		return true
	}
	distinct := map[orb.Point]bool{}
	for _, p := range Vertices(orb.Polygon{poly[0]}) {
		distinct[p] = true
	}
	return len(distinct) < 3 || planar.Area(closeRing(poly[0])) == 0
}

// NewCollection wraps features into a fresh FeatureCollection.
func NewCollection(features ...*geojson.Feature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range features {
		fc.Append(f)
	}
	return fc
}

// CloneCollection deep-copies fc so edits never alias the stored value.
func CloneCollection(fc *geojson.FeatureCollection) *geojson.FeatureCollection {
	out := geojson.NewFeatureCollection()
	if fc == nil {
		return out
	}
	for _, f := range fc.Features {
		nf := geojson.NewFeature(orb.Clone(f.Geometry))
		nf.ID = f.ID
		nf.Properties = f.Properties.Clone()
		out.Append(nf)
	}
	return out
}

// Bound returns the combined bounds of every feature in fc.
func Bound(fc *geojson.FeatureCollection) (orb.Bound, bool) {
	if fc == nil || len(fc.Features) == 0 {
		return orb.Bound{}, false
	}
	b := fc.Features[0].Geometry.Bound()
	for _, f := range fc.Features[1:] {
		b = b.Union(f.Geometry.Bound())
	}
	return b, true
}
