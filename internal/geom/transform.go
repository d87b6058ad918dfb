package geom

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"
	"github.com/pkg/errors"
)

// All transforms work in Web Mercator so shapes keep their on-screen form,
// and all of them return a new geometry; the input is never modified.

// ToMercator projects a lon/lat point to Web Mercator meters.
func ToMercator(p orb.Point) orb.Point { return project.WGS84.ToMercator(p) }

// FromMercator is the inverse of ToMercator.
func FromMercator(p orb.Point) orb.Point { return project.Mercator.ToWGS84(p) }

func inMercator(g orb.Geometry, fn func(orb.Point) orb.Point) orb.Geometry {
	return project.Geometry(orb.Clone(g), func(p orb.Point) orb.Point {
		return FromMercator(fn(ToMercator(p)))
	})
}

// Pivot is the point rotate and scale turn around: the area centroid of a
// polygon, the point itself for a point.
func Pivot(g orb.Geometry) orb.Point {
	if p, ok := g.(orb.Point); ok {
		return p
	}
	merc := project.Geometry(orb.Clone(g), project.WGS84.ToMercator)
	c, _ := planar.CentroidArea(merc)
	return FromMercator(c)
}

// Translate shifts g by the Mercator offset between from and to.
func Translate(g orb.Geometry, from, to orb.Point) orb.Geometry {
	a, b := ToMercator(from), ToMercator(to)
	dx, dy := b[0]-a[0], b[1]-a[1]
	return inMercator(g, func(p orb.Point) orb.Point {
		return orb.Point{p[0] + dx, p[1] + dy}
	})
}

// Rotate turns g counter-clockwise by deg degrees around pivot.
func Rotate(g orb.Geometry, pivot orb.Point, deg float64) orb.Geometry {
	c := ToMercator(pivot)
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return inMercator(g, func(p orb.Point) orb.Point {
		x, y := p[0]-c[0], p[1]-c[1]
		return orb.Point{c[0] + x*cos - y*sin, c[1] + x*sin + y*cos}
	})
}

// Scale grows g by factor around pivot. Non-positive factors are rejected.
func Scale(g orb.Geometry, pivot orb.Point, factor float64) (orb.Geometry, error) {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return nil, errors.Errorf("scale factor %v out of range", factor)
	}
	c := ToMercator(pivot)
	return inMercator(g, func(p orb.Point) orb.Point {
		return orb.Point{c[0] + (p[0]-c[0])*factor, c[1] + (p[1]-c[1])*factor}
	}), nil
}

// AngleAt is the Mercator bearing (degrees, counter-clockwise from east) of p seen from pivot.
func AngleAt(pivot, p orb.Point) float64 {
	c, m := ToMercator(pivot), ToMercator(p)
	return math.Atan2(m[1]-c[1], m[0]-c[0]) * 180 / math.Pi
}

// DistanceFrom is the Mercator distance between pivot and p.
func DistanceFrom(pivot, p orb.Point) float64 {
	c, m := ToMercator(pivot), ToMercator(p)
	return math.Hypot(m[0]-c[0], m[1]-c[1])
}

// VertexRef addresses one vertex of a polygon.
type VertexRef struct {
	Ring  int
	Index int
}

// NearestVertex finds the polygon vertex closest to p, by Mercator distance.
func NearestVertex(poly orb.Polygon, p orb.Point) (VertexRef, float64, bool) {
	best, bestD := VertexRef{}, math.Inf(1)
	target := ToMercator(p)
	for ri, r := range poly {
		for vi, v := range openRing(r) {
			m := ToMercator(v)
			if d := math.Hypot(m[0]-target[0], m[1]-target[1]); d < bestD {
				best, bestD = VertexRef{Ring: ri, Index: vi}, d
			}
		}
	}
	return best, bestD, !math.IsInf(bestD, 1)
}

// NearestEdge finds the polygon edge whose midpoint is closest to p. The
// returned ref names the edge's first vertex.
func NearestEdge(poly orb.Polygon, p orb.Point) (VertexRef, float64, bool) {
	best, bestD := VertexRef{}, math.Inf(1)
	target := ToMercator(p)
	for ri, r := range poly {
		open := openRing(r)
		for vi := range open {
			a, b := ToMercator(open[vi]), ToMercator(open[(vi+1)%len(open)])
			mid := orb.Point{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2}
			if d := math.Hypot(mid[0]-target[0], mid[1]-target[1]); d < bestD {
				best, bestD = VertexRef{Ring: ri, Index: vi}, d
			}
		}
	}
	return best, bestD, !math.IsInf(bestD, 1)
}

// MoveVertex moves one vertex to p, keeping the ring closed.
func MoveVertex(poly orb.Polygon, at VertexRef, p orb.Point) (orb.Polygon, error) {
	open, err := ringAt(poly, at.Ring)
	if err != nil {
		return nil, err
	}
	if at.Index < 0 || at.Index >= len(open) {
		return nil, errors.Errorf("vertex %d out of range", at.Index)
	}
	open[at.Index] = p
	return replaceRing(poly, at.Ring, open), nil
}

// InsertVertex adds p after the vertex named by at.
func InsertVertex(poly orb.Polygon, at VertexRef, p orb.Point) (orb.Polygon, error) {
	open, err := ringAt(poly, at.Ring)
	if err != nil {
		return nil, err
	}
	if at.Index < 0 || at.Index >= len(open) {
		return nil, errors.Errorf("vertex %d out of range", at.Index)
	}
	open = append(open[:at.Index+1], append([]orb.Point{p}, open[at.Index+1:]...)...)
	return replaceRing(poly, at.Ring, open), nil
}

// RemoveVertex drops one vertex. A ring keeps at least three vertices.
func RemoveVertex(poly orb.Polygon, at VertexRef) (orb.Polygon, error) {
	open, err := ringAt(poly, at.Ring)
	if err != nil {
		return nil, err
	}
	if at.Index < 0 || at.Index >= len(open) {
		return nil, errors.Errorf("vertex %d out of range", at.Index)
	}
	if len(open) <= 3 {
		return nil, errors.New("ring needs at least three vertices")
	}
	open = append(open[:at.Index], open[at.Index+1:]...)
	return replaceRing(poly, at.Ring, open), nil
}

// ringAt returns a copy of ring i without its closing vertex.
func ringAt(poly orb.Polygon, i int) ([]orb.Point, error) {
	if i < 0 || i >= len(poly) {
		return nil, errors.Errorf("ring %d out of range", i)
	}
	return append([]orb.Point(nil), openRing(poly[i])...), nil
}

func openRing(r orb.Ring) []orb.Point {
	if ringClosed(r) {
		return r[:len(r)-1]
	}
	return r
}

func replaceRing(poly orb.Polygon, i int, open []orb.Point) orb.Polygon {
	out := poly.Clone()
	out[i] = closeRing(orb.Ring(open))
	return out
}
