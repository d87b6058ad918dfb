// Package viewport maps lon/lat to terminal cells and braille dots around a
// fixed camera, using Web Mercator at slippy-map scale: one braille dot is
// one pixel of a 256px tile at the effective zoom.
package viewport

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"

	"geoedit/internal/geom"
)

const (
	tileSize = 256
	// earth circumference in Web Mercator meters
	worldMeters = 2 * math.Pi * 6378137

	MinZoom = 0
	MaxZoom = 22

	// braille dots per cell
	DotsX = 2
	DotsY = 4
)

// View is a camera plus the user's pan/zoom on top of it. Center and Zoom are
// the camera and stay fixed; PanX/PanY (dots) and ZoomDelta are the offsets.
type View struct {
	Center    orb.Point
	Zoom      float64
	ZoomDelta float64
	PanX      int
	PanY      int
	W, H      int // cells
}

// New returns a view of the camera with no offsets.
func New(center orb.Point, zoom float64) View {
	return View{Center: center, Zoom: zoom}
}

// Resize sets the map area size in cells.
func (v View) Resize(w, h int) View {
	v.W, v.H = max(1, w), max(1, h)
	return v
}

// Reset drops pan and zoom offsets.
func (v View) Reset() View {
	v.PanX, v.PanY, v.ZoomDelta = 0, 0, 0
	return v
}

// ZoomBy changes the zoom offset, clamped to the valid range.
func (v View) ZoomBy(d float64) View {
	z := math.Min(MaxZoom, math.Max(MinZoom, v.Zoom+v.ZoomDelta+d))
	v.ZoomDelta = z - v.Zoom
	return v
}

// PanBy shifts the content by whole cells.
func (v View) PanBy(cx, cy int) View {
	v.PanX += cx * DotsX
	v.PanY += cy * DotsY
	return v
}

// EffectiveZoom is camera zoom plus offset.
func (v View) EffectiveZoom() float64 { return v.Zoom + v.ZoomDelta }

// MetersPerDot is the Web Mercator distance one braille dot spans.
func (v View) MetersPerDot() float64 {
	return worldMeters / (tileSize * math.Pow(2, v.EffectiveZoom()))
}

// MetersPerCell is the horizontal Web Mercator distance of one cell.
func (v View) MetersPerCell() float64 { return DotsX * v.MetersPerDot() }

func (v View) origin() (float64, float64) {
	return float64(v.W*DotsX)/2 + float64(v.PanX), float64(v.H*DotsY)/2 + float64(v.PanY)
}

// ToDot projects p to braille dot coordinates. Results may fall outside the view.
func (v View) ToDot(p orb.Point) (int, int) {
	m, c := geom.ToMercator(p), geom.ToMercator(v.Center)
	mpd := v.MetersPerDot()
	ox, oy := v.origin()
	x := ox + (m[0]-c[0])/mpd
	y := oy - (m[1]-c[1])/mpd
	return int(math.Floor(x)), int(math.Floor(y))
}

// ToCell projects p to the cell containing it.
func (v View) ToCell(p orb.Point) (int, int) {
	x, y := v.ToDot(p)
	return floorDiv(x, DotsX), floorDiv(y, DotsY)
}

// FromDot returns the lon/lat at the center of dot (x, y).
func (v View) FromDot(x, y int) orb.Point {
	c := geom.ToMercator(v.Center)
	mpd := v.MetersPerDot()
	ox, oy := v.origin()
	mx := c[0] + (float64(x)+0.5-ox)*mpd
	my := c[1] - (float64(y)+0.5-oy)*mpd
	return geom.FromMercator(orb.Point{mx, my})
}

// FromCell returns the lon/lat at the center of cell (cx, cy).
func (v View) FromCell(cx, cy int) orb.Point {
	return v.FromDot(cx*DotsX+DotsX/2, cy*DotsY+DotsY/2)
}

// InView reports whether cell (cx, cy) is on screen.
func (v View) InView(cx, cy int) bool {
	return cx >= 0 && cy >= 0 && cx < v.W && cy < v.H
}

// Bound is the lon/lat rectangle on screen.
func (v View) Bound() orb.Bound {
	nw := v.FromDot(0, 0)
	se := v.FromDot(v.W*DotsX-1, v.H*DotsY-1)
	return orb.Bound{Min: orb.Point{nw[0], se[1]}, Max: orb.Point{se[0], nw[1]}}
}

// TileZoom is the integer tile zoom used for the basemap grid.
func (v View) TileZoom() maptile.Zoom {
	return maptile.Zoom(math.Round(math.Min(MaxZoom, math.Max(MinZoom, v.EffectiveZoom()))))
}

// TileAt names the basemap tile under p.
func (v View) TileAt(p orb.Point) maptile.Tile {
	return maptile.At(p, v.TileZoom())
}

// TileEdges returns the cell columns and rows where basemap tile borders fall.
func (v View) TileEdges() (cols, rows []int) {
	b := v.Bound()
	z := v.TileZoom()
	nw := maptile.At(orb.Point{b.Min[0], b.Max[1]}, z)
	se := maptile.At(orb.Point{b.Max[0], b.Min[1]}, z)
	for x := nw.X; x <= se.X+1 && x-nw.X < 64; x++ {
		edge := maptile.New(x, nw.Y, z).Bound().Min
		cx, _ := v.ToCell(edge)
		if cx >= 0 && cx < v.W {
			cols = append(cols, cx)
		}
	}
	for y := nw.Y; y <= se.Y+1 && y-nw.Y < 64; y++ {
		edge := maptile.New(nw.X, y, z).Bound().Max
		_, cy := v.ToCell(edge)
		if cy >= 0 && cy < v.H {
			rows = append(rows, cy)
		}
	}
	return cols, rows
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
