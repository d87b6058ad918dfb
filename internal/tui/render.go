package tui

import (
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"geoedit/internal/delegate"
	"geoedit/internal/editor"
	"geoedit/internal/geom"
)

const (
	markerGlyph = '▼'
	handleGlyph = '◆'
	hoverGlyph  = '◯'
	hoverColor  = "#FFA500"
	// marker sits one cell above the point it marks
	markerOffsetX = 0
	markerOffsetY = -1
	// hover highlight reach, in cells
	hoverReach = 3
)

// renderMap draws the basemap grid, the stored feature, the shape being drawn
// and the overlays into a canvas the size of the map panel.
func (m Model) renderMap() *canvas {
	v := m.view
	c := newCanvas(v.W, v.H)
	if m.showGrid {
		m.drawGrid(c)
	}
	mode := m.state.Mode()
	sel := m.state.Selection()
	for i, f := range m.state.Collection().Features {
		st := m.layer.Style(f, len(sel) > 0 && sel[0] == i, mode)
		m.drawFeature(c, f, st)
	}
	m.drawTentative(c)
	m.drawHandles(c, mode)
	m.drawHover(c)
	return c
}

func (m Model) drawGrid(c *canvas) {
	cols, rows := m.view.TileEdges()
	color := string(borderCol)
	for _, x := range cols {
		for y := 0; y < c.h; y++ {
			c.background(x, y, '┊', color)
		}
	}
	for _, y := range rows {
		for x := 0; x < c.w; x++ {
			c.background(x, y, '┈', color)
		}
	}
	for _, x := range cols {
		for _, y := range rows {
			c.background(x, y, '┼', color)
		}
	}
}

func (m Model) dots(pts []orb.Point) [][2]int {
	out := make([][2]int, len(pts))
	for i, p := range pts {
		x, y := m.view.ToDot(p)
		out[i] = [2]int{x, y}
	}
	return out
}

func (m Model) drawFeature(c *canvas, f *geojson.Feature, st delegate.Style) {
	switch g := f.Geometry.(type) {
	case orb.Polygon:
		rings := make([][][2]int, 0, len(g))
		for _, r := range g {
			rings = append(rings, m.dots(r))
		}
		if st.Fill != "" {
			c.fill(rings, st.Fill)
		}
		if st.Line != "" {
			for _, r := range rings {
				outline(c, r, st.LineWidth, st.Line, true)
			}
		}
	case orb.Point:
		x, y := m.view.ToCell(g)
		c.put(x+markerOffsetX, y+markerOffsetY, markerGlyph, m.cfg.Colors.Marker)
		if st.Line != "" {
			dx, dy := m.view.ToDot(g)
			c.brush(dx, dy, max(1, st.LineWidth/4), st.Line)
		}
	}
}

func outline(c *canvas, r [][2]int, width int, color string, closed bool) {
	for i := 0; i+1 < len(r); i++ {
		c.line(r[i][0], r[i][1], r[i+1][0], r[i+1][1], width, color)
	}
	if closed && len(r) > 2 {
		a, b := r[len(r)-1], r[0]
		c.line(a[0], a[1], b[0], b[1], width, color)
	}
}

// drawTentative shows the polygon being drawn, with a rubber band edge to the cursor.
func (m Model) drawTentative(c *canvas) {
	pending := m.layer.Pending()
	if len(pending) == 0 {
		return
	}
	st := m.layer.Tentative
	if cur, ok := m.layer.Cursor(); ok {
		pending = append(pending, cur)
	}
	pts := m.dots(pending)
	if len(pts) >= 3 && st.Fill != "" {
		c.fill([][][2]int{pts}, st.Fill)
	}
	if st.Line != "" {
		outline(c, pts, st.LineWidth, st.Line, false)
	}
	for _, p := range m.layer.Pending() {
		x, y := m.view.ToCell(p)
		c.put(x, y, handleGlyph, st.Line)
	}
}

// drawHandles marks every vertex while reshaping.
func (m Model) drawHandles(c *canvas, mode editor.Mode) {
	if mode != editor.Modify {
		return
	}
	f, ok := m.state.Feature()
	if !ok {
		return
	}
	for _, p := range geom.Vertices(f.Geometry) {
		x, y := m.view.ToCell(p)
		c.put(x, y, handleGlyph, m.cfg.Colors.Line)
	}
}

// drawHover rings the vertex nearest the pointer when it is close enough.
func (m Model) drawHover(c *canvas) {
	if !m.hovering {
		return
	}
	f, ok := m.state.Feature()
	if !ok {
		return
	}
	best := math.MaxInt
	bx, by := 0, 0
	for _, p := range geom.Vertices(f.Geometry) {
		x, y := m.view.ToCell(p)
		dx, dy := x-m.hoverCellX, y-m.hoverCellY
		if d := dx*dx + dy*dy; d < best {
			best, bx, by = d, x, y
		}
	}
	if best <= hoverReach*hoverReach {
		c.put(bx, by, hoverGlyph, hoverColor)
	}
}

func (m Model) renderAsciiMap() string {
	return strings.Join(m.renderMap().toLines(), "\n")
}
