package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"geoedit/internal/geom"
)

// inspect describes the stored feature for the popup.
func (m Model) inspect() string {
	f, ok := m.state.Feature()
	if !ok {
		return "no feature yet"
	}
	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<unsaved>"
	}
	c := geom.Pivot(f.Geometry)
	b := f.Geometry.Bound()
	t := m.view.TileAt(c)
	meta := []string{
		fmt.Sprintf("name: %s", name),
		fmt.Sprintf("type: %s", f.Geometry.GeoJSONType()),
		fmt.Sprintf("mode: %s", m.state.Mode()),
		fmt.Sprintf("centroid: lon=%.6f lat=%.6f", c[0], c[1]),
		fmt.Sprintf("bbox: [%.5f, %.5f, %.5f, %.5f]", b.Min[0], b.Min[1], b.Max[0], b.Max[1]),
		fmt.Sprintf("tile: %d/%d/%d", t.Z, t.X, t.Y),
	}
	if _, ok := f.Geometry.(orb.Polygon); ok {
		meta = append(meta,
			fmt.Sprintf("area: %.1f m²", geo.Area(f.Geometry)),
			fmt.Sprintf("vertices: %d", len(geom.Vertices(f.Geometry))),
		)
	}
	if p, ok := m.cursor(); ok && m.hovering {
		meta = append(meta, fmt.Sprintf("cursor: %.1f m from centroid", geo.Distance(p, c)))
	}
	meta = append(meta, "crs: EPSG:4326", "wkt: "+truncate(geom.FormatWKT(f.Geometry), 120))
	return strings.Join(meta, "\n")
}
