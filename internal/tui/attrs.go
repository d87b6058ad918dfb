package tui

import (
	"encoding/json"
	"fmt"
	"sort"

	table "github.com/charmbracelet/bubbles/table"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"

	"geoedit/internal/geom"
)

// refreshAttrs rebuilds the table from the stored feature: its geometry
// summary first, then its properties.
func (m *Model) refreshAttrs() {
	rows := buildAttributes(m.state.Collection())
	if len(rows) == 0 {
		m.showAttrs = false
		m.status = "no feature to show"
		return
	}
	keyW, valW := 10, 12
	for _, r := range rows {
		keyW = max(keyW, min(24, len(r[0])+2))
		valW = max(valW, min(48, len([]rune(r[1]))+2))
	}
	tcols := []table.Column{{Title: "attribute", Width: keyW}, {Title: "value", Width: valW}}
	trows := make([]table.Row, len(rows))
	for i, r := range rows {
		trows[i] = table.Row{r[0], truncate(r[1], valW)}
	}
	// clear rows first so the column count never disagrees mid-update
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// buildAttributes lists (name, value) pairs for the first feature.
func buildAttributes(fc *geojson.FeatureCollection) [][2]string {
	if fc == nil || len(fc.Features) == 0 {
		return nil
	}
	f := fc.Features[0]
	rows := [][2]string{
		{"type", f.Geometry.GeoJSONType()},
		{"vertices", fmt.Sprintf("%d", len(geom.Vertices(f.Geometry)))},
	}
	if a := geo.Area(f.Geometry); a > 0 {
		rows = append(rows, [2]string{"area m²", fmt.Sprintf("%.1f", a)})
	}
	keys := make([]string, 0, len(f.Properties))
	for k := range f.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		rows = append(rows, [2]string{k, propString(f.Properties[k])})
	}
	return rows
}

func propString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}
