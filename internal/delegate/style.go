// Package delegate is the editable feature layer: it turns pointer and key
// input into edit events for the editor state, and supplies per-feature styles
// to the renderer.
package delegate

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"geoedit/internal/editor"
)

// Style is how one feature (or the in-progress shape) is drawn. Empty colours
// mean "do not draw that part".
type Style struct {
	LineWidth int
	Fill      string
	Line      string
}

// Palette holds the configurable colours, as lipgloss colour strings.
type Palette struct {
	Fill          string
	Line          string
	TentativeFill string
	TentativeLine string
	Marker        string
}

// DefaultPalette is red fill with white outlines.
func DefaultPalette() Palette {
	return Palette{
		Fill:          "#FF0000",
		Line:          "#FFFFFF",
		TentativeFill: "#FF0000",
		TentativeLine: "#FFFFFF",
		Marker:        "#FF3B30",
	}
}

// StyleFunc picks the style of a committed feature.
type StyleFunc func(f *geojson.Feature, selected bool, mode editor.Mode) Style

// FeatureStyle draws polygons with a 2 wide white outline and red fill, and
// points with a 13 wide handle and neither fill nor outline (the marker
// overlay stands in for them).
func (p Palette) FeatureStyle() StyleFunc {
	return func(f *geojson.Feature, _ bool, _ editor.Mode) Style {
		if f == nil {
			return Style{}
		}
		if _, ok := f.Geometry.(orb.Point); ok {
			return Style{LineWidth: 13}
		}
		return Style{LineWidth: 2, Fill: p.Fill, Line: p.Line}
	}
}

// TentativeStyle is the style of a shape still being drawn.
func (p Palette) TentativeStyle() Style {
	return Style{LineWidth: 2, Fill: p.TentativeFill, Line: p.TentativeLine}
}
