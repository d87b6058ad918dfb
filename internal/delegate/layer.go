package delegate

import (
	"github.com/go-logr/logr"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"geoedit/internal/editor"
	"geoedit/internal/geom"
)

// Props is what the layer reads on every event. It never keeps a reference
// to Data between events.
type Props struct {
	Data     *geojson.FeatureCollection
	Mode     editor.Mode
	Selected []int
	// Tolerance is the pick radius in Web Mercator meters.
	Tolerance float64
}

func (p Props) selected() (*geojson.Feature, bool) {
	if p.Data == nil || len(p.Selected) == 0 {
		return nil, false
	}
	i := p.Selected[0]
	if i < 0 || i >= len(p.Data.Features) {
		return nil, false
	}
	return p.Data.Features[i], true
}

type drag struct {
	mode   editor.Mode
	start  orb.Point
	pivot  orb.Point
	base   orb.Geometry
	vertex geom.VertexRef
}

// Layer is the editable GeoJSON layer. Methods that return an EditEvent
// return ok=false when the input changed nothing.
type Layer struct {
	Style     StyleFunc
	Tentative Style

	log     logr.Logger
	pending []orb.Point
	cursor  orb.Point
	hasCur  bool
	drag    *drag
}

// New returns a layer drawing with palette p.
func New(p Palette, log logr.Logger) *Layer {
	return &Layer{
		Style:     p.FeatureStyle(),
		Tentative: p.TentativeStyle(),
		log:       log,
	}
}

// Reset drops any in-progress drawing or drag; each mode activation starts fresh.
func (l *Layer) Reset() {
	l.pending = nil
	l.drag = nil
}

// Pending returns the tentative vertices of a polygon being drawn.
func (l *Layer) Pending() []orb.Point { return append([]orb.Point(nil), l.pending...) }

// Cursor is the last hovered position, for the rubber band edge.
func (l *Layer) Cursor() (orb.Point, bool) { return l.cursor, l.hasCur }

// Dragging reports whether a pointer drag is in progress.
func (l *Layer) Dragging() bool { return l.drag != nil }

// Hover records the pointer position without editing anything.
func (l *Layer) Hover(p orb.Point) {
	l.cursor, l.hasCur = p, true
}

// Press handles a primary button press at p.
func (l *Layer) Press(props Props, p orb.Point) (editor.EditEvent, bool) {
	l.Hover(p)
	switch props.Mode {
	case editor.DrawPoint:
		if props.Data != nil && len(props.Data.Features) > 0 {
			return editor.EditEvent{}, false
		}
		return l.add(props, p), true
	case editor.DrawPolygon:
		if props.Data != nil && len(props.Data.Features) > 0 {
			return editor.EditEvent{}, false
		}
		if len(l.pending) >= 3 && geom.DistanceFrom(l.pending[0], p) <= props.Tolerance {
			return l.Finish(props)
		}
		l.pending = append(l.pending, p)
		return editor.EditEvent{Updated: props.Data, Kind: editor.AddTentativePosition}, true
	case editor.Translate, editor.Rotate, editor.Scale:
		f, ok := props.selected()
		if !ok {
			return editor.EditEvent{}, false
		}
		l.drag = &drag{mode: props.Mode, start: p, base: f.Geometry, pivot: geom.Pivot(f.Geometry)}
		return editor.EditEvent{}, false
	case editor.Modify:
		return l.pressModify(props, p)
	}
	return editor.EditEvent{}, false
}

func (l *Layer) pressModify(props Props, p orb.Point) (editor.EditEvent, bool) {
	f, ok := props.selected()
	if !ok {
		return editor.EditEvent{}, false
	}
	poly, ok := f.Geometry.(orb.Polygon)
	if !ok {
		return editor.EditEvent{}, false
	}
	if ref, d, ok := geom.NearestVertex(poly, p); ok && d <= props.Tolerance {
		l.drag = &drag{mode: editor.Modify, start: p, base: poly, vertex: ref}
		return editor.EditEvent{}, false
	}
	ref, d, ok := geom.NearestEdge(poly, p)
	if !ok || d > props.Tolerance {
		return editor.EditEvent{}, false
	}
	grown, err := geom.InsertVertex(poly, ref, p)
	if err != nil {
		l.log.Error(err, "insert vertex")
		return editor.EditEvent{}, false
	}
	l.drag = &drag{
		mode:   editor.Modify,
		start:  p,
		base:   grown,
		vertex: geom.VertexRef{Ring: ref.Ring, Index: ref.Index + 1},
	}
	return l.replace(props, grown, editor.AddPosition)
}

// Drag moves the pointer with the button held.
func (l *Layer) Drag(props Props, p orb.Point) (editor.EditEvent, bool) {
	l.Hover(p)
	if l.drag == nil || l.drag.mode != props.Mode {
		return editor.EditEvent{}, false
	}
	d := l.drag
	switch d.mode {
	case editor.Translate:
		return l.replace(props, geom.Translate(d.base, d.start, p), editor.Translated)
	case editor.Rotate:
		deg := geom.AngleAt(d.pivot, p) - geom.AngleAt(d.pivot, d.start)
		return l.replace(props, geom.Rotate(d.base, d.pivot, deg), editor.Rotated)
	case editor.Scale:
		r0 := geom.DistanceFrom(d.pivot, d.start)
		if r0 == 0 {
			return editor.EditEvent{}, false
		}
		g, err := geom.Scale(d.base, d.pivot, geom.DistanceFrom(d.pivot, p)/r0)
		if err != nil {
			return editor.EditEvent{}, false
		}
		return l.replace(props, g, editor.Scaled)
	case editor.Modify:
		poly, ok := d.base.(orb.Polygon)
		if !ok {
			return editor.EditEvent{}, false
		}
		moved, err := geom.MoveVertex(poly, d.vertex, p)
		if err != nil {
			l.log.Error(err, "move vertex")
			return editor.EditEvent{}, false
		}
		return l.replace(props, moved, editor.MovePosition)
	}
	return editor.EditEvent{}, false
}

// Release ends a drag at p.
func (l *Layer) Release(props Props, p orb.Point) (editor.EditEvent, bool) {
	if l.drag == nil {
		return editor.EditEvent{}, false
	}
	ev, ok := l.Drag(props, p)
	l.drag = nil
	return ev, ok
}

// Finish closes the polygon being drawn. A shape with fewer than three
// distinct vertices or no area is a no-op and stays pending.
func (l *Layer) Finish(props Props) (editor.EditEvent, bool) {
	if props.Mode != editor.DrawPolygon || len(l.pending) < 3 {
		return editor.EditEvent{}, false
	}
	ring := append(orb.Ring(nil), l.pending...)
	ring = append(ring, ring[0])
	if geom.Degenerate(orb.Polygon{ring}) {
		return editor.EditEvent{}, false
	}
	l.pending = nil
	return l.add(props, orb.Polygon{ring}), true
}

// Cancel abandons the polygon being drawn and any drag in progress.
func (l *Layer) Cancel() bool {
	had := len(l.pending) > 0 || l.drag != nil
	l.Reset()
	return had
}

// Undo drops the last tentative vertex.
func (l *Layer) Undo() bool {
	if len(l.pending) == 0 {
		return false
	}
	l.pending = l.pending[:len(l.pending)-1]
	return true
}

// RemoveVertex deletes the polygon vertex nearest p in Modify mode.
func (l *Layer) RemoveVertex(props Props, p orb.Point) (editor.EditEvent, bool) {
	if props.Mode != editor.Modify {
		return editor.EditEvent{}, false
	}
	f, ok := props.selected()
	if !ok {
		return editor.EditEvent{}, false
	}
	poly, ok := f.Geometry.(orb.Polygon)
	if !ok {
		return editor.EditEvent{}, false
	}
	ref, d, ok := geom.NearestVertex(poly, p)
	if !ok || d > props.Tolerance {
		return editor.EditEvent{}, false
	}
	shrunk, err := geom.RemoveVertex(poly, ref)
	if err != nil {
		l.log.V(1).Info("remove vertex refused", "reason", err.Error())
		return editor.EditEvent{}, false
	}
	return l.replace(props, shrunk, editor.RemovePosition)
}

// Nudge translates the selected feature from one position to another, for
// keyboard-driven moves in Translate mode.
func (l *Layer) Nudge(props Props, from, to orb.Point) (editor.EditEvent, bool) {
	f, ok := props.selected()
	if !ok || props.Mode != editor.Translate {
		return editor.EditEvent{}, false
	}
	return l.replace(props, geom.Translate(f.Geometry, from, to), editor.Translated)
}

// Turn rotates the selected polygon by deg around its centroid in Rotate mode.
func (l *Layer) Turn(props Props, deg float64) (editor.EditEvent, bool) {
	f, ok := props.selected()
	if !ok || props.Mode != editor.Rotate {
		return editor.EditEvent{}, false
	}
	return l.replace(props, geom.Rotate(f.Geometry, geom.Pivot(f.Geometry), deg), editor.Rotated)
}

// Grow scales the selected polygon by factor around its centroid in Scale mode.
func (l *Layer) Grow(props Props, factor float64) (editor.EditEvent, bool) {
	f, ok := props.selected()
	if !ok || props.Mode != editor.Scale {
		return editor.EditEvent{}, false
	}
	g, err := geom.Scale(f.Geometry, geom.Pivot(f.Geometry), factor)
	if err != nil {
		l.log.V(1).Info("scale refused", "reason", err.Error())
		return editor.EditEvent{}, false
	}
	return l.replace(props, g, editor.Scaled)
}

func (l *Layer) add(props Props, g orb.Geometry) editor.EditEvent {
	fc := geom.CloneCollection(props.Data)
	fc.Append(geojson.NewFeature(g))
	return editor.EditEvent{Updated: fc, Kind: editor.AddFeature}
}

func (l *Layer) replace(props Props, g orb.Geometry, kind editor.EditKind) (editor.EditEvent, bool) {
	if _, ok := props.selected(); !ok {
		return editor.EditEvent{}, false
	}
	fc := geom.CloneCollection(props.Data)
	fc.Features[props.Selected[0]].Geometry = g
	return editor.EditEvent{Updated: fc, Kind: kind}, true
}
