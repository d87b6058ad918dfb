// Package editor holds the map editor's state: the single-feature store, the
// editing mode, the selection, and the toolbar derived from them.
package editor

// Mode is the interaction the editable layer currently offers.
type Mode int

const (
	DrawPolygon Mode = iota
	DrawPoint
	Translate
	Rotate
	Scale
	Modify
)

// Modes lists every mode in declaration order.
var Modes = []Mode{DrawPolygon, DrawPoint, Translate, Rotate, Scale, Modify}

func (m Mode) String() string {
	switch m {
	case DrawPolygon:
		return "draw-polygon"
	case DrawPoint:
		return "draw-point"
	case Translate:
		return "translate"
	case Rotate:
		return "rotate"
	case Scale:
		return "scale"
	case Modify:
		return "modify"
	}
	return "unknown"
}

// Drawing reports whether m creates a new feature.
func (m Mode) Drawing() bool {
	switch m {
	case DrawPolygon, DrawPoint:
		return true
	case Translate, Rotate, Scale, Modify:
		return false
	}
	return false
}

// Transform reports whether m edits an existing feature.
func (m Mode) Transform() bool {
	switch m {
	case Translate, Rotate, Scale, Modify:
		return true
	case DrawPolygon, DrawPoint:
		return false
	}
	return false
}

// EditKind names what an edit event did, using the editable layer's vocabulary.
type EditKind string

const (
	AddFeature           EditKind = "addFeature"
	UpdateFeature        EditKind = "updateFeature"
	AddTentativePosition EditKind = "addTentativePosition"
	AddPosition          EditKind = "addPosition"
	RemovePosition       EditKind = "removePosition"
	MovePosition         EditKind = "movePosition"
	Translated           EditKind = "translated"
	Rotated              EditKind = "rotated"
	Scaled               EditKind = "scaled"
)

func (k EditKind) valid() bool {
	switch k {
	case AddFeature, UpdateFeature, AddTentativePosition, AddPosition, RemovePosition, MovePosition, Translated, Rotated, Scaled:
		return true
	}
	return false
}
