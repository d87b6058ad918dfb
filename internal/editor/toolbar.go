package editor

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Action is a toolbar button.
type Action int

const (
	ActionDrawArea Action = iota
	ActionDrawPoint
	ActionMove
	ActionRotate
	ActionScale
	ActionReshape
	ActionDelete
)

// Button describes one visible toolbar entry.
type Button struct {
	Action Action
	Icon   string
	Label  string
	Key    string
}

var buttons = map[Action]Button{
	ActionDrawArea:  {ActionDrawArea, "⬠", "Draw area", "d"},
	ActionDrawPoint: {ActionDrawPoint, "◉", "Draw point", "o"},
	ActionMove:      {ActionMove, "✥", "Move area/point", "m"},
	ActionRotate:    {ActionRotate, "↺", "Rotate", "r"},
	ActionScale:     {ActionScale, "⤢", "Resize", "s"},
	ActionReshape:   {ActionReshape, "✎", "Reshape", "e"},
	ActionDelete:    {ActionDelete, "✖", "Delete area/point", "x"},
}

func (a Action) String() string {
	if b, ok := buttons[a]; ok {
		return b.Label
	}
	return "unknown"
}

// ButtonFor returns the descriptor of a.
func ButtonFor(a Action) (Button, bool) {
	b, ok := buttons[a]
	return b, ok
}

// Content classifies what the collection holds.
type Content int

const (
	Empty Content = iota
	OnePolygon
	OnePoint
	Other
)

// Classify reports the collection's content for toolbar and mode decisions.
func Classify(fc *geojson.FeatureCollection) Content {
	if fc == nil || len(fc.Features) == 0 {
		return Empty
	}
	if len(fc.Features) == 1 {
		switch fc.Features[0].Geometry.(type) {
		case orb.Polygon:
			return OnePolygon
		case orb.Point:
			return OnePoint
		}
	}
	return Other
}

// Toolbar lists the buttons shown for a collection and mode, in display order.
// Only the collection's content picks the branch.
func Toolbar(fc *geojson.FeatureCollection, _ Mode) []Button {
	var actions []Action
	switch Classify(fc) {
	case Empty:
		actions = []Action{ActionDrawArea, ActionDrawPoint}
	case OnePolygon:
		actions = []Action{ActionMove, ActionRotate, ActionScale, ActionReshape, ActionDelete}
	default:
		actions = []Action{ActionDelete}
	}
	out := make([]Button, len(actions))
	for i, a := range actions {
		out[i] = buttons[a]
	}
	return out
}
