package editor

import (
	"github.com/go-logr/logr"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"

	"geoedit/internal/geom"
)

// EditEvent is what the editable layer reports after an interaction: the
// whole collection as it should look now, and what kind of edit produced it.
type EditEvent struct {
	Updated *geojson.FeatureCollection
	Kind    EditKind
}

// State is the editor's single source of truth. It is owned by one UI loop
// and is not safe for concurrent use.
type State struct {
	collection *geojson.FeatureCollection
	mode       Mode
	selection  []int
	log        logr.Logger
}

type Option func(*State)

// WithLogger sets the logger used for mode changes and rejected edits.
func WithLogger(l logr.Logger) Option {
	return func(s *State) { s.log = l }
}

// New returns an empty editor in DrawPolygon mode.
func New(opts ...Option) *State {
	s := &State{
		collection: geojson.NewFeatureCollection(),
		mode:       DrawPolygon,
		log:        logr.Discard(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Collection returns the stored collection. Callers must not modify it; send
// an EditEvent instead.
func (s *State) Collection() *geojson.FeatureCollection { return s.collection }

func (s *State) Mode() Mode { return s.mode }

// Selection returns a copy of the selected feature indexes.
func (s *State) Selection() []int { return append([]int(nil), s.selection...) }

// Feature returns the single stored feature, if any.
func (s *State) Feature() (*geojson.Feature, bool) {
	if len(s.collection.Features) == 0 {
		return nil, false
	}
	return s.collection.Features[0], true
}

func (s *State) Content() Content { return Classify(s.collection) }

// Toolbar is Toolbar applied to the current state.
func (s *State) Toolbar() []Button { return Toolbar(s.collection, s.mode) }

// SetMode switches the editing mode. Drawing modes need an empty collection;
// Translate needs a feature; Rotate, Scale and Modify need a polygon.
func (s *State) SetMode(m Mode) error {
	c := s.Content()
	ok := false
	switch m {
	case DrawPolygon, DrawPoint:
		ok = c == Empty
	case Translate:
		ok = c == OnePolygon || c == OnePoint
	case Rotate, Scale, Modify:
		ok = c == OnePolygon
	}
	if !ok {
		return errors.Wrapf(ErrModeUnavailable, "%s with %d feature(s)", m, len(s.collection.Features))
	}
	if m != s.mode {
		s.log.V(1).Info("mode change", "from", s.mode.String(), "to", m.String())
	}
	s.mode = m
	return nil
}

// Click runs a toolbar action. Actions not on the current toolbar are refused.
func (s *State) Click(a Action) error {
	visible := false
	for _, b := range s.Toolbar() {
		if b.Action == a {
			visible = true
			break
		}
	}
	if !visible {
		return errors.Wrapf(ErrActionUnavailable, "%s", a)
	}
	switch a {
	case ActionDrawArea:
		return s.SetMode(DrawPolygon)
	case ActionDrawPoint:
		return s.SetMode(DrawPoint)
	case ActionMove:
		return s.SetMode(Translate)
	case ActionRotate:
		return s.SetMode(Rotate)
	case ActionScale:
		return s.SetMode(Scale)
	case ActionReshape:
		return s.SetMode(Modify)
	case ActionDelete:
		s.DeleteAll()
		return nil
	}
	return errors.Wrapf(ErrActionUnavailable, "action %d", int(a))
}

// DeleteAll empties the collection and the selection and returns to DrawPolygon.
func (s *State) DeleteAll() {
	s.collection = geojson.NewFeatureCollection()
	s.selection = nil
	if s.mode != DrawPolygon {
		s.log.V(1).Info("mode change", "from", s.mode.String(), "to", DrawPolygon.String())
	}
	s.mode = DrawPolygon
}

// ApplyEdit replaces the collection with ev.Updated. A non-empty result
// selects feature 0, an empty one clears the selection, and a completed
// addFeature switches to Translate. Invalid events are rejected with
// ErrInvalidEdit and leave the state untouched.
func (s *State) ApplyEdit(ev EditEvent) error {
	if err := s.validate(ev); err != nil {
		s.log.Info("warning: edit rejected", "kind", string(ev.Kind), "reason", err.Error())
		return err
	}
	s.collection = geom.CloneCollection(ev.Updated)
	if len(s.collection.Features) > 0 {
		s.selection = []int{0}
	} else {
		s.selection = nil
	}
	s.log.V(2).Info("edit applied", "kind", string(ev.Kind), "features", len(s.collection.Features))

	switch {
	case ev.Kind == AddFeature:
		s.log.V(1).Info("mode change", "from", s.mode.String(), "to", Translate.String())
		s.mode = Translate
	case len(s.collection.Features) == 0 && !s.mode.Drawing():
		s.mode = DrawPolygon
	}
	return nil
}

func (s *State) validate(ev EditEvent) error {
	invalid := func(format string, args ...any) error {
		return errors.Wrapf(ErrInvalidEdit, format, args...)
	}
	if !ev.Kind.valid() {
		return invalid("unknown edit kind %q", ev.Kind)
	}
	if ev.Updated == nil {
		return invalid("%s: missing collection", ev.Kind)
	}
	n := len(ev.Updated.Features)
	if n > 1 {
		return invalid("%s: %d features, at most one allowed", ev.Kind, n)
	}
	if n == 1 {
		f := ev.Updated.Features[0]
		if f == nil || f.Geometry == nil {
			return invalid("%s: feature without geometry", ev.Kind)
		}
		if !geom.Editable(f.Geometry) {
			return invalid("%s: %s geometry not editable", ev.Kind, f.Geometry.GeoJSONType())
		}
		if poly, ok := f.Geometry.(orb.Polygon); ok && geom.Degenerate(poly) {
			return invalid("%s: polygon needs at least three distinct vertices and an area", ev.Kind)
		}
	}

	cur, have := s.Feature()
	if ev.Kind == AddFeature {
		if have {
			return invalid("addFeature: collection already holds a feature")
		}
		if n != 1 {
			return invalid("addFeature: expected one feature, got %d", n)
		}
		want := ""
		switch s.mode {
		case DrawPolygon:
			want = "Polygon"
		case DrawPoint:
			want = "Point"
		default:
			return invalid("addFeature in %s mode", s.mode)
		}
		if got := ev.Updated.Features[0].Geometry.GeoJSONType(); got != want {
			return invalid("addFeature: %s drawn in %s mode", got, s.mode)
		}
		return nil
	}
	if n == 1 {
		if !have {
			return invalid("%s: features are only created by addFeature", ev.Kind)
		}
		if got, want := ev.Updated.Features[0].Geometry.GeoJSONType(), cur.Geometry.GeoJSONType(); got != want {
			return invalid("%s: geometry type changed from %s to %s", ev.Kind, want, got)
		}
	}
	return nil
}
