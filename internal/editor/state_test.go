package editor

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoedit/internal/geom"
)

var allActions = []Action{
	ActionDrawArea, ActionDrawPoint, ActionMove, ActionRotate, ActionScale, ActionReshape, ActionDelete,
}

func polygonFC() *geojson.FeatureCollection {
	return geom.NewCollection(geojson.NewFeature(orb.Polygon{{
		{112.23, -7.56}, {112.24, -7.56}, {112.24, -7.55}, {112.23, -7.56},
	}}))
}

func pointFC() *geojson.FeatureCollection {
	return geom.NewCollection(geojson.NewFeature(orb.Point{112.234539, -7.555437}))
}

func actionsOf(bs []Button) []Action {
	out := make([]Action, len(bs))
	for i, b := range bs {
		out[i] = b.Action
	}
	return out
}

func TestInitialState(t *testing.T) {
	s := New()
	assert.Equal(t, DrawPolygon, s.Mode())
	assert.Empty(t, s.Collection().Features)
	assert.Empty(t, s.Selection())
	assert.Equal(t, Empty, s.Content())
}

func TestToolbarBranches(t *testing.T) {
	tests := []struct {
		name string
		fc   *geojson.FeatureCollection
		mode Mode
		want []Action
	}{
		{"empty", geojson.NewFeatureCollection(), DrawPolygon, []Action{ActionDrawArea, ActionDrawPoint}},
		{"nil", nil, DrawPoint, []Action{ActionDrawArea, ActionDrawPoint}},
		{"polygon", polygonFC(), Translate, []Action{ActionMove, ActionRotate, ActionScale, ActionReshape, ActionDelete}},
		{"point", pointFC(), Translate, []Action{ActionDelete}},
		{"line", geom.NewCollection(geojson.NewFeature(orb.LineString{{0, 0}, {1, 1}})), Translate, []Action{ActionDelete}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, actionsOf(Toolbar(tt.fc, tt.mode)))
		})
	}
}

func TestButtonsCarryLabelsAndKeys(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range allActions {
		b, ok := ButtonFor(a)
		require.True(t, ok)
		assert.NotEmpty(t, b.Icon)
		assert.NotEmpty(t, b.Label)
		assert.False(t, seen[b.Key], "duplicate key %q", b.Key)
		seen[b.Key] = true
	}
}

func TestAddFeatureSwitchesToTranslate(t *testing.T) {
	for _, tc := range []struct {
		mode Mode
		fc   *geojson.FeatureCollection
	}{
		{DrawPolygon, polygonFC()},
		{DrawPoint, pointFC()},
	} {
		s := New()
		require.NoError(t, s.SetMode(tc.mode))
		require.NoError(t, s.ApplyEdit(EditEvent{Updated: tc.fc, Kind: AddFeature}))
		assert.Equal(t, Translate, s.Mode(), tc.mode.String())
		assert.Equal(t, []int{0}, s.Selection())
		assert.Len(t, s.Collection().Features, 1)
	}
}

func TestApplyEditStoresACopy(t *testing.T) {
	s := New()
	fc := polygonFC()
	require.NoError(t, s.ApplyEdit(EditEvent{Updated: fc, Kind: AddFeature}))
	fc.Features[0].Geometry.(orb.Polygon)[0][0] = orb.Point{0, 0}
	f, ok := s.Feature()
	require.True(t, ok)
	assert.Equal(t, orb.Point{112.23, -7.56}, f.Geometry.(orb.Polygon)[0][0])
}

func TestDeleteResetsEverything(t *testing.T) {
	s := New()
	require.NoError(t, s.ApplyEdit(EditEvent{Updated: polygonFC(), Kind: AddFeature}))
	require.NoError(t, s.Click(ActionRotate))
	require.NoError(t, s.Click(ActionDelete))

	assert.Empty(t, s.Collection().Features)
	assert.Empty(t, s.Selection())
	assert.Equal(t, DrawPolygon, s.Mode())
	assert.Equal(t, []Action{ActionDrawArea, ActionDrawPoint}, actionsOf(s.Toolbar()))
}

func TestClickRespectsToolbar(t *testing.T) {
	s := New()
	err := s.Click(ActionMove)
	assert.True(t, errors.Is(err, ErrActionUnavailable))
	assert.Equal(t, DrawPolygon, s.Mode())

	require.NoError(t, s.Click(ActionDrawPoint))
	assert.Equal(t, DrawPoint, s.Mode())

	require.NoError(t, s.ApplyEdit(EditEvent{Updated: pointFC(), Kind: AddFeature}))
	assert.True(t, errors.Is(s.Click(ActionRotate), ErrActionUnavailable))
	assert.Equal(t, Translate, s.Mode())
}

func TestClickTransformsOnPolygon(t *testing.T) {
	s := New()
	require.NoError(t, s.ApplyEdit(EditEvent{Updated: polygonFC(), Kind: AddFeature}))
	for a, m := range map[Action]Mode{ActionRotate: Rotate, ActionScale: Scale, ActionReshape: Modify, ActionMove: Translate} {
		require.NoError(t, s.Click(a))
		assert.Equal(t, m, s.Mode())
	}
	assert.True(t, errors.Is(s.SetMode(DrawPoint), ErrModeUnavailable))
}

// Every click sequence up to length four, starting from the initial state,
// must never leave a transform mode active over an empty collection.
func TestNoTransformModeWhileEmpty(t *testing.T) {
	var walk func(s *State, depth int)
	walk = func(s *State, depth int) {
		if s.Content() == Empty {
			require.False(t, s.Mode().Transform(), "mode %s with empty collection", s.Mode())
		}
		if depth == 0 {
			return
		}
		for _, a := range allActions {
			next := New()
			next.collection, next.mode, next.selection = s.collection, s.mode, s.Selection()
			_ = next.Click(a)
			walk(next, depth-1)
		}
	}
	walk(New(), 4)
}

func TestRejectedEditsLeaveStateUntouched(t *testing.T) {
	two := polygonFC()
	two.Append(geojson.NewFeature(orb.Point{1, 1}))
	line := geom.NewCollection(geojson.NewFeature(orb.LineString{{0, 0}, {1, 1}}))
	sliver := geom.NewCollection(geojson.NewFeature(orb.Polygon{{{0, 0}, {1, 1}, {0, 0}}}))
	flat := geom.NewCollection(geojson.NewFeature(orb.Polygon{{{0, 0}, {1, 1}, {2, 2}, {0, 0}}}))

	tests := []struct {
		name  string
		setup func(*State)
		ev    EditEvent
	}{
		{"nil collection", nil, EditEvent{Kind: AddFeature}},
		{"unknown kind", nil, EditEvent{Updated: polygonFC(), Kind: "explode"}},
		{"two features", nil, EditEvent{Updated: two, Kind: AddFeature}},
		{"line geometry", nil, EditEvent{Updated: line, Kind: AddFeature}},
		{"degenerate polygon", nil, EditEvent{Updated: sliver, Kind: AddFeature}},
		{"zero area polygon", nil, EditEvent{Updated: flat, Kind: AddFeature}},
		{"point in polygon mode", nil, EditEvent{Updated: pointFC(), Kind: AddFeature}},
		{"create by update", nil, EditEvent{Updated: polygonFC(), Kind: Translated}},
		{"add over existing", func(s *State) {
			require.NoError(t, s.ApplyEdit(EditEvent{Updated: polygonFC(), Kind: AddFeature}))
		}, EditEvent{Updated: polygonFC(), Kind: AddFeature}},
		{"type change", func(s *State) {
			require.NoError(t, s.ApplyEdit(EditEvent{Updated: polygonFC(), Kind: AddFeature}))
		}, EditEvent{Updated: pointFC(), Kind: Translated}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			if tt.setup != nil {
				tt.setup(s)
			}
			before, mode, sel := s.Collection(), s.Mode(), s.Selection()
			err := s.ApplyEdit(tt.ev)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidEdit))
			assert.Same(t, before, s.Collection())
			assert.Equal(t, mode, s.Mode())
			assert.Equal(t, sel, s.Selection())
		})
	}
}

func TestEmptyUpdateClearsSelection(t *testing.T) {
	s := New()
	require.NoError(t, s.ApplyEdit(EditEvent{Updated: polygonFC(), Kind: AddFeature}))
	require.NoError(t, s.ApplyEdit(EditEvent{Updated: geojson.NewFeatureCollection(), Kind: RemovePosition}))
	assert.Empty(t, s.Selection())
	assert.Equal(t, DrawPolygon, s.Mode())
}

func TestNoOpEditKeepsToolbar(t *testing.T) {
	for _, fc := range []*geojson.FeatureCollection{polygonFC(), pointFC()} {
		s := New()
		if Classify(fc) == OnePoint {
			require.NoError(t, s.SetMode(DrawPoint))
		}
		require.NoError(t, s.ApplyEdit(EditEvent{Updated: fc, Kind: AddFeature}))
		before := s.Toolbar()
		require.NoError(t, s.ApplyEdit(EditEvent{Updated: s.Collection(), Kind: Translated}))
		assert.Equal(t, before, s.Toolbar())
		require.NoError(t, s.ApplyEdit(EditEvent{Updated: s.Collection(), Kind: UpdateFeature}))
		assert.Equal(t, before, s.Toolbar())
	}

	s := New()
	before := s.Toolbar()
	require.NoError(t, s.ApplyEdit(EditEvent{Updated: s.Collection(), Kind: AddTentativePosition}))
	assert.Equal(t, before, s.Toolbar())
	assert.Equal(t, DrawPolygon, s.Mode())
}

func TestModeStrings(t *testing.T) {
	for _, m := range Modes {
		assert.NotEqual(t, "unknown", m.String())
		assert.NotEqual(t, m.Drawing(), m.Transform(), m.String())
	}
	assert.Equal(t, "unknown", Mode(42).String())
}
