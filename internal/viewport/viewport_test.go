package viewport

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var camera = orb.Point{112.234539, -7.555437}

func TestCenterMapsToMiddle(t *testing.T) {
	v := New(camera, 14).Resize(80, 20)
	x, y := v.ToDot(camera)
	assert.Equal(t, 80, x)
	assert.Equal(t, 40, y)
	cx, cy := v.ToCell(camera)
	assert.Equal(t, 40, cx)
	assert.Equal(t, 10, cy)
}

func TestDotRoundTrip(t *testing.T) {
	v := New(camera, 14).Resize(80, 20).PanBy(3, -2)
	for _, d := range [][2]int{{0, 0}, {17, 33}, {159, 79}, {-5, 100}} {
		p := v.FromDot(d[0], d[1])
		x, y := v.ToDot(p)
		assert.Equal(t, d[0], x)
		assert.Equal(t, d[1], y)
	}
}

func TestNorthIsUp(t *testing.T) {
	v := New(camera, 14).Resize(80, 20)
	_, yNorth := v.ToDot(orb.Point{camera[0], camera[1] + 0.001})
	_, ySouth := v.ToDot(orb.Point{camera[0], camera[1] - 0.001})
	assert.Less(t, yNorth, ySouth)
	xEast, _ := v.ToDot(orb.Point{camera[0] + 0.001, camera[1]})
	xWest, _ := v.ToDot(orb.Point{camera[0] - 0.001, camera[1]})
	assert.Less(t, xWest, xEast)
}

func TestZoomAndPanLeaveCameraAlone(t *testing.T) {
	v := New(camera, 14).Resize(80, 20)
	z := v.ZoomBy(1).PanBy(2, 1)
	assert.Equal(t, camera, z.Center)
	assert.Equal(t, 14.0, z.Zoom)
	assert.Equal(t, 15.0, z.EffectiveZoom())
	assert.InDelta(t, v.MetersPerDot()/2, z.MetersPerDot(), 1e-9)
	assert.Equal(t, v, z.Reset().Resize(80, 20))

	assert.Equal(t, float64(MaxZoom), v.ZoomBy(100).EffectiveZoom())
	assert.Equal(t, float64(MinZoom), v.ZoomBy(-100).EffectiveZoom())
}

func TestBoundContainsCamera(t *testing.T) {
	v := New(camera, 14).Resize(80, 20)
	b := v.Bound()
	assert.True(t, b.Contains(camera))
	assert.True(t, v.InView(0, 0))
	assert.False(t, v.InView(80, 0))
}

func TestTiles(t *testing.T) {
	v := New(camera, 14).Resize(200, 80)
	tile := v.TileAt(camera)
	require.EqualValues(t, 14, tile.Z)
	assert.True(t, tile.Bound().Contains(camera))

	// 400x320 dots at 256 px per tile must cross at least one border each way
	cols, rows := v.TileEdges()
	assert.NotEmpty(t, cols)
	assert.NotEmpty(t, rows)
	for _, c := range cols {
		assert.True(t, c >= 0 && c < 200)
	}
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, -1, floorDiv(-1, 2))
	assert.Equal(t, -2, floorDiv(-4, 2))
	assert.Equal(t, 1, floorDiv(3, 2))
}
