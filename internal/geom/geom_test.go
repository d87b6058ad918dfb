package geom

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() orb.Polygon {
	return orb.Polygon{{
		{112.23, -7.56}, {112.24, -7.56}, {112.24, -7.55}, {112.23, -7.55}, {112.23, -7.56},
	}}
}

func TestNormalize(t *testing.T) {
	p := orb.Point{1, 2}
	assert.Equal(t, p, Normalize(orb.MultiPoint{p}))
	assert.Equal(t, square(), Normalize(orb.MultiPolygon{square()}))

	open := orb.Ring{{0, 0}, {1, 0}, {1, 1}}
	poly, ok := Normalize(open).(orb.Polygon)
	require.True(t, ok)
	require.Len(t, poly[0], 4)
	assert.True(t, poly[0].Closed())

	ls := orb.LineString{{0, 0}, {1, 1}}
	assert.Equal(t, ls, Normalize(ls))
	assert.False(t, Editable(ls))
	assert.True(t, Editable(p))
	assert.True(t, Editable(square()))
}

func TestVerticesSkipsClosingPoint(t *testing.T) {
	assert.Len(t, Vertices(square()), 4)
	assert.Equal(t, []orb.Point{{3, 4}}, Vertices(orb.Point{3, 4}))

	// three-point rings are closed too, even though orb.Ring.Closed says no
	sliver := orb.Polygon{{{0, 0}, {1, 1}, {0, 0}}}
	assert.Equal(t, []orb.Point{{0, 0}, {1, 1}}, Vertices(sliver))
	assert.Equal(t, sliver, Normalize(sliver))
	assert.Equal(t, orb.Polygon{{{0, 0}, {1, 1}, {0, 0}}}, Normalize(orb.Ring{{0, 0}, {1, 1}}))
}

func TestDegenerate(t *testing.T) {
	tests := []struct {
		name string
		poly orb.Polygon
		want bool
	}{
		{"square", square(), false},
		{"open triangle", orb.Polygon{{{0, 0}, {1, 0}, {1, 1}}}, false},
		{"empty", orb.Polygon{}, true},
		{"sliver", orb.Polygon{{{0, 0}, {1, 1}, {0, 0}}}, true},
		{"same point", orb.Polygon{{{2, 2}, {2, 2}, {2, 2}, {2, 2}}}, true},
		{"repeated vertices", orb.Polygon{{{0, 0}, {1, 1}, {1, 1}, {0, 0}, {0, 0}}}, true},
		{"collinear", orb.Polygon{{{0, 0}, {1, 1}, {2, 2}, {0, 0}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Degenerate(tt.poly))
		})
	}
}

func TestCloneCollectionDoesNotAlias(t *testing.T) {
	f := geojson.NewFeature(square())
	f.Properties["name"] = "field"
	fc := NewCollection(f)

	cp := CloneCollection(fc)
	cp.Features[0].Geometry.(orb.Polygon)[0][0] = orb.Point{0, 0}
	cp.Features[0].Properties["name"] = "changed"

	assert.Equal(t, orb.Point{112.23, -7.56}, fc.Features[0].Geometry.(orb.Polygon)[0][0])
	assert.Equal(t, "field", fc.Features[0].Properties["name"])
	assert.Empty(t, CloneCollection(nil).Features)
}

func TestDecodeGeoJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collection", `{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]},"properties":{}}]}`, "Point"},
		{"feature", `{"type":"Feature","geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]},"properties":null}`, "Polygon"},
		{"bare multipoint", `{"type":"MultiPoint","coordinates":[[1,2]]}`, "Point"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc, err := DecodeGeoJSON([]byte(tt.in))
			require.NoError(t, err)
			require.Len(t, fc.Features, 1)
			assert.Equal(t, tt.want, fc.Features[0].Geometry.GeoJSONType())
		})
	}

	_, err := DecodeGeoJSON([]byte(`{"features":[]}`))
	assert.Error(t, err)
	_, err = DecodeGeoJSON([]byte(`{"type":"FeatureCollection","features":[]}`))
	assert.True(t, errors.Is(err, ErrNoGeometry))
}

func TestParseWKT(t *testing.T) {
	g, err := ParseWKT("POLYGON((0 0, 4 0, 4 4, 0 4, 0 0))")
	require.NoError(t, err)
	assert.Equal(t, "Polygon", g.GeoJSONType())

	g, err = ParseWKT("  POINT(112.2 -7.5) ")
	require.NoError(t, err)
	assert.Equal(t, orb.Point{112.2, -7.5}, g)

	_, err = ParseWKT("")
	assert.Error(t, err)
	_, err = ParseWKT("CIRCLE(1 2)")
	assert.Error(t, err)

	assert.True(t, strings.HasPrefix(FormatWKT(square()), "POLYGON"))
	assert.Equal(t, "", FormatWKT(nil))
}

func TestDecodeKML(t *testing.T) {
	doc := `<?xml version="1.0"?>
<kml><Document>
  <Placemark><name>well</name><Point><coordinates>112.1,-7.5,0</coordinates></Point></Placemark>
  <Placemark><Polygon><outerBoundaryIs><LinearRing><coordinates>0,0 1,0 1,1 0,0</coordinates></LinearRing></outerBoundaryIs></Polygon></Placemark>
</Document></kml>`
	fc, err := DecodeKML(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, orb.Point{112.1, -7.5}, fc.Features[0].Geometry)
	assert.Equal(t, "well", fc.Features[0].Properties["name"])
	assert.Equal(t, "Polygon", fc.Features[1].Geometry.GeoJSONType())

	_, err = DecodeKML(strings.NewReader(`<kml></kml>`))
	assert.True(t, errors.Is(err, ErrNoGeometry))
}

func TestDecodeCSV(t *testing.T) {
	fc, err := DecodeCSV(strings.NewReader("name,Latitude,lng\nwell,-7.5,112.2\nbad,x,y\n"))
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, orb.Point{112.2, -7.5}, fc.Features[0].Geometry)
	assert.Equal(t, "well", fc.Features[0].Properties["name"])

	_, err = DecodeCSV(strings.NewReader("a,b\n1,2\n"))
	assert.Error(t, err)
}

func TestSaveAndLoadGeoJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shape.geojson")
	f := geojson.NewFeature(square())
	f.Properties["name"] = "field"
	require.NoError(t, Save(path, NewCollection(f)))

	fc, err := Load(path)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, square(), fc.Features[0].Geometry)
	assert.Equal(t, "field", fc.Features[0].Properties["name"])
}

func TestShapefileExportAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "area.shp")
	f := geojson.NewFeature(square())
	f.Properties["name"] = "field"
	require.NoError(t, Save(path, NewCollection(f)))

	for _, ext := range []string{".shp", ".shx", ".dbf"} {
		_, err := os.Stat(strings.TrimSuffix(path, ".shp") + ext)
		require.NoError(t, err, ext)
	}

	fc, err := LoadShapefile(path)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	poly, ok := fc.Features[0].Geometry.(orb.Polygon)
	require.True(t, ok)
	assert.ElementsMatch(t, Vertices(square()), Vertices(poly))
	assert.Equal(t, orb.CCW, poly[0].Orientation())
	assert.Equal(t, "field", fc.Features[0].Properties["name"])
	_, err = os.Stat(filepath.Join(dir, "areadbf"))
	assert.True(t, os.IsNotExist(err), "attribute table left under the undotted name")

	// exporting again replaces the earlier attribute table
	f.Properties["name"] = "orchard"
	f.Properties["crop"] = "rice"
	require.NoError(t, ExportShapefile(path, NewCollection(f)))
	fc, err = LoadShapefile(path)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "orchard", fc.Features[0].Properties["name"])
	assert.Equal(t, "rice", fc.Features[0].Properties["crop"])

	err = ExportShapefile(path, NewCollection(geojson.NewFeature(orb.LineString{{0, 0}, {1, 1}})))
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	_, err := Load("shape.gpx")
	assert.True(t, errors.Is(err, ErrUnsupported))
	assert.False(t, Supported("shape.gpx"))
	assert.True(t, Supported("SHAPE.GeoJSON"))
}
