package geom

import (
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// ParseWKT parses a single WKT geometry.
// Supported: POINT, MULTIPOINT, LINESTRING, POLYGON, MULTIPOLYGON (single members collapse).
func ParseWKT(s string) (orb.Geometry, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty wkt")
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "wkt")
	}
	return Normalize(g), nil
}

// ParseWKTCollection parses s and wraps the result in a one-feature collection.
func ParseWKTCollection(s string) (*geojson.FeatureCollection, error) {
	g, err := ParseWKT(s)
	if err != nil {
		return nil, err
	}
	return NewCollection(geojson.NewFeature(g)), nil
}

// LoadWKT reads a file holding one WKT geometry.
func LoadWKT(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseWKTCollection(string(data))
}

// FormatWKT renders g as WKT.
func FormatWKT(g orb.Geometry) string {
	if g == nil {
		return ""
	}
	return wkt.MarshalString(g)
}
