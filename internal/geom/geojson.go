package geom

import (
	"encoding/json"
	"os"

	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// DecodeGeoJSON accepts a FeatureCollection, a Feature or a bare geometry and
// always returns a FeatureCollection with normalized geometries.
func DecodeGeoJSON(data []byte) (*geojson.FeatureCollection, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, errors.Wrap(err, "geojson")
	}
	var fc *geojson.FeatureCollection
	switch head.Type {
	case "":
		return nil, errors.New("invalid geojson: missing type")
	case "FeatureCollection":
		c, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, errors.Wrap(err, "geojson feature collection")
		}
		fc = c
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, errors.Wrap(err, "geojson feature")
		}
		fc = NewCollection(f)
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, errors.Wrapf(err, "geojson %s", head.Type)
		}
		fc = NewCollection(geojson.NewFeature(g.Geometry()))
	}
	for _, f := range fc.Features {
		f.Geometry = Normalize(f.Geometry)
	}
	if len(fc.Features) == 0 {
		return nil, ErrNoGeometry
	}
	return fc, nil
}

// LoadGeoJSON reads a GeoJSON file.
func LoadGeoJSON(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeGeoJSON(data)
}

// SaveGeoJSON writes fc as indented GeoJSON.
func SaveGeoJSON(path string, fc *geojson.FeatureCollection) error {
	if fc == nil {
		fc = geojson.NewFeatureCollection()
	}
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode geojson")
	}
	return os.WriteFile(path, data, 0o644)
}
