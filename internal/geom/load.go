package geom

import (
	"path/filepath"
	"strings"

	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// Extensions lists the file types Load understands, for the file explorer.
var Extensions = []string{".geojson", ".json", ".wkt", ".kml", ".csv", ".shp"}

// Supported reports whether Load can read path.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load reads any supported file into a FeatureCollection.
func Load(path string) (*geojson.FeatureCollection, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".geojson", ".json":
		return LoadGeoJSON(path)
	case ".wkt":
		return LoadWKT(path)
	case ".kml":
		return LoadKML(path)
	case ".csv":
		return LoadCSV(path)
	case ".shp":
		return LoadShapefile(path)
	}
	return nil, errors.Wrapf(ErrUnsupported, "file type %q", ext)
}

// Save writes fc to path, as a shapefile for .shp and GeoJSON otherwise.
func Save(path string, fc *geojson.FeatureCollection) error {
	if strings.EqualFold(filepath.Ext(path), ".shp") {
		return ExportShapefile(path, fc)
	}
	return SaveGeoJSON(path, fc)
}
