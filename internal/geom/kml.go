package geom

import (
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

type kmlRing struct {
	Coordinates string `xml:"LinearRing>coordinates"`
}

type kmlPolygon struct {
	Outer kmlRing   `xml:"outerBoundaryIs"`
	Inner []kmlRing `xml:"innerBoundaryIs"`
}

type kmlPoint struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPlacemark struct {
	Name    string      `xml:"name"`
	Point   *kmlPoint   `xml:"Point"`
	Polygon *kmlPolygon `xml:"Polygon"`
}

type kmlDoc struct {
	Placemarks    []kmlPlacemark `xml:"Placemark"`
	DocPlacemarks []kmlPlacemark `xml:"Document>Placemark"`
}

// LoadKML extracts Point and Polygon placemarks from a KML file.
// KML coordinates are "lon,lat[,alt]"; we ignore altitude.
func LoadKML(path string) (*geojson.FeatureCollection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeKML(f)
}

// DecodeKML reads KML from r.
func DecodeKML(r io.Reader) (*geojson.FeatureCollection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "kml")
	}
	fc := geojson.NewFeatureCollection()
	for _, pm := range append(doc.Placemarks, doc.DocPlacemarks...) {
		var g orb.Geometry
		switch {
		case pm.Point != nil:
			pts := parseKMLCoords(pm.Point.Coordinates)
			if len(pts) == 0 {
				continue
			}
			g = pts[0]
		case pm.Polygon != nil:
			outer := parseKMLCoords(pm.Polygon.Outer.Coordinates)
			if len(outer) < 3 {
				continue
			}
			poly := orb.Polygon{orb.Ring(outer)}
			for _, in := range pm.Polygon.Inner {
				if pts := parseKMLCoords(in.Coordinates); len(pts) >= 3 {
					poly = append(poly, orb.Ring(pts))
				}
			}
			g = Normalize(poly)
		default:
			continue
		}
		feat := geojson.NewFeature(g)
		if name := strings.TrimSpace(pm.Name); name != "" {
			feat.Properties["name"] = name
		}
		fc.Append(feat)
	}
	if len(fc.Features) == 0 {
		return nil, errors.Wrap(ErrNoGeometry, "kml")
	}
	return fc, nil
}

// parseKMLCoords splits whitespace separated "lon,lat[,alt]" tuples.
func parseKMLCoords(s string) []orb.Point {
	var out []orb.Point
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, orb.Point{lon, lat})
	}
	return out
}
