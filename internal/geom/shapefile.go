package geom

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// LoadShapefile reads Point and Polygon records from an ESRI shapefile. The
// first part of a polygon record is taken as the outer ring, the rest as holes.
func LoadShapefile(path string) (*geojson.FeatureCollection, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "shapefile")
	}
	defer r.Close()

	fields := r.Fields()
	fc := geojson.NewFeatureCollection()
	for r.Next() {
		n, s := r.Shape()
		var g orb.Geometry
		switch v := s.(type) {
		case *shp.Point:
			g = orb.Point{v.X, v.Y}
		case *shp.Polygon:
			poly := polygonFromParts(v.Parts, v.Points)
			if len(poly) == 0 {
				continue
			}
			g = Normalize(poly)
		default:
			continue
		}
		feat := geojson.NewFeature(g)
		for i, fld := range fields {
			name := strings.TrimRight(string(fld.Name[:]), "\x00 ")
			if name == "" {
				continue
			}
			// go-shp pads unwritten bytes with NULs
			if v := strings.Trim(r.ReadAttribute(n, i), "\x00 "); v != "" {
				feat.Properties[name] = v
			}
		}
		fc.Append(feat)
	}
	if err := r.Err(); err != nil {
		return nil, errors.Wrap(err, "shapefile")
	}
	if len(fc.Features) == 0 {
		return nil, errors.Wrap(ErrNoGeometry, "shapefile")
	}
	return fc, nil
}

func polygonFromParts(parts []int32, pts []shp.Point) orb.Polygon {
	var poly orb.Polygon
	for i, start := range parts {
		end := int32(len(pts))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if start < 0 || end > int32(len(pts)) || end-start < 3 {
			continue
		}
		ring := make(orb.Ring, 0, end-start)
		for _, p := range pts[start:end] {
			ring = append(ring, orb.Point{p.X, p.Y})
		}
		// GeoJSON winding: outer counter-clockwise, holes clockwise
		wantCCW := len(poly) == 0
		if (ring.Orientation() == orb.CCW) != wantCCW {
			ring.Reverse()
		}
		poly = append(poly, ring)
	}
	return poly
}

// ExportShapefile writes fc to path (plus the .shx/.dbf siblings). All
// features must share one geometry type; properties become string columns.
func ExportShapefile(path string, fc *geojson.FeatureCollection) error {
	if fc == nil || len(fc.Features) == 0 {
		return errors.Wrap(ErrNoGeometry, "shapefile export")
	}
	var st shp.ShapeType
	switch fc.Features[0].Geometry.(type) {
	case orb.Point:
		st = shp.POINT
	case orb.Polygon:
		st = shp.POLYGON
	default:
		return errors.Wrapf(ErrUnsupported, "shapefile export of %s", fc.Features[0].Geometry.GeoJSONType())
	}

	keys := propertyKeys(fc)
	fields := make([]shp.Field, len(keys))
	for i, k := range keys {
		fields[i] = shp.StringField(dbfName(k), 254)
	}

	w, err := shp.Create(path, st)
	if err != nil {
		return errors.Wrap(err, "shapefile export")
	}
	werr := writeRecords(w, st, keys, fields, fc)
	w.Close()
	if werr != nil {
		return werr
	}
	if len(fields) > 0 {
		return fixDBFName(path)
	}
	return nil
}

func writeRecords(w *shp.Writer, st shp.ShapeType, keys []string, fields []shp.Field, fc *geojson.FeatureCollection) error {
	if len(fields) > 0 {
		if err := w.SetFields(fields); err != nil {
			return errors.Wrap(err, "shapefile fields")
		}
	}
	for _, f := range fc.Features {
		var row int32
		switch g := f.Geometry.(type) {
		case orb.Point:
			if st != shp.POINT {
				return errors.Wrap(ErrUnsupported, "mixed geometry types")
			}
			row = w.Write(&shp.Point{X: g[0], Y: g[1]})
		case orb.Polygon:
			if st != shp.POLYGON {
				return errors.Wrap(ErrUnsupported, "mixed geometry types")
			}
			pl := shp.Polygon(*shp.NewPolyLine(shpParts(g)))
			row = w.Write(&pl)
		default:
			return errors.Wrapf(ErrUnsupported, "shapefile export of %s", f.Geometry.GeoJSONType())
		}
		for i, k := range keys {
			v := ""
			if raw, ok := f.Properties[k]; ok && raw != nil {
				v = fmt.Sprint(raw)
			}
			if err := w.WriteAttribute(int(row), i, v); err != nil {
				return errors.Wrapf(err, "shapefile attribute %s", k)
			}
		}
	}
	return nil
}

// fixDBFName moves the attribute table go-shp v0.1.1 writes as "<base>dbf"
// (no dot) to "<base>.dbf", where readers look for it. A table left by an
// earlier export is replaced.
func fixDBFName(path string) error {
	base := path
	if strings.HasSuffix(strings.ToLower(path), ".shp") {
		base = path[:len(path)-len(".shp")]
	}
	if _, err := os.Stat(base + "dbf"); err != nil {
		// a fixed go-shp already writes the dotted name
		return nil
	}
	if err := os.Rename(base+"dbf", base+".dbf"); err != nil {
		return errors.Wrap(err, "shapefile attribute table")
	}
	return nil
}

func shpParts(poly orb.Polygon) [][]shp.Point {
	parts := make([][]shp.Point, 0, len(poly))
	for i, r := range poly {
		ring := closeRing(orb.Ring(append([]orb.Point(nil), r...)))
		// outer ring clockwise, holes counter-clockwise
		wantCW := i == 0
		if (ring.Orientation() == orb.CW) != wantCW {
			ring.Reverse()
		}
		pts := make([]shp.Point, len(ring))
		for j, p := range ring {
			pts[j] = shp.Point{X: p[0], Y: p[1]}
		}
		parts = append(parts, pts)
	}
	return parts
}

func propertyKeys(fc *geojson.FeatureCollection) []string {
	seen := map[string]bool{}
	var keys []string
	for _, f := range fc.Features {
		for k := range f.Properties {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

// dbfName clips a property key to the 10 byte dBASE column limit.
func dbfName(k string) string {
	if len(k) > 10 {
		return k[:10]
	}
	return k
}
