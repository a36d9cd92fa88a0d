package geo

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/project"

	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/model"
)

// wgs84Names are the CRS identifiers accepted as-is. GeoJSON per RFC 7946 is
// always WGS84; the legacy "crs" member is honored anyway.
var wgs84Names = map[string]bool{
	"epsg:4326":                     true,
	"urn:ogc:def:crs:epsg::4326":    true,
	"urn:ogc:def:crs:ogc:1.3:crs84": true,
	"crs84":                         true,
	"wgs84":                         true,
}

// mercatorNames are the web-mercator identifiers whose coordinates get
// reprojected to degrees on the way in.
var mercatorNames = map[string]bool{
	"epsg:3857":                  true,
	"urn:ogc:def:crs:epsg::3857": true,
	"epsg:900913":                true,
	"epsg:102100":                true,
}

func parseGeoJSON(data []byte) ([]model.PolygonRecord, error) {
	proj, err := crsProjection(data)
	if err != nil {
		return nil, err
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		// A bare Feature or Geometry is also acceptable input.
		if f, ferr := geojson.UnmarshalFeature(data); ferr == nil {
			fc = geojson.NewFeatureCollection()
			fc.Append(f)
		} else {
			return nil, fmt.Errorf("invalid GeoJSON: %w", err)
		}
	}

	var records []model.PolygonRecord
	for _, f := range fc.Features {
		switch f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
		default:
			continue // only polygonal features participate
		}
		g := f.Geometry
		if proj != nil {
			g = project.Geometry(g, proj)
		}
		records = append(records, model.PolygonRecord{
			Name:     featureName(f),
			Geometry: g,
		})
	}
	if records == nil {
		return nil, fmt.Errorf("no polygon features found")
	}
	return records, nil
}

// featureName reads the Name property, tolerating lowercase variants.
func featureName(f *geojson.Feature) string {
	for _, key := range []string{"Name", "name", "NAME"} {
		if v, ok := f.Properties[key]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return ""
}

// crsProjection maps a declared CRS to the projection that brings coordinates
// into WGS84 degrees. Absent or WGS84 references need none, web mercator is
// converted, anything else is rejected.
func crsProjection(data []byte) (orb.Projection, error) {
	var doc struct {
		CRS *struct {
			Properties struct {
				Name string `json:"name"`
			} `json:"properties"`
		} `json:"crs"`
	}
	if err := json.Unmarshal(data, &doc); err != nil || doc.CRS == nil {
		return nil, nil
	}
	name := strings.ToLower(strings.TrimSpace(doc.CRS.Properties.Name))
	switch {
	case name == "" || wgs84Names[name]:
		return nil, nil
	case mercatorNames[name]:
		return project.Mercator.ToWGS84, nil
	}
	return nil, fmt.Errorf("unsupported coordinate reference %q (expected WGS84 or web mercator)", doc.CRS.Properties.Name)
}
