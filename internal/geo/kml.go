package geo

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/model"
)

// KML is defined on geographic WGS84 coordinates, so no reprojection is
// needed; coordinates are "lon,lat[,alt]" triples separated by whitespace.

type kmlPlacemark struct {
	Name          string      `xml:"name"`
	Polygon       *kmlPolygon `xml:"Polygon"`
	MultiGeometry *kmlMulti   `xml:"MultiGeometry"`
}

type kmlMulti struct {
	Polygons []kmlPolygon `xml:"Polygon"`
}

type kmlPolygon struct {
	Outer kmlBoundary   `xml:"outerBoundaryIs"`
	Inner []kmlBoundary `xml:"innerBoundaryIs"`
}

type kmlBoundary struct {
	LinearRing struct {
		Coordinates string `xml:"coordinates"`
	} `xml:"LinearRing"`
}

// parseKML walks the document with a token decoder so Placemarks are found at
// any Folder nesting depth.
func parseKML(data []byte) ([]model.PolygonRecord, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false

	var records []model.PolygonRecord
	for {
		tok, err := dec.Token()
		if err != nil {
			break // io.EOF or malformed trailing content; fail below if nothing parsed
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "Placemark" {
			continue
		}

		var pm kmlPlacemark
		if err := dec.DecodeElement(&pm, &start); err != nil {
			return nil, fmt.Errorf("malformed Placemark: %w", err)
		}

		geom, err := pm.geometry()
		if err != nil {
			return nil, err
		}
		if geom == nil {
			continue // Placemark without polygon geometry (points, lines)
		}
		records = append(records, model.PolygonRecord{
			Name:     pm.Name,
			Geometry: geom,
		})
	}

	if records == nil {
		return nil, fmt.Errorf("no polygon Placemarks found")
	}
	return records, nil
}

func (pm *kmlPlacemark) geometry() (orb.Geometry, error) {
	if pm.Polygon != nil {
		return pm.Polygon.ring()
	}
	if pm.MultiGeometry != nil && len(pm.MultiGeometry.Polygons) > 0 {
		mp := make(orb.MultiPolygon, 0, len(pm.MultiGeometry.Polygons))
		for i := range pm.MultiGeometry.Polygons {
			poly, err := pm.MultiGeometry.Polygons[i].ring()
			if err != nil {
				return nil, err
			}
			mp = append(mp, poly)
		}
		return mp, nil
	}
	return nil, nil
}

func (p *kmlPolygon) ring() (orb.Polygon, error) {
	outer, err := parseCoordinates(p.Outer.LinearRing.Coordinates)
	if err != nil {
		return nil, err
	}
	poly := orb.Polygon{outer}
	for i := range p.Inner {
		hole, err := parseCoordinates(p.Inner[i].LinearRing.Coordinates)
		if err != nil {
			return nil, err
		}
		poly = append(poly, hole)
	}
	return poly, nil
}

func parseCoordinates(raw string) (orb.Ring, error) {
	fields := strings.Fields(raw)
	if len(fields) < 3 {
		return nil, fmt.Errorf("LinearRing with %d coordinates", len(fields))
	}

	ring := make(orb.Ring, 0, len(fields)+1)
	for _, f := range fields {
		parts := strings.Split(f, ",")
		if len(parts) < 2 {
			return nil, fmt.Errorf("bad coordinate tuple %q", f)
		}
		lon, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, fmt.Errorf("bad longitude %q: %w", parts[0], err)
		}
		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("bad latitude %q: %w", parts[1], err)
		}
		ring = append(ring, orb.Point{lon, lat})
	}

	// KML rings are supposed to close themselves; repair ones that don't.
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring, nil
}
