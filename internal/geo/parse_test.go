package geo_test

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/paulmach/orb"

	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/geo"
	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/model"
)

const sampleKML = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Folder>
      <Placemark>
        <name>AB12CD34 plot</name>
        <Polygon>
          <outerBoundaryIs>
            <LinearRing>
              <coordinates>
                32.5,0.5,0 32.6,0.5,0 32.6,0.6,0 32.5,0.6,0 32.5,0.5,0
              </coordinates>
            </LinearRing>
          </outerBoundaryIs>
        </Polygon>
      </Placemark>
      <Placemark>
        <Polygon>
          <outerBoundaryIs>
            <LinearRing>
              <coordinates>33.0,1.0 33.1,1.0 33.1,1.1</coordinates>
            </LinearRing>
          </outerBoundaryIs>
        </Polygon>
      </Placemark>
    </Folder>
  </Document>
</kml>`

func TestParsePolygonsKML(t *testing.T) {
	records, err := geo.ParsePolygons([]byte(sampleKML))
	if err != nil {
		t.Fatalf("ParsePolygons failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	if records[0].Name != "AB12CD34 plot" {
		t.Errorf("Name = %q", records[0].Name)
	}
	poly, ok := records[0].Geometry.(orb.Polygon)
	if !ok {
		t.Fatalf("geometry type = %T, want orb.Polygon", records[0].Geometry)
	}
	if len(poly[0]) != 5 {
		t.Errorf("outer ring has %d points, want 5", len(poly[0]))
	}
	if poly[0][0] != (orb.Point{32.5, 0.5}) {
		t.Errorf("first vertex = %v", poly[0][0])
	}

	// Nameless placemark falls back to its ordinal index.
	if records[1].Name != "1" {
		t.Errorf("fallback name = %q, want \"1\"", records[1].Name)
	}
	// Unclosed rings are closed during parsing.
	ring := records[1].Geometry.(orb.Polygon)[0]
	if ring[0] != ring[len(ring)-1] {
		t.Error("ring was not closed")
	}
}

func TestParsePolygonsKMLMultiGeometry(t *testing.T) {
	kml := `<kml><Document><Placemark><name>ZZ99</name><MultiGeometry>
	<Polygon><outerBoundaryIs><LinearRing><coordinates>0,0 1,0 1,1 0,0</coordinates></LinearRing></outerBoundaryIs></Polygon>
	<Polygon><outerBoundaryIs><LinearRing><coordinates>2,2 3,2 3,3 2,2</coordinates></LinearRing></outerBoundaryIs></Polygon>
	</MultiGeometry></Placemark></Document></kml>`

	records, err := geo.ParsePolygons([]byte(kml))
	if err != nil {
		t.Fatalf("ParsePolygons failed: %v", err)
	}
	mp, ok := records[0].Geometry.(orb.MultiPolygon)
	if !ok {
		t.Fatalf("geometry type = %T, want orb.MultiPolygon", records[0].Geometry)
	}
	if len(mp) != 2 {
		t.Errorf("multipolygon has %d parts, want 2", len(mp))
	}
}

func TestParsePolygonsGeoJSON(t *testing.T) {
	gj := `{"type":"FeatureCollection","features":[
	  {"type":"Feature","properties":{"name":"ab12xxxx"},"geometry":{"type":"Polygon","coordinates":[[[32.5,0.5],[32.6,0.5],[32.6,0.6],[32.5,0.5]]]}},
	  {"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[0,0]}}
	]}`

	records, err := geo.ParsePolygons([]byte(gj))
	if err != nil {
		t.Fatalf("ParsePolygons failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1 (points are skipped)", len(records))
	}
	if records[0].Name != "ab12xxxx" {
		t.Errorf("lowercase name property not picked up: %q", records[0].Name)
	}
}

func TestParsePolygonsGeoJSONWebMercator(t *testing.T) {
	// Web-mercator meters for lon/lat 10°,10°.
	const x10, y10 = 1113194.9079327358, 1118889.9748579597
	gj := fmt.Sprintf(`{"type":"FeatureCollection",
	  "crs":{"type":"name","properties":{"name":"urn:ogc:def:crs:EPSG::3857"}},
	  "features":[{"type":"Feature","properties":{"Name":"AB12"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[%f,0],[%f,%f],[0,0]]]}}]}`,
		x10, x10, y10)

	records, err := geo.ParsePolygons([]byte(gj))
	if err != nil {
		t.Fatalf("ParsePolygons failed: %v", err)
	}

	ring := records[0].Geometry.(orb.Polygon)[0]
	want := []orb.Point{{0, 0}, {10, 0}, {10, 10}, {0, 0}}
	for i, p := range ring {
		if math.Abs(p[0]-want[i][0]) > 1e-6 || math.Abs(p[1]-want[i][1]) > 1e-6 {
			t.Errorf("vertex %d = %v, want %v", i, p, want[i])
		}
	}
}

func TestParsePolygonsGeoJSONForeignCRS(t *testing.T) {
	// A projected national grid has no conversion path here.
	gj := `{"type":"FeatureCollection",
	  "crs":{"type":"name","properties":{"name":"urn:ogc:def:crs:EPSG::27700"}},
	  "features":[{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}]}`

	_, err := geo.ParsePolygons([]byte(gj))
	if err == nil {
		t.Fatal("ParsePolygons should reject an unconvertible CRS")
	}
	if model.KindOf(err) != model.ErrParse {
		t.Errorf("error kind = %v, want ErrParse", model.KindOf(err))
	}
}

func TestParsePolygonsGeoJSONDeclaredWGS84(t *testing.T) {
	gj := `{"type":"FeatureCollection",
	  "crs":{"type":"name","properties":{"name":"EPSG:4326"}},
	  "features":[{"type":"Feature","properties":{"Name":"AB12"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}]}`

	records, err := geo.ParsePolygons([]byte(gj))
	if err != nil {
		t.Fatalf("ParsePolygons failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("got %d records, want 1", len(records))
	}
}

func TestParsePolygonsGarbage(t *testing.T) {
	for _, input := range []string{"", "not a polygon file", `{"type":"bogus"}`} {
		_, err := geo.ParsePolygons([]byte(input))
		if err == nil {
			t.Errorf("ParsePolygons(%q) should fail", input)
			continue
		}
		if model.KindOf(err) != model.ErrParse {
			t.Errorf("ParsePolygons(%q) error kind = %v, want ErrParse", input, model.KindOf(err))
		}
	}
}

func TestParsePolygonsBOM(t *testing.T) {
	input := "\xEF\xBB\xBF" + strings.TrimSpace(sampleKML)
	if _, err := geo.ParsePolygons([]byte(input)); err != nil {
		t.Fatalf("ParsePolygons should tolerate a UTF-8 BOM: %v", err)
	}
}
