package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/config"
	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/server"
)

const testKML = `<kml><Document>
<Placemark><name>AB12xxxx</name><Polygon><outerBoundaryIs><LinearRing>
<coordinates>32.5,0.5 32.6,0.5 32.6,0.6 32.5,0.5</coordinates>
</LinearRing></outerBoundaryIs></Polygon></Placemark>
<Placemark><name>ZZ99yyyy</name><Polygon><outerBoundaryIs><LinearRing>
<coordinates>33.0,1.0 33.1,1.0 33.1,1.1 33.0,1.0</coordinates>
</LinearRing></outerBoundaryIs></Polygon></Placemark>
</Document></kml>`

const testCSV = "FarmerCode,Village,Group\nAB12,V1,G1\nZZ99,V2,G2\n"

func newTestServer(t *testing.T) (*server.Server, *httptest.Server) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/plots.kml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testKML))
	})
	mux.HandleFunc("/groups.csv", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testCSV))
	})
	src := httptest.NewServer(mux)
	t.Cleanup(src.Close)

	cfg := config.DefaultConfig()
	cfg.Viewer.PrefixLength = 4
	return server.NewServer(cfg), src
}

func doJSON(t *testing.T, s *server.Server, method, path string, body any, out any) int {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	if out != nil && w.Code < 300 {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("unmarshal response %s: %v", w.Body.String(), err)
		}
	}
	return w.Code
}

func loadDataset(t *testing.T, s *server.Server, src *httptest.Server) map[string]any {
	t.Helper()

	var summary map[string]any
	code := doJSON(t, s, http.MethodPost, "/api/datasets", map[string]any{
		"polygonUrl":     src.URL + "/plots.kml",
		"spreadsheetUrl": src.URL + "/groups.csv",
	}, &summary)
	if code != http.StatusOK {
		t.Fatalf("load returned status %d", code)
	}
	return summary
}

func TestStatusEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	var status map[string]any
	if code := doJSON(t, s, http.MethodGet, "/api/status", nil, &status); code != http.StatusOK {
		t.Fatalf("status returned %d", code)
	}
	if status["ready"] != true {
		t.Errorf("status = %v", status)
	}
	if status["prefixLength"] != float64(4) {
		t.Errorf("prefixLength = %v, want 4", status["prefixLength"])
	}
}

func TestLoadAndMap(t *testing.T) {
	s, src := newTestServer(t)
	summary := loadDataset(t, s, src)

	if summary["count"] != float64(2) {
		t.Errorf("joined count = %v, want 2", summary["count"])
	}
	id := summary["id"].(string)

	var doc map[string]any
	if code := doJSON(t, s, http.MethodGet, "/api/datasets/"+id+"/map", nil, &doc); code != http.StatusOK {
		t.Fatalf("map returned %d", code)
	}
	if doc["count"] != float64(2) || doc["fallback"] != false {
		t.Errorf("map doc count/fallback = %v/%v", doc["count"], doc["fallback"])
	}

	fc := doc["features"].(map[string]any)
	if n := len(fc["features"].([]any)); n != 2 {
		t.Errorf("feature collection has %d features, want 2", n)
	}
}

func TestMapFilterAndFallback(t *testing.T) {
	s, src := newTestServer(t)
	id := loadDataset(t, s, src)["id"].(string)

	var doc map[string]any
	doJSON(t, s, http.MethodGet, "/api/datasets/"+id+"/map?village=V1", nil, &doc)
	if doc["count"] != float64(1) {
		t.Errorf("village V1 matched %v records, want 1", doc["count"])
	}

	// A filter that matches nothing falls back to the full set.
	doJSON(t, s, http.MethodGet, "/api/datasets/"+id+"/map?village=V9", nil, &doc)
	if doc["fallback"] != true {
		t.Error("empty filter result should fall back")
	}
	if doc["count"] != float64(2) {
		t.Errorf("fallback rendered %v records, want the full 2", doc["count"])
	}
}

func TestOptionsCrossFilter(t *testing.T) {
	s, src := newTestServer(t)
	id := loadDataset(t, s, src)["id"].(string)

	var opts map[string]any
	doJSON(t, s, http.MethodGet, "/api/datasets/"+id+"/options?village=V1", nil, &opts)

	groups := opts["groups"].([]any)
	if len(groups) != 1 || groups[0] != "G1" {
		t.Errorf("groups for V1 = %v, want [G1]", groups)
	}
}

func TestPreviewEndpoints(t *testing.T) {
	s, src := newTestServer(t)
	id := loadDataset(t, s, src)["id"].(string)

	var preview map[string]any
	doJSON(t, s, http.MethodGet, "/api/datasets/"+id+"/preview?source=polygons", nil, &preview)
	if n := len(preview["polygons"].([]any)); n != 2 {
		t.Errorf("polygon preview has %d entries, want 2", n)
	}

	doJSON(t, s, http.MethodGet, "/api/datasets/"+id+"/preview?source=rows", nil, &preview)
	if n := len(preview["rows"].([]any)); n != 2 {
		t.Errorf("row preview has %d entries, want 2", n)
	}

	doJSON(t, s, http.MethodGet, "/api/datasets/"+id+"/preview?source=rows&limit=1", nil, &preview)
	if n := len(preview["rows"].([]any)); n != 1 {
		t.Errorf("limited row preview has %d entries, want 1", n)
	}
}

func TestLoadErrorMapping(t *testing.T) {
	s, src := newTestServer(t)

	// Unreachable polygon file reports as a fetch failure.
	code := doJSON(t, s, http.MethodPost, "/api/datasets", map[string]any{
		"polygonUrl":     src.URL + "/missing.kml",
		"spreadsheetUrl": src.URL + "/groups.csv",
	}, nil)
	if code != http.StatusBadGateway {
		t.Errorf("fetch failure returned %d, want 502", code)
	}

	// A spreadsheet that parses but has no farmer-code column is a parse error.
	mux := http.NewServeMux()
	mux.HandleFunc("/bad.csv", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "Plot,Owner\np1,o1\n")
	})
	bad := httptest.NewServer(mux)
	defer bad.Close()

	code = doJSON(t, s, http.MethodPost, "/api/datasets", map[string]any{
		"polygonUrl":     src.URL + "/plots.kml",
		"spreadsheetUrl": bad.URL + "/bad.csv",
	}, nil)
	if code != http.StatusUnprocessableEntity {
		t.Errorf("parse failure returned %d, want 422", code)
	}
}

func TestDatasetNotFound(t *testing.T) {
	s, _ := newTestServer(t)
	if code := doJSON(t, s, http.MethodGet, "/api/datasets/nope", nil, nil); code != http.StatusNotFound {
		t.Errorf("unknown dataset returned %d, want 404", code)
	}
}
