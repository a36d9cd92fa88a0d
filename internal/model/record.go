package model

import (
	"strings"

	"github.com/paulmach/orb"
)

// PolygonRecord is one named geometry from the polygon file. The geometry is
// always geographic WGS84 (lon/lat degrees) by the time it leaves the parser.
type PolygonRecord struct {
	Name     string
	Geometry orb.Geometry // orb.Polygon or orb.MultiPolygon
}

// DeriveCode returns the farmer code for a polygon name: the first prefixLen
// characters, uppercased and trimmed. Deterministic and idempotent.
func DeriveCode(name string, prefixLen int) string {
	r := []rune(name)
	if len(r) > prefixLen {
		r = r[:prefixLen]
	}
	return strings.ToUpper(strings.TrimSpace(string(r)))
}

// SpreadsheetRow is one data row from the spreadsheet with its identity key
// and resolved village/group values pulled out of the attribute set.
type SpreadsheetRow struct {
	FarmerCode string // uppercased, trimmed
	Village    string
	Group      string
	Attributes map[string]Scalar // keyed by original (trimmed) column header
}

// JoinedRecord is a polygon matched to a spreadsheet row. Display holds the
// simplified geometry when simplification ran, otherwise it equals Geometry.
type JoinedRecord struct {
	Name     string
	Code     string
	Geometry orb.Geometry
	Display  orb.Geometry
	Village  string
	Group    string
	Attrs    map[string]Scalar
}

// VertexCount counts every coordinate in every ring of g, including holes,
// summed across parts for multi-part geometries.
func VertexCount(g orb.Geometry) int {
	switch geom := g.(type) {
	case orb.Polygon:
		n := 0
		for _, ring := range geom {
			n += len(ring)
		}
		return n
	case orb.MultiPolygon:
		n := 0
		for _, poly := range geom {
			for _, ring := range poly {
				n += len(ring)
			}
		}
		return n
	default:
		return 0
	}
}
