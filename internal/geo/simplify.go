package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"

	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/model"
)

// Tolerance thresholds keyed off the aggregate vertex count of the joined
// set. A single global tolerance avoids per-polygon decisions while bounding
// total rendering cost; the output is a display-quality approximation, not an
// exact-preserving transform.
const (
	toleranceLarge  = 0.0005  // > 20000 vertices
	toleranceMedium = 0.0001  // > 5000 vertices
	toleranceSmall  = 0.00002 // > 1000 vertices
)

// ToleranceFor picks the Douglas-Peucker tolerance (degrees) for a record set
// with the given total vertex count. Zero means no simplification.
func ToleranceFor(totalVertices int) float64 {
	switch {
	case totalVertices > 20000:
		return toleranceLarge
	case totalVertices > 5000:
		return toleranceMedium
	case totalVertices > 1000:
		return toleranceSmall
	default:
		return 0
	}
}

// Simplify fills in the Display geometry of every record. With enabled=false
// (or a below-threshold vertex total) the display geometry is the original.
// Records are modified in place; originals are never touched.
func Simplify(records []*model.JoinedRecord, enabled bool) {
	if !enabled {
		for _, r := range records {
			r.Display = r.Geometry
		}
		return
	}

	total := 0
	for _, r := range records {
		total += model.VertexCount(r.Geometry)
	}

	tol := ToleranceFor(total)
	if tol == 0 {
		for _, r := range records {
			r.Display = r.Geometry
		}
		return
	}

	dp := simplify.DouglasPeucker(tol)
	for _, r := range records {
		r.Display = dp.Simplify(orb.Clone(r.Geometry))
	}
}
