package geo

import (
	"github.com/paulmach/orb"

	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/model"
)

// ViewportPadding is the fixed margin added on every side of the computed
// bounding box, in degrees.
const ViewportPadding = 0.01

// ViewportOf computes the padded bounding viewport over geometries. An empty
// set yields the default world view.
func ViewportOf(geoms []orb.Geometry) model.Viewport {
	var bound orb.Bound
	first := true
	for _, g := range geoms {
		if g == nil {
			continue
		}
		if first {
			bound = g.Bound()
			first = false
		} else {
			bound = bound.Union(g.Bound())
		}
	}
	if first {
		return model.WorldViewport()
	}
	v := model.Viewport{
		MinLon: bound.Min[0],
		MinLat: bound.Min[1],
		MaxLon: bound.Max[0],
		MaxLat: bound.Max[1],
	}
	return v.Pad(ViewportPadding)
}

// ViewportFor is ViewportOf over the display geometries of records, falling
// back to the original geometry where no display variant is set.
func ViewportFor(records []*model.JoinedRecord) model.Viewport {
	geoms := make([]orb.Geometry, 0, len(records))
	for _, r := range records {
		g := r.Display
		if g == nil {
			g = r.Geometry
		}
		geoms = append(geoms, g)
	}
	return ViewportOf(geoms)
}

// BoundsFor is ViewportFor without padding, used for dataset summaries.
func BoundsFor(records []*model.JoinedRecord) model.Viewport {
	v := ViewportFor(records)
	if len(records) == 0 {
		return v
	}
	return v.Pad(-ViewportPadding)
}
