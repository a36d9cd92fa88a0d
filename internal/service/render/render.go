// Package render turns a record set into the map document consumed by the
// Leaflet page: a GeoJSON feature collection plus viewport and style.
package render

import (
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/geo"
	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/model"
)

// Style is the fixed visual style applied to every feature, with an
// emphasized variant for hover/highlight. Values carried over from the
// original viewer.
type Style struct {
	FillColor       string  `json:"fillColor"`
	Color           string  `json:"color"`
	Weight          int     `json:"weight"`
	FillOpacity     float64 `json:"fillOpacity"`
	HighlightColor  string  `json:"highlightColor"`
	HighlightWeight int     `json:"highlightWeight"`
}

// DefaultStyle matches the source styling: translucent yellow fill, blue
// stroke, green emphasis on hover.
func DefaultStyle() Style {
	return Style{
		FillColor:       "#ffff66",
		Color:           "#0000ff",
		Weight:          2,
		FillOpacity:     0.3,
		HighlightColor:  "green",
		HighlightWeight: 3,
	}
}

// MapDocument is the render output for one filtered view.
type MapDocument struct {
	Viewport model.Viewport             `json:"viewport"`
	Count    int                        `json:"count"`
	Style    Style                      `json:"style"`
	Features *geojson.FeatureCollection `json:"features"`
}

// DisplayMode selects which geometry variant a feature carries.
type DisplayMode string

const (
	DisplaySimplified DisplayMode = "simplified"
	DisplayOriginal   DisplayMode = "original"
)

// Render emits one feature per record with a tooltip name and a popup of the
// configured fields. Records with a missing geometry are skipped rather than
// failing the whole render. An empty set produces a default world view with
// no features.
func Render(records []*model.JoinedRecord, popupFields []string, mode DisplayMode) *MapDocument {
	fc := geojson.NewFeatureCollection()
	shown := make([]orb.Geometry, 0, len(records))
	for _, r := range records {
		g := r.Display
		if mode == DisplayOriginal || g == nil {
			g = r.Geometry
		}
		if g == nil {
			continue
		}

		f := geojson.NewFeature(g)
		f.Properties["name"] = r.Name
		f.Properties["code"] = r.Code
		f.Properties["tooltip"] = r.Name
		f.Properties["popup"] = popupFor(r, popupFields)
		fc.Append(f)
		shown = append(shown, g)
	}

	return &MapDocument{
		// The viewport fits the geometry variant actually drawn.
		Viewport: geo.ViewportOf(shown),
		Count:    len(shown),
		Style:    DefaultStyle(),
		Features: fc,
	}
}

// popupFor collects the configured popup fields present and non-null on the
// record. Name and the derived code are always available under their own
// keys; spreadsheet attributes match case-insensitively.
func popupFor(r *model.JoinedRecord, fields []string) []map[string]any {
	popup := make([]map[string]any, 0, len(fields))
	for _, field := range fields {
		switch {
		case strings.EqualFold(field, "name"):
			popup = append(popup, map[string]any{"label": field, "value": r.Name})
		case strings.EqualFold(field, "farmercode") || strings.EqualFold(field, "code"):
			popup = append(popup, map[string]any{"label": field, "value": r.Code})
		default:
			if v, ok := attrLookup(r.Attrs, field); ok && !v.IsNull() {
				popup = append(popup, map[string]any{"label": field, "value": v})
			}
		}
	}
	return popup
}

func attrLookup(attrs map[string]model.Scalar, field string) (model.Scalar, bool) {
	if v, ok := attrs[field]; ok {
		return v, true
	}
	for k, v := range attrs {
		if strings.EqualFold(k, field) {
			return v, true
		}
	}
	return model.Scalar{}, false
}
