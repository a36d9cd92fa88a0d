package model

// Viewport is the map's initial visible bounding region in degrees.
type Viewport struct {
	MinLon float64 `json:"minLon"`
	MinLat float64 `json:"minLat"`
	MaxLon float64 `json:"maxLon"`
	MaxLat float64 `json:"maxLat"`
}

// WorldViewport is the default view when there is nothing to show.
func WorldViewport() Viewport {
	return Viewport{MinLon: -180, MinLat: -85, MaxLon: 180, MaxLat: 85}
}

// Pad expands the viewport by margin degrees on every side.
func (v Viewport) Pad(margin float64) Viewport {
	return Viewport{
		MinLon: v.MinLon - margin,
		MinLat: v.MinLat - margin,
		MaxLon: v.MaxLon + margin,
		MaxLat: v.MaxLat + margin,
	}
}
