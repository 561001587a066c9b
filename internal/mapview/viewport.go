package mapview

import "github.com/kc95kc/music-map/pkg/types"

// Viewport owns the map's center and zoom. It remembers the last target
// it issued, so repeated identical recenters produce no re-animation
// churn on the surface.
type Viewport struct {
	surface     types.MapSurface
	defaultView types.Viewset

	last    types.Viewset
	hasLast bool
}

// NewViewport creates a viewport controller over the map surface.
func NewViewport(surface types.MapSurface, defaultView types.Viewset) *Viewport {
	return &Viewport{surface: surface, defaultView: defaultView}
}

// DefaultView returns the startup center and zoom, used before any pin
// is selected.
func (v *Viewport) DefaultView() types.Viewset {
	return v.defaultView
}

// ApplyDefault issues the startup view.
func (v *Viewport) ApplyDefault() {
	v.Recenter(v.defaultView.Lat, v.defaultView.Lon, v.defaultView.Zoom)
}

// Recenter issues a single viewport change. Idempotent under repeated
// identical calls: the surface sees one SetView per distinct target.
func (v *Viewport) Recenter(lat, lon float64, zoom int) {
	target := types.Viewset{Lat: lat, Lon: lon, Zoom: zoom}
	if v.hasLast && v.last == target {
		return
	}
	v.surface.SetView(lat, lon, zoom)
	v.last = target
	v.hasLast = true
}
