package mapview

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// FeatureCollection converts a view into GeoJSON: one Point per marker and a
// LineString for the route. The collection bbox is the fitted viewport bounds
// when the view has them.
func (v *View) FeatureCollection() *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{
		Features: make([]*geojson.Feature, 0, len(v.Markers)+1),
	}

	for _, m := range v.Markers {
		props := map[string]interface{}{
			"kind":  string(m.Kind),
			"title": m.Popup.Title,
			"icon":  m.Icon.Glyph,
			"color": m.Icon.Color,
		}
		for _, f := range m.Popup.Fields {
			props[f.Label] = f.Value
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:         v.ID + "/" + string(m.Kind),
			Geometry:   geom.NewPointFlat(geom.XY, []float64{m.Position.Lng, m.Position.Lat}),
			Properties: props,
		})
	}

	if points := v.PolylinePoints(); len(points) > 1 {
		flat := make([]float64, 0, 2*len(points))
		for _, p := range points {
			flat = append(flat, p.Lng, p.Lat)
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       v.ID + "/route",
			Geometry: geom.NewLineStringFlat(geom.XY, flat),
			Properties: map[string]interface{}{
				"kind":     "route",
				"color":    v.Polyline.Color,
				"weight":   v.Polyline.Weight,
				"opacity":  v.Polyline.Opacity,
				"route_km": v.RouteKm,
			},
		})
	}

	if b := v.Viewport.Bounds; b != nil {
		fc.BBox = geom.NewBounds(geom.XY).Set(b.SouthWest.Lng, b.SouthWest.Lat, b.NorthEast.Lng, b.NorthEast.Lat)
	}

	return fc
}
