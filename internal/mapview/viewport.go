package mapview

import (
	"math"

	"github.com/twpayne/go-geom"
)

const (
	// BoundsPadding grows fitted bounds by this fraction of their span on every side
	BoundsPadding = 0.1

	tileSize       = 256.0
	earthRadiusKm  = 6371.0
	maxMercatorLat = 85.0511287798
)

// DefaultCenter is used when a view has nothing to center on
var DefaultCenter = LatLng{Lat: 49.8397, Lng: 24.0297}

// Zoom levels per situation
const (
	ZoomDefault = 6
	ZoomTruck   = 13
	ZoomTrip    = 8
	MaxZoom     = 18
)

// markerBounds returns the bounding box of all marker positions, X being longitude
func markerBounds(markers []Marker) *geom.Bounds {
	flat := make([]float64, 0, 2*len(markers))
	for _, m := range markers {
		flat = append(flat, m.Position.Lng, m.Position.Lat)
	}
	return geom.NewMultiPointFlat(geom.XY, flat).Bounds()
}

// padBounds moves each edge out by ratio times the span of its axis
func padBounds(b *geom.Bounds, ratio float64) *geom.Bounds {
	dx := (b.Max(0) - b.Min(0)) * ratio
	dy := (b.Max(1) - b.Min(1)) * ratio
	return geom.NewBounds(geom.XY).Set(b.Min(0)-dx, b.Min(1)-dy, b.Max(0)+dx, b.Max(1)+dy)
}

func toBounds(b *geom.Bounds) *Bounds {
	return &Bounds{
		SouthWest: LatLng{Lat: b.Min(1), Lng: b.Min(0)},
		NorthEast: LatLng{Lat: b.Max(1), Lng: b.Max(0)},
	}
}

// fitViewport centers on the padded marker bounds and picks the largest zoom
// at which those bounds fit a width x height pixel map
func fitViewport(markers []Marker, width, height int) Viewport {
	padded := padBounds(markerBounds(markers), BoundsPadding)
	return Viewport{
		Center: LatLng{
			Lat: (padded.Min(1) + padded.Max(1)) / 2,
			Lng: (padded.Min(0) + padded.Max(0)) / 2,
		},
		Zoom:   fitZoom(padded, width, height),
		Bounds: toBounds(padded),
	}
}

func fitZoom(b *geom.Bounds, width, height int) int {
	dx := (b.Max(0) - b.Min(0)) / 360 * tileSize
	dy := math.Abs(mercatorY(b.Max(1))-mercatorY(b.Min(1))) * tileSize
	if dx == 0 && dy == 0 {
		return MaxZoom
	}

	zoom := math.Inf(1)
	if dx > 0 {
		zoom = math.Log2(float64(width) / dx)
	}
	if dy > 0 {
		zoom = math.Min(zoom, math.Log2(float64(height)/dy))
	}

	z := int(math.Floor(zoom))
	if z < 0 {
		return 0
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

// mercatorY projects a latitude onto [0, 1] of the web mercator world height
func mercatorY(lat float64) float64 {
	lat = math.Max(-maxMercatorLat, math.Min(maxMercatorLat, lat))
	rad := lat * math.Pi / 180
	return (1 - math.Log(math.Tan(rad)+1/math.Cos(rad))/math.Pi) / 2
}

// RouteLength sums the great-circle distance between consecutive points, in km
func RouteLength(points []LatLng) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += haversineDistance(points[i-1].Lat, points[i-1].Lng, points[i].Lat, points[i].Lng)
	}
	return total
}

func haversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
