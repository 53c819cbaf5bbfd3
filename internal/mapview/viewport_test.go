package mapview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitViewport_PadsBounds(t *testing.T) {
	markers := []Marker{
		{Position: LatLng{Lat: 50, Lng: 20}},
		{Position: LatLng{Lat: 52, Lng: 30}},
	}

	vp := fitViewport(markers, 800, 400)

	require.NotNil(t, vp.Bounds)
	assert.InDelta(t, 49.8, vp.Bounds.SouthWest.Lat, 1e-9)
	assert.InDelta(t, 19.0, vp.Bounds.SouthWest.Lng, 1e-9)
	assert.InDelta(t, 52.2, vp.Bounds.NorthEast.Lat, 1e-9)
	assert.InDelta(t, 31.0, vp.Bounds.NorthEast.Lng, 1e-9)
	assert.InDelta(t, 51.0, vp.Center.Lat, 1e-9)
	assert.InDelta(t, 25.0, vp.Center.Lng, 1e-9)
}

func TestFitZoom(t *testing.T) {
	tests := []struct {
		name     string
		markers  []Marker
		expected int
	}{
		{
			name: "cross-continent route",
			markers: []Marker{
				{Position: LatLng{Lat: 50.4501, Lng: 30.5234}},
				{Position: LatLng{Lat: 52.3676, Lng: 4.9041}},
			},
			expected: 5,
		},
		{
			name: "identical points",
			markers: []Marker{
				{Position: LatLng{Lat: 51.5074, Lng: -0.1278}},
				{Position: LatLng{Lat: 51.5074, Lng: -0.1278}},
			},
			expected: MaxZoom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := fitViewport(tt.markers, 800, 400)
			assert.Equal(t, tt.expected, vp.Zoom)
		})
	}
}

func TestRouteLength(t *testing.T) {
	assert.Equal(t, 0.0, RouteLength(nil))
	assert.Equal(t, 0.0, RouteLength([]LatLng{{Lat: 50, Lng: 30}}))

	// Kyiv to Warsaw is roughly 690 km
	km := RouteLength([]LatLng{{Lat: 50.4501, Lng: 30.5234}, {Lat: 52.2297, Lng: 21.0122}})
	assert.InDelta(t, 690, km, 15)
}
