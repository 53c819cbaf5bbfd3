package mapview

import "errors"

// ErrMapUnavailable is returned when no tile provider is configured
var ErrMapUnavailable = errors.New("map provider unavailable")

// Target selects which kind of record a map displays
type Target string

const (
	TargetTruck Target = "truck"
	TargetTrip  Target = "trip"
)

// MarkerKind identifies the role of a marker on the map
type MarkerKind string

const (
	MarkerTruck   MarkerKind = "truck"
	MarkerStart   MarkerKind = "start"
	MarkerEnd     MarkerKind = "end"
	MarkerCurrent MarkerKind = "current"
)

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Bounds struct {
	SouthWest LatLng `json:"south_west"`
	NorthEast LatLng `json:"north_east"`
}

// Icon describes a marker glyph (a Font Awesome class) and its color
type Icon struct {
	Glyph string `json:"glyph"`
	Color string `json:"color"`
	Size  int    `json:"size"`
}

type PopupField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Popup is the info box attached to a marker or shown at the map center
type Popup struct {
	Title    string       `json:"title"`
	Fields   []PopupField `json:"fields"`
	Message  string       `json:"message,omitempty"`
	Footnote string       `json:"footnote,omitempty"`
}

type Marker struct {
	Kind     MarkerKind `json:"kind"`
	Position LatLng     `json:"position"`
	Icon     Icon       `json:"icon"`
	Popup    Popup      `json:"popup"`
}

type Polyline struct {
	Points  []LatLng `json:"points"`
	Color   string   `json:"color"`
	Weight  int      `json:"weight"`
	Opacity float64  `json:"opacity"`
}

// Viewport is the initial camera of a map. Bounds is set when the view was
// fitted to its markers.
type Viewport struct {
	Center LatLng  `json:"center"`
	Zoom   int     `json:"zoom"`
	Bounds *Bounds `json:"bounds,omitempty"`
}

type TileLayer struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
	MaxZoom     int    `json:"max_zoom"`
}

// View is everything a client needs to draw one map
type View struct {
	Target   Target    `json:"target"`
	ID       string    `json:"id"`
	Tiles    TileLayer `json:"tiles"`
	Viewport Viewport  `json:"viewport"`
	Markers  []Marker  `json:"markers"`
	Polyline *Polyline `json:"polyline,omitempty"`
	Info     *Popup    `json:"info,omitempty"`
	RouteKm  float64   `json:"route_km,omitempty"`
}

// PolylinePoints returns the polyline vertices, or nil when the view has none
func (v *View) PolylinePoints() []LatLng {
	if v.Polyline == nil {
		return nil
	}
	return v.Polyline.Points
}
