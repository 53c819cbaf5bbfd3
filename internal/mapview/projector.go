// Package mapview projects trucks and trips onto map views: markers with
// popups, a route polyline and a fitted viewport. It does not draw tiles.
package mapview

import (
	"strings"
	"time"

	"github.com/Vlad1s43nko/LogisticsSystem/internal/format"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/storage"
)

const (
	DefaultTileURL     = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultAttribution = "© OpenStreetMap contributors"

	timestampLayout = "2006-01-02 15:04"
)

var (
	truckIcon   = Icon{Glyph: "fa-truck", Color: "#27ae60", Size: 20}
	startIcon   = Icon{Glyph: "fa-play-circle", Color: "#27ae60", Size: 24}
	endIcon     = Icon{Glyph: "fa-flag-checkered", Color: "#e74c3c", Size: 24}
	currentIcon = Icon{Glyph: "fa-truck", Color: "#f39c12", Size: 20}
)

// Projector builds map views. Width and Height are the nominal map size in
// pixels used to pick a zoom when fitting bounds.
type Projector struct {
	Tiles  TileLayer
	Width  int
	Height int
}

// NewProjector creates a projector for the given tile URL template.
// An empty URL or "none" disables maps.
func NewProjector(tileURL string) *Projector {
	return &Projector{
		Tiles: TileLayer{
			URL:         tileURL,
			Attribution: DefaultAttribution,
			MaxZoom:     MaxZoom,
		},
		Width:  800,
		Height: 400,
	}
}

// Available reports whether a tile provider is configured
func (p *Projector) Available() bool {
	url := strings.TrimSpace(p.Tiles.URL)
	return url != "" && !strings.EqualFold(url, "none")
}

// ProjectTruck places the truck at its current location. A truck without a
// location yields no markers and an informational popup instead.
func (p *Projector) ProjectTruck(truck storage.Truck, driverName string) (*View, error) {
	if !p.Available() {
		return nil, ErrMapUnavailable
	}

	view := &View{
		Target:  TargetTruck,
		ID:      truck.ID,
		Tiles:   p.Tiles,
		Markers: []Marker{},
	}

	if truck.CurrentLocation == nil {
		view.Viewport = Viewport{Center: DefaultCenter, Zoom: ZoomDefault}
		view.Info = &Popup{
			Title: truck.LicensePlate,
			Fields: []PopupField{
				{Label: "Status", Value: string(truck.Status)},
				{Label: "Location", Value: "Not available"},
			},
		}
		return view, nil
	}

	loc := truck.CurrentLocation
	fields := []PopupField{
		{Label: "Status", Value: string(truck.Status)},
		{Label: "Driver", Value: orDefault(driverName, "Not assigned")},
	}
	if truck.CurrentTrip != nil {
		fields = append(fields, PopupField{Label: "Route", Value: truck.CurrentTrip.Direction})
	}
	fields = append(fields, PopupField{Label: "Location", Value: orDefault(loc.Address, "Unknown")})

	position := LatLng{Lat: loc.Lat, Lng: loc.Lng}
	view.Markers = append(view.Markers, Marker{
		Kind:     MarkerTruck,
		Position: position,
		Icon:     truckIcon,
		Popup: Popup{
			Title:    truck.LicensePlate,
			Fields:   fields,
			Footnote: "Last updated: " + lastUpdated(loc.Timestamp),
		},
	})
	view.Viewport = Viewport{Center: position, Zoom: ZoomTruck}

	return view, nil
}

// ProjectTrip draws the trip route with start and end markers, plus the live
// position of an in-progress trip. A trip without a route yields an
// informational popup only.
func (p *Projector) ProjectTrip(trip storage.Trip, truckPlate, driverName string) (*View, error) {
	if !p.Available() {
		return nil, ErrMapUnavailable
	}

	view := &View{
		Target:  TargetTrip,
		ID:      trip.ID,
		Tiles:   p.Tiles,
		Markers: []Marker{},
	}

	if len(trip.Route) == 0 {
		view.Viewport = Viewport{Center: DefaultCenter, Zoom: ZoomDefault}
		view.Info = &Popup{
			Title: "Trip Information",
			Fields: []PopupField{
				{Label: "Direction", Value: orDefault(trip.Direction, "Unknown")},
				{Label: "Driver", Value: orDefault(driverName, "Unknown")},
				{Label: "Status", Value: orDefault(string(trip.Status), "Unknown")},
			},
			Message: "Route data not available",
		}
		return view, nil
	}

	start := trip.Route[0]
	view.Markers = append(view.Markers, Marker{
		Kind:     MarkerStart,
		Position: LatLng{Lat: start.Lat, Lng: start.Lng},
		Icon:     startIcon,
		Popup: Popup{
			Title: "Trip Start",
			Fields: []PopupField{
				{Label: "Location", Value: orDefault(start.Name, "Departure point")},
				{Label: "Date", Value: format.Date(trip.StartDate)},
			},
		},
	})

	if len(trip.Route) > 1 {
		end := trip.Route[len(trip.Route)-1]
		view.Markers = append(view.Markers, Marker{
			Kind:     MarkerEnd,
			Position: LatLng{Lat: end.Lat, Lng: end.Lng},
			Icon:     endIcon,
			Popup: Popup{
				Title: "Trip Destination",
				Fields: []PopupField{
					{Label: "Location", Value: orDefault(end.Name, "Arrival point")},
					{Label: "Expected", Value: format.DateOr(trip.EndDate, "TBD")},
				},
			},
		})

		points := make([]LatLng, len(trip.Route))
		for i, wp := range trip.Route {
			points[i] = LatLng{Lat: wp.Lat, Lng: wp.Lng}
		}
		view.Polyline = &Polyline{Points: points, Color: "#3498db", Weight: 4, Opacity: 0.8}
		view.RouteKm = RouteLength(points)
	}

	if trip.Status == storage.TripInProgress && trip.CurrentPosition != nil {
		pos := trip.CurrentPosition
		view.Markers = append(view.Markers, Marker{
			Kind:     MarkerCurrent,
			Position: LatLng{Lat: pos.Lat, Lng: pos.Lng},
			Icon:     currentIcon,
			Popup: Popup{
				Title: "Current Location",
				Fields: []PopupField{
					{Label: "Truck", Value: orDefault(truckPlate, "Unknown")},
					{Label: "Driver", Value: orDefault(driverName, "Unknown")},
				},
				Footnote: "Last updated: " + lastUpdated(pos.Timestamp),
			},
		})
	}

	if len(trip.Route) > 1 {
		view.Viewport = fitViewport(view.Markers, p.Width, p.Height)
	} else {
		view.Viewport = Viewport{Center: view.Markers[0].Position, Zoom: ZoomTrip}
	}

	return view, nil
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func lastUpdated(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.UTC().Format(timestampLayout)
}
