package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/Vlad1s43nko/LogisticsSystem/internal/chart"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/mapview"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/service"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/storage"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/widget"
)

const dateParam = "2006-01-02"

// HTTPHandler handles HTTP requests for the dashboard service
type HTTPHandler struct {
	dashboard *service.DashboardService
	widgets   *service.WidgetService
	upgrader  websocket.Upgrader
}

// NewHTTPHandler creates a new HTTP handler. allowedOrigin limits websocket
// clients; "*" accepts any origin.
func NewHTTPHandler(dashboard *service.DashboardService, widgets *service.WidgetService, allowedOrigin string) *HTTPHandler {
	return &HTTPHandler{
		dashboard: dashboard,
		widgets:   widgets,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowedOrigin == "*" || origin == "" || origin == allowedOrigin
			},
		},
	}
}

// RegisterRoutes sets up HTTP routes
func (h *HTTPHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.Health).Methods("GET")
	router.HandleFunc("/dashboard", h.GetDashboard).Methods("GET")
	router.HandleFunc("/totals", h.GetFleetTotals).Methods("GET")

	router.HandleFunc("/trucks", h.ListTrucks).Methods("GET")
	router.HandleFunc("/truck", h.GetTruck).Methods("GET")
	router.HandleFunc("/trucks/{id}", h.GetTruck).Methods("GET")
	router.HandleFunc("/trucks/{id}/map", h.GetTruckMap).Methods("GET")

	router.HandleFunc("/drivers", h.ListDrivers).Methods("GET")
	router.HandleFunc("/driver", h.GetDriver).Methods("GET")
	router.HandleFunc("/drivers/{id}", h.GetDriver).Methods("GET")
	router.HandleFunc("/drivers/{id}/notes", h.SubmitNote).Methods("POST")

	router.HandleFunc("/trips", h.ListTrips).Methods("GET")
	router.HandleFunc("/trips/{id}", h.GetTrip).Methods("GET")
	router.HandleFunc("/trips/{id}/map", h.GetTripMap).Methods("GET")
	router.HandleFunc("/trips/{id}/map.geojson", h.GetTripGeoJSON).Methods("GET")

	router.HandleFunc("/charts/{kind}", h.GetChart).Methods("GET")
	router.HandleFunc("/charts/{kind}/image", h.GetChartImage).Methods("GET")

	router.HandleFunc("/views/{view}/maps", h.CreateMapWidget).Methods("POST")
	router.HandleFunc("/views/{view}/charts", h.CreateChartWidget).Methods("POST")
	router.HandleFunc("/views/{view}/widgets", h.ListViewWidgets).Methods("GET")
	router.HandleFunc("/views/{view}", h.DestroyView).Methods("DELETE")
	router.HandleFunc("/widgets/{handle}", h.GetWidget).Methods("GET")
	router.HandleFunc("/widgets/{handle}", h.DestroyWidget).Methods("DELETE")

	router.HandleFunc("/theme", h.GetTheme).Methods("GET")
	router.HandleFunc("/theme", h.SetTheme).Methods("PUT")
	router.HandleFunc("/theme/toggle", h.ToggleTheme).Methods("POST")
	router.HandleFunc("/ws/theme", h.ThemeFeed).Methods("GET")
}

// Health returns service health status
func (h *HTTPHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// GetDashboard returns the header figures and the profit and loss chart
func (h *HTTPHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	view, err := h.dashboard.Summary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GetFleetTotals returns totals over completed trips
func (h *HTTPHandler) GetFleetTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.dashboard.FleetTotals(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

// ListTrucks returns trucks filtered by status and q
func (h *HTTPHandler) ListTrucks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	list, err := h.dashboard.ListTrucks(r.Context(), service.TruckQuery{
		Status: storage.TruckStatus(query.Get("status")),
		Text:   query.Get("q"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GetTruck returns the truck page. The id comes from the path or truck_id.
func (h *HTTPHandler) GetTruck(w http.ResponseWriter, r *http.Request) {
	tripQuery, err := parseTripQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	detail, err := h.dashboard.TruckDetail(r.Context(), entityID(r, "truck_id"), tripQuery)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// GetTruckMap returns the map view of one truck
func (h *HTTPHandler) GetTruckMap(w http.ResponseWriter, r *http.Request) {
	view, _, err := h.dashboard.TruckMap(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ListDrivers returns drivers split into active and inactive
func (h *HTTPHandler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	list, err := h.dashboard.ListDrivers(r.Context(), service.DriverQuery{
		Status:   storage.DriverStatus(query.Get("status")),
		Activity: storage.DriverActivity(query.Get("current_status")),
		Text:     query.Get("q"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GetDriver returns the driver page. The id comes from the path or driver_id.
func (h *HTTPHandler) GetDriver(w http.ResponseWriter, r *http.Request) {
	detail, err := h.dashboard.DriverDetail(r.Context(), entityID(r, "driver_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// SubmitNote accepts a driver note without storing it
func (h *HTTPHandler) SubmitNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Author string `json:"author"`
		Text   string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode note request", "error", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	note, err := h.dashboard.SubmitNote(r.Context(), mux.Vars(r)["id"], req.Author, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, note)
}

// ListTrips returns trips filtered by status, q, driver, truck, from and to
func (h *HTTPHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	tripQuery, err := parseTripQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	list, err := h.dashboard.ListTrips(r.Context(), tripQuery)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GetTrip returns the trip page
func (h *HTTPHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	detail, err := h.dashboard.TripDetail(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// GetTripMap returns the route map of one trip
func (h *HTTPHandler) GetTripMap(w http.ResponseWriter, r *http.Request) {
	view, _, err := h.dashboard.TripMap(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GetTripGeoJSON returns the route map of one trip as a feature collection
func (h *HTTPHandler) GetTripGeoJSON(w http.ResponseWriter, r *http.Request) {
	view, _, err := h.dashboard.TripMap(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := json.Marshal(view.FeatureCollection())
	if err != nil {
		slog.Error("Failed to encode trip GeoJSON", "trip_id", view.ID, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.Write(data)
}

// GetChart returns a chart config, in the current theme unless theme is given
func (h *HTTPHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.chart(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// GetChartImage renders a chart as PNG or SVG
func (h *HTTPHandler) GetChartImage(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.chart(r)
	if err != nil {
		writeError(w, err)
		return
	}

	imageFormat := r.URL.Query().Get("format")
	contentType := "image/png"
	switch imageFormat {
	case "", chart.FormatPNG:
	case chart.FormatSVG:
		contentType = "image/svg+xml"
	default:
		http.Error(w, fmt.Sprintf("unsupported image format %q", imageFormat), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := chart.Render(cfg, imageFormat, &buf); err != nil {
		slog.Error("Chart rendering failed", "kind", cfg.Kind, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(buf.Bytes())
}

func (h *HTTPHandler) chart(r *http.Request) (*chart.Config, error) {
	kind, err := chart.ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		return nil, err
	}
	theme := h.widgets.Theme()
	if name := r.URL.Query().Get("theme"); name != "" {
		if theme, err = chart.ParseTheme(name); err != nil {
			return nil, err
		}
	}
	return h.dashboard.Chart(r.Context(), kind, theme)
}

// entityID reads the record id from the path, falling back to a query parameter
func entityID(r *http.Request, param string) string {
	if id := mux.Vars(r)["id"]; id != "" {
		return id
	}
	return r.URL.Query().Get(param)
}

func parseTripQuery(r *http.Request) (service.TripQuery, error) {
	query := r.URL.Query()
	q := service.TripQuery{
		Status:   storage.TripStatus(query.Get("status")),
		Text:     query.Get("q"),
		DriverID: query.Get("driver"),
		TruckID:  query.Get("truck"),
	}

	for param, dst := range map[string]**time.Time{"from": &q.From, "to": &q.To} {
		value := query.Get(param)
		if value == "" {
			continue
		}
		t, err := time.Parse(dateParam, value)
		if err != nil {
			return q, fmt.Errorf("invalid %s date %q: want YYYY-MM-DD", param, value)
		}
		*dst = &t
	}
	return q, nil
}

// writeError maps service errors to status codes
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, widget.ErrUnknownHandle):
		status = http.StatusNotFound
	case errors.Is(err, chart.ErrUnknownKind), errors.Is(err, chart.ErrUnknownTheme),
		errors.Is(err, service.ErrEmptyNote), errors.Is(err, widget.ErrMissingOwner),
		errors.Is(err, service.ErrUnknownMapType):
		status = http.StatusBadRequest
	case errors.Is(err, mapview.ErrMapUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		slog.Error("Request failed", "error", err)
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
