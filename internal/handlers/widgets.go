package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Vlad1s43nko/LogisticsSystem/internal/chart"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/mapview"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/widget"
)

// CreateMapWidget draws a truck or trip map into a container of the view
func (h *HTTPHandler) CreateMapWidget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Target string `json:"target"`
		Type   string `json:"type"`
		ID     string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode map widget request", "error", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	state, err := h.widgets.CreateMap(r.Context(), mux.Vars(r)["view"], req.Target, mapview.Target(req.Type), req.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

// CreateChartWidget draws a chart into a container of the view
func (h *HTTPHandler) CreateChartWidget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Target string `json:"target"`
		Kind   string `json:"kind"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode chart widget request", "error", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	kind, err := chart.ParseKind(req.Kind)
	if err != nil {
		writeError(w, err)
		return
	}

	state, err := h.widgets.CreateChart(r.Context(), mux.Vars(r)["view"], req.Target, kind)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

// GetWidget returns the current state of a widget
func (h *HTTPHandler) GetWidget(w http.ResponseWriter, r *http.Request) {
	state, err := h.widgets.Widget(widget.Handle(mux.Vars(r)["handle"]))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// DestroyWidget tears down a widget
func (h *HTTPHandler) DestroyWidget(w http.ResponseWriter, r *http.Request) {
	if err := h.widgets.DestroyWidget(r.Context(), widget.Handle(mux.Vars(r)["handle"])); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListViewWidgets returns the handles of the widgets a view owns
func (h *HTTPHandler) ListViewWidgets(w http.ResponseWriter, r *http.Request) {
	viewID := mux.Vars(r)["view"]
	writeJSON(w, http.StatusOK, map[string]any{"view_id": viewID, "widgets": h.widgets.ViewWidgets(viewID)})
}

// DestroyView tears down every widget of a view
func (h *HTTPHandler) DestroyView(w http.ResponseWriter, r *http.Request) {
	viewID := mux.Vars(r)["view"]
	handles := h.widgets.DestroyView(r.Context(), viewID)
	writeJSON(w, http.StatusOK, map[string]any{"view_id": viewID, "destroyed": handles})
}

// GetTheme returns the active theme
func (h *HTTPHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]chart.Theme{"theme": h.widgets.Theme()})
}

// SetTheme switches the theme
func (h *HTTPHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	theme, err := chart.ParseTheme(req.Theme)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.widgets.SetTheme(r.Context(), theme))
}

// ToggleTheme flips between light and dark
func (h *HTTPHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.widgets.ToggleTheme(r.Context()))
}
