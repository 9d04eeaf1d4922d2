package handlers

import (
	"net/http"

	"discount-dashboard/internal/analytics"
)

// Orders handles GET /orders?timeRange={today|week|month}.
func (h *Handler) Orders(w http.ResponseWriter, r *http.Request) {
	rng, err := queryRange(r, analytics.RangeToday,
		analytics.RangeToday, analytics.RangeWeek, analytics.RangeMonth)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid timeRange", err)
		return
	}

	page, err := h.svc.Orders(r.Context(), rng)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch orders", err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// OrderLocations handles GET /orders/locations?timeRange=&view={state|city}.
func (h *Handler) OrderLocations(w http.ResponseWriter, r *http.Request) {
	rng, err := queryRange(r, analytics.RangeToday,
		analytics.RangeToday, analytics.RangeWeek, analytics.RangeMonth)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid timeRange", err)
		return
	}

	view := analytics.ViewState
	switch r.URL.Query().Get("view") {
	case "", "state":
	case "city":
		view = analytics.ViewCity
	default:
		writeError(w, http.StatusBadRequest, "invalid view", nil)
		return
	}

	locations, err := h.svc.Locations(r.Context(), rng, view)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch order locations", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results":   locations,
		"view":      view,
		"timeRange": rng,
	})
}
