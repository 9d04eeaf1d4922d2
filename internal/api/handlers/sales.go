package handlers

import (
	"net/http"
	"strconv"

	"discount-dashboard/internal/analytics"
)

const defaultTopProducts = 10

// SalesSummary handles GET /sales/summary?timeRange=.
func (h *Handler) SalesSummary(w http.ResponseWriter, r *http.Request) {
	rng, err := queryRange(r, analytics.RangeToday,
		analytics.RangeToday, analytics.RangeWeek, analytics.RangeMonth)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid timeRange", err)
		return
	}

	summary, err := h.svc.Summary(r.Context(), rng)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch sales summary", err)
		return
	}

	total, _ := summary.TotalSales.Float64()
	writeJSON(w, http.StatusOK, map[string]any{
		"totalSales":   total,
		"orderCount":   summary.OrderCount,
		"currencyCode": summary.CurrencyCode,
		"timeRange":    rng,
	})
}

// SalesPerformance handles GET /sales/performance?timeRange=.
func (h *Handler) SalesPerformance(w http.ResponseWriter, r *http.Request) {
	rng, err := queryRange(r, analytics.RangeToday,
		analytics.RangeToday, analytics.RangeWeek, analytics.RangeMonth)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid timeRange", err)
		return
	}

	points, err := h.svc.Performance(r.Context(), rng)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch sales performance", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results":   points,
		"timeRange": rng,
	})
}

// TopProducts handles GET /sales/top-products?timeRange=&limit=.
func (h *Handler) TopProducts(w http.ResponseWriter, r *http.Request) {
	rng, err := queryRange(r, analytics.RangeToday,
		analytics.RangeToday, analytics.RangeWeek, analytics.RangeMonth)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid timeRange", err)
		return
	}

	limit := defaultTopProducts
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit", err)
			return
		}
		limit = n
	}

	products, err := h.svc.TopProducts(r.Context(), rng, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch top products", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results":   products,
		"timeRange": rng,
	})
}
