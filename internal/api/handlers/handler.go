// Package handlers translates HTTP requests into dashboard service calls and
// shapes the aggregation results into the JSON the UI consumes.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"discount-dashboard/internal/analytics"
	"discount-dashboard/internal/models"
	"discount-dashboard/internal/service"
)

// DashboardService is the service surface the handlers call. *service.Dashboard
// implements it; tests substitute a fake.
type DashboardService interface {
	Orders(ctx context.Context, r analytics.Range) (*models.OrderPage, error)
	Discounts(ctx context.Context, active *bool) (*models.CartDiscountPage, error)
	DiscountUsage(ctx context.Context) (analytics.OrderUsage, error)
	DiscountBudget(ctx context.Context, r analytics.Range) (service.BudgetResult, error)
	DiscountCaps(ctx context.Context, r analytics.Range) (analytics.OrderUsage, error)
	Campaigns(ctx context.Context) ([]analytics.Campaign, error)
	Summary(ctx context.Context, r analytics.Range) (service.SalesSummary, error)
	Performance(ctx context.Context, r analytics.Range) ([]analytics.SalesPoint, error)
	TopProducts(ctx context.Context, r analytics.Range, limit int) ([]analytics.ProductSummary, error)
	Locations(ctx context.Context, r analytics.Range, view analytics.LocationView) ([]analytics.LocationCount, error)
}

// Handler carries the service into the route functions.
type Handler struct {
	svc DashboardService
}

func New(svc DashboardService) *Handler {
	return &Handler{svc: svc}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error     string `json:"error"`
	Details   string `json:"details"`
	Timestamp string `json:"timestamp"`
}

func writeError(w http.ResponseWriter, code int, msg string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	writeJSON(w, code, errorBody{
		Error:     msg,
		Details:   details,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// queryRange reads the timeRange parameter, falling back to def and rejecting
// values outside the allowed set.
func queryRange(r *http.Request, def analytics.Range, allowed ...analytics.Range) (analytics.Range, error) {
	s := r.URL.Query().Get("timeRange")
	if s == "" {
		return def, nil
	}
	return analytics.ParseRange(s, allowed...)
}
