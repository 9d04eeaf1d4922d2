package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"discount-dashboard/internal/api/handlers"
	"discount-dashboard/internal/api/middleware"
)

// NewRouter builds the HTTP router for the dashboard service.
func NewRouter(svc handlers.DashboardService) http.Handler {
	h := handlers.New(svc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.Orders)
		r.Get("/locations", h.OrderLocations)
	})

	r.Route("/discounts", func(r chi.Router) {
		r.Get("/", h.Discounts)
		r.Get("/usage", h.DiscountUsage)
		r.Get("/budget", h.DiscountBudget)
		r.Get("/caps", h.DiscountCaps)
		r.Get("/campaigns", h.Campaigns)
	})

	r.Route("/sales", func(r chi.Router) {
		r.Get("/summary", h.SalesSummary)
		r.Get("/performance", h.SalesPerformance)
		r.Get("/top-products", h.TopProducts)
	})

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
