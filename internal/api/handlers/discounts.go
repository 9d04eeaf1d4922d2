package handlers

import (
	"net/http"
	"time"

	"discount-dashboard/internal/analytics"
)

func usageWindow(r *http.Request) (analytics.Range, error) {
	s := r.URL.Query().Get("timeRange")
	if s == "" {
		return analytics.RangeAll, nil
	}
	return analytics.ParseRange(s,
		analytics.RangeDay, analytics.RangeWeek, analytics.RangeMonth, analytics.RangeAll)
}

// Discounts handles GET /discounts?active={true|false}.
func (h *Handler) Discounts(w http.ResponseWriter, r *http.Request) {
	var active *bool
	switch r.URL.Query().Get("active") {
	case "":
	case "true":
		t := true
		active = &t
	case "false":
		f := false
		active = &f
	default:
		writeError(w, http.StatusBadRequest, "invalid active filter", nil)
		return
	}

	page, err := h.svc.Discounts(r.Context(), active)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch discounts", err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

type usageEntry struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Key              *string `json:"key"`
	IsActive         bool    `json:"isActive"`
	TotalAmount      float64 `json:"totalAmount"`
	OrderCount       int     `json:"orderCount"`
	UniqueOrderCount int     `json:"uniqueOrderCount"`
	CurrencyCode     string  `json:"currencyCode"`
}

// DiscountUsage handles GET /discounts/usage.
func (h *Handler) DiscountUsage(w http.ResponseWriter, r *http.Request) {
	usage, err := h.svc.DiscountUsage(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch discount usage data", err)
		return
	}

	results := make([]usageEntry, 0, len(usage.Records))
	for _, rec := range usage.Records {
		if rec.TotalUsage == 0 {
			continue
		}
		spent, _ := rec.TotalSpent.Float64()
		results = append(results, usageEntry{
			ID:               rec.ID,
			Name:             rec.Name,
			Key:              rec.Key,
			IsActive:         rec.IsActive,
			TotalAmount:      spent,
			OrderCount:       rec.TotalUsage,
			UniqueOrderCount: rec.UniqueOrders,
			CurrencyCode:     rec.CurrencyCode,
		})
	}

	totalValue, _ := usage.TotalOrdersValue.Float64()
	writeJSON(w, http.StatusOK, map[string]any{
		"results":          results,
		"totalOrdersValue": totalValue,
		"orderCount":       usage.DistinctOrders,
	})
}

type budgetEntry struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Key             *string `json:"key"`
	IsActive        bool    `json:"isActive"`
	TotalBudget     float64 `json:"totalBudget"`
	TotalSpent      float64 `json:"totalSpent"`
	OrderCount      int     `json:"orderCount"`
	SpentPercentage float64 `json:"spentPercentage"`
	CurrencyCode    string  `json:"currencyCode"`
}

// DiscountBudget handles GET /discounts/budget?timeRange={day|week|month|all}.
func (h *Handler) DiscountBudget(w http.ResponseWriter, r *http.Request) {
	rng, err := usageWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid timeRange", err)
		return
	}

	res, err := h.svc.DiscountBudget(r.Context(), rng)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch discount budget data", err)
		return
	}

	results := make([]budgetEntry, 0, len(res.Records))
	for _, rec := range res.Records {
		budget, _ := rec.TotalBudget.Float64()
		spent, _ := rec.TotalSpent.Float64()
		results = append(results, budgetEntry{
			ID:              rec.ID,
			Name:            rec.Name,
			Key:             rec.Key,
			IsActive:        rec.IsActive,
			TotalBudget:     budget,
			TotalSpent:      spent,
			OrderCount:      rec.UniqueOrders,
			SpentPercentage: rec.BudgetPercentage,
			CurrencyCode:    rec.CurrencyCode,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"results":     results,
		"timeRange":   rng,
		"totalOrders": res.TotalOrders,
	})
}

type capsEntry struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Version          int     `json:"version"`
	Key              *string `json:"key"`
	IsActive         bool    `json:"isActive"`
	TotalBudget      float64 `json:"totalBudget"`
	TotalSpent       float64 `json:"totalSpent"`
	TotalUsage       int     `json:"totalUsage"`
	ApplicationCap   int     `json:"applicationCap"`
	UsagePercentage  float64 `json:"usagePercentage"`
	BudgetPercentage float64 `json:"budgetPercentage"`
	CurrencyCode     string  `json:"currencyCode"`
	AutoDisable      bool    `json:"autoDisable"`
	CampaignKey      string  `json:"campaignKey"`
	CampaignName     *string `json:"campaignName"`
}

// DiscountCaps handles GET /discounts/caps?timeRange={day|week|month|all}.
func (h *Handler) DiscountCaps(w http.ResponseWriter, r *http.Request) {
	rng, err := usageWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid timeRange", err)
		return
	}

	usage, err := h.svc.DiscountCaps(r.Context(), rng)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch discount cap data", err)
		return
	}

	results := make([]capsEntry, 0, len(usage.Records))
	for _, rec := range usage.Records {
		budget, _ := rec.TotalBudget.Float64()
		spent, _ := rec.TotalSpent.Float64()
		results = append(results, capsEntry{
			ID:               rec.ID,
			Name:             rec.Name,
			Version:          rec.Version,
			Key:              rec.Key,
			IsActive:         rec.IsActive,
			TotalBudget:      budget,
			TotalSpent:       spent,
			TotalUsage:       rec.TotalUsage,
			ApplicationCap:   rec.ApplicationCap,
			UsagePercentage:  rec.UsagePercentage,
			BudgetPercentage: rec.BudgetPercentage,
			CurrencyCode:     rec.CurrencyCode,
			AutoDisable:      rec.AutoDisable,
			CampaignKey:      rec.CampaignKey,
			CampaignName:     rec.CampaignName,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"results":     results,
		"timeRange":   rng,
		"totalOrders": usage.DistinctOrders,
	})
}

type campaignMember struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	IsActive       bool   `json:"isActive"`
	ApplicationCap int    `json:"applicationCap"`
}

type campaignEntry struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Status     string           `json:"status"`
	ValidFrom  *time.Time       `json:"validFrom"`
	ValidUntil *time.Time       `json:"validUntil"`
	Discounts  []campaignMember `json:"discounts"`
}

// Campaigns handles GET /discounts/campaigns.
func (h *Handler) Campaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.svc.Campaigns(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to classify campaigns", err)
		return
	}

	results := make([]campaignEntry, 0, len(campaigns))
	for _, c := range campaigns {
		members := make([]campaignMember, 0, len(c.Discounts))
		for _, d := range c.Discounts {
			members = append(members, campaignMember{
				ID:             d.ID,
				Name:           d.DisplayName(),
				IsActive:       d.IsActive,
				ApplicationCap: d.ApplicationCap(),
			})
		}
		results = append(results, campaignEntry{
			ID:         c.ID,
			Name:       c.Name,
			Status:     string(c.Status),
			ValidFrom:  c.ValidFrom,
			ValidUntil: c.ValidUntil,
			Discounts:  members,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}
