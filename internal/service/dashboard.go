// Package service orchestrates the dashboard's analytics queries: it fetches
// from the platform API and the warehouse, then runs the pure aggregation
// functions and returns their results.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"discount-dashboard/internal/analytics"
	"discount-dashboard/internal/commercetools"
	"discount-dashboard/internal/models"
)

const discountedLineItemsPredicate = "lineItems(discountedPricePerQuantity is defined)"

const includedDiscountExpand = "lineItems[*].discountedPricePerQuantity[*].discountedPrice.includedDiscounts[*].discount"

// CommerceAPI is the slice of the platform client the service uses.
type CommerceAPI interface {
	QueryCartDiscounts(ctx context.Context, q commercetools.Query) (*models.CartDiscountPage, error)
	QueryOrders(ctx context.Context, q commercetools.Query) (*models.OrderPage, error)
}

// UsageStore is the slice of the warehouse the service uses.
type UsageStore interface {
	UsageTotals(ctx context.Context, r analytics.Range, now time.Time) ([]analytics.UsageRow, error)
	DistinctOrderCount(ctx context.Context, r analytics.Range, now time.Time) (int, error)
}

// Dashboard serves every analytics query of the API. One instance is built
// at startup and shared; it holds no per-request state beyond the discount
// snapshot cache.
type Dashboard struct {
	api   CommerceAPI
	store UsageStore
	loc   *time.Location
	log   *slog.Logger
	cache *snapshotCache

	now func() time.Time
}

func New(api CommerceAPI, store UsageStore, loc *time.Location, log *slog.Logger, cacheTTL time.Duration) *Dashboard {
	return &Dashboard{
		api:   api,
		store: store,
		loc:   loc,
		log:   log,
		cache: newSnapshotCache(cacheTTL),
		now:   time.Now,
	}
}

// Orders returns the orders created inside the calendar range, newest first.
func (d *Dashboard) Orders(ctx context.Context, r analytics.Range) (*models.OrderPage, error) {
	start, end := analytics.Bounds(d.now(), r, d.loc)
	page, err := d.api.QueryOrders(ctx, commercetools.Query{
		Limit: commercetools.MaxOrderLimit,
		Where: []string{fmt.Sprintf(`createdAt >= "%s" and createdAt < "%s"`,
			commercetools.TimestampPredicate(start), commercetools.TimestampPredicate(end))},
		Sort: []string{"createdAt desc"},
	})
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	return page, nil
}

// Discounts returns the discount list, optionally filtered on isActive.
func (d *Dashboard) Discounts(ctx context.Context, active *bool) (*models.CartDiscountPage, error) {
	q := commercetools.Query{
		Limit: commercetools.MaxDiscountLimit,
		Sort:  []string{"lastModifiedAt desc"},
	}
	if active != nil {
		q.Where = []string{fmt.Sprintf("isActive=%t", *active)}
	}
	page, err := d.api.QueryCartDiscounts(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fetch discounts: %w", err)
	}
	return page, nil
}

// snapshot returns the cached expanded discount list used by every
// aggregation endpoint.
func (d *Dashboard) snapshot(ctx context.Context) ([]models.Discount, error) {
	if items, ok := d.cache.get(d.now()); ok {
		return items, nil
	}
	page, err := d.api.QueryCartDiscounts(ctx, commercetools.Query{
		Limit:  commercetools.MaxDiscountLimit,
		Expand: []string{"custom.type"},
	})
	if err != nil {
		return nil, fmt.Errorf("fetch discount snapshot: %w", err)
	}
	d.cache.set(page.Results, d.now())
	return page.Results, nil
}

func (d *Dashboard) discountedOrders(ctx context.Context, extraWhere ...string) ([]models.Order, error) {
	where := append([]string{discountedLineItemsPredicate}, extraWhere...)
	page, err := d.api.QueryOrders(ctx, commercetools.Query{
		Limit:  commercetools.MaxOrderLimit,
		Where:  where,
		Sort:   []string{"createdAt desc"},
		Expand: []string{includedDiscountExpand},
	})
	if err != nil {
		return nil, fmt.Errorf("fetch discounted orders: %w", err)
	}
	return page.Results, nil
}

// DiscountUsage computes per-discount usage live from recent orders.
func (d *Dashboard) DiscountUsage(ctx context.Context) (analytics.OrderUsage, error) {
	discounts, err := d.snapshot(ctx)
	if err != nil {
		return analytics.OrderUsage{}, err
	}
	orders, err := d.discountedOrders(ctx)
	if err != nil {
		return analytics.OrderUsage{}, err
	}
	return analytics.AggregateFromOrders(discounts, orders, d.log), nil
}

// BudgetResult pairs per-discount budget records with the global distinct
// order count of the window.
type BudgetResult struct {
	Records     []analytics.UsageRecord
	TotalOrders int
}

// DiscountBudget reports budget utilization from pre-aggregated warehouse
// rows, limited to discounts that carry a budget cap.
func (d *Dashboard) DiscountBudget(ctx context.Context, r analytics.Range) (BudgetResult, error) {
	discounts, err := d.snapshot(ctx)
	if err != nil {
		return BudgetResult{}, err
	}

	now := d.now()
	rows, err := d.store.UsageTotals(ctx, r, now)
	if err != nil {
		return BudgetResult{}, fmt.Errorf("warehouse usage totals: %w", err)
	}
	totalOrders, err := d.store.DistinctOrderCount(ctx, r, now)
	if err != nil {
		return BudgetResult{}, fmt.Errorf("warehouse order count: %w", err)
	}

	records := analytics.AggregateFromRows(discounts, rows, d.log)
	capped := records[:0]
	for _, rec := range records {
		if rec.TotalBudget.Sign() > 0 {
			capped = append(capped, rec)
		}
	}
	return BudgetResult{Records: capped, TotalOrders: totalOrders}, nil
}

// DiscountCaps reports budget and application-cap utilization computed live
// from orders inside the window, campaign fields attached.
func (d *Dashboard) DiscountCaps(ctx context.Context, r analytics.Range) (analytics.OrderUsage, error) {
	discounts, err := d.snapshot(ctx)
	if err != nil {
		return analytics.OrderUsage{}, err
	}

	var extra []string
	if start, ok := analytics.WindowStart(d.now(), r, d.loc); ok {
		extra = append(extra, fmt.Sprintf(`createdAt >= "%s"`, commercetools.TimestampPredicate(start)))
	}
	orders, err := d.discountedOrders(ctx, extra...)
	if err != nil {
		return analytics.OrderUsage{}, err
	}
	return analytics.AggregateFromOrders(discounts, orders, d.log), nil
}

// Campaigns classifies the discount snapshot into campaign groups.
func (d *Dashboard) Campaigns(ctx context.Context) ([]analytics.Campaign, error) {
	discounts, err := d.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.ClassifyCampaigns(discounts, d.now()), nil
}

// SalesSummary is the headline figure of the dashboard.
type SalesSummary struct {
	TotalSales   decimal.Decimal
	OrderCount   int
	CurrencyCode string
}

// Summary totals sales over the calendar range.
func (d *Dashboard) Summary(ctx context.Context, r analytics.Range) (SalesSummary, error) {
	page, err := d.Orders(ctx, r)
	if err != nil {
		return SalesSummary{}, err
	}
	currency := models.DefaultCurrency
	if len(page.Results) > 0 && page.Results[0].TotalPrice.CurrencyCode != "" {
		currency = page.Results[0].TotalPrice.CurrencyCode
	}
	return SalesSummary{
		TotalSales:   analytics.TotalSales(page.Results),
		OrderCount:   len(page.Results),
		CurrencyCode: currency,
	}, nil
}

// Performance returns the bucketed sales series for the range.
func (d *Dashboard) Performance(ctx context.Context, r analytics.Range) ([]analytics.SalesPoint, error) {
	page, err := d.Orders(ctx, r)
	if err != nil {
		return nil, err
	}
	return analytics.SalesByBucket(page.Results, r, d.now(), d.loc), nil
}

// TopProducts returns the highest-revenue products of the range.
func (d *Dashboard) TopProducts(ctx context.Context, r analytics.Range, limit int) ([]analytics.ProductSummary, error) {
	page, err := d.Orders(ctx, r)
	if err != nil {
		return nil, err
	}
	return analytics.TopProducts(page.Results, limit), nil
}

// Locations counts the range's orders by billing state or city.
func (d *Dashboard) Locations(ctx context.Context, r analytics.Range, view analytics.LocationView) ([]analytics.LocationCount, error) {
	page, err := d.Orders(ctx, r)
	if err != nil {
		return nil, err
	}
	return analytics.OrdersByLocation(page.Results, view), nil
}
