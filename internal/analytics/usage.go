package analytics

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"discount-dashboard/internal/models"
	"discount-dashboard/pkg/money"
)

// UsageRecord is the normalized per-discount utilization record: spend to
// date, application count and the derived percentages against the discount's
// budget and application caps.
type UsageRecord struct {
	ID               string
	Name             string
	Key              *string
	IsActive         bool
	Version          int
	TotalBudget      decimal.Decimal
	TotalSpent       decimal.Decimal
	TotalUsage       int
	ApplicationCap   int
	BudgetPercentage float64
	UsagePercentage  float64
	UniqueOrders     int
	CurrencyCode     string
	AutoDisable      bool
	CampaignKey      string
	CampaignName     *string
}

// UsageRow is a pre-grouped usage fact, one per discount, as produced by the
// warehouse aggregation query.
type UsageRow struct {
	DiscountID string
	TotalSpent decimal.Decimal
	OrderCount int
}

// OrderUsage is the result of scanning raw orders for discount applications.
type OrderUsage struct {
	Records []UsageRecord
	// TotalOrdersValue is the summed order total of every scanned order, in
	// currency units.
	TotalOrdersValue decimal.Decimal
	// DistinctOrders counts scanned orders that applied at least one discount.
	DistinctOrders int
}

func newRecord(d models.Discount) UsageRecord {
	budget, currency := d.BudgetCap()
	return UsageRecord{
		ID:             d.ID,
		Name:           d.DisplayName(),
		Key:            d.Key,
		IsActive:       d.IsActive,
		Version:        d.Version,
		TotalBudget:    budget,
		TotalSpent:     decimal.Zero,
		ApplicationCap: d.ApplicationCap(),
		CurrencyCode:   currency,
		AutoDisable:    d.AutoDisable(),
		CampaignKey:    d.CampaignKey(),
		CampaignName:   d.CampaignName(),
	}
}

func finalize(rec *UsageRecord) {
	rec.BudgetPercentage = money.Percentage(rec.TotalSpent, rec.TotalBudget)
	rec.UsagePercentage = money.Ratio(rec.TotalUsage, rec.ApplicationCap)
}

// AggregateFromOrders computes per-discount usage live from fetched orders,
// walking line items, discounted-price entries and included discounts. Usage
// facts referencing a discount absent from the snapshot are logged and
// skipped; partial results are always returned.
func AggregateFromOrders(discounts []models.Discount, orders []models.Order, log *slog.Logger) OrderUsage {
	byID := make(map[string]*UsageRecord, len(discounts))
	records := make([]UsageRecord, len(discounts))
	for i, d := range discounts {
		records[i] = newRecord(d)
		byID[d.ID] = &records[i]
	}

	seenOrders := make(map[string]map[string]bool) // discount id -> order ids
	discountedOrders := make(map[string]bool)
	total := decimal.Zero

	for _, order := range orders {
		total = total.Add(money.FromCents(order.TotalPrice.CentAmount))
		for _, item := range order.LineItems {
			for _, priceInfo := range item.DiscountedPricePerQuantity {
				if priceInfo.DiscountedPrice == nil {
					continue
				}
				for _, inc := range priceInfo.DiscountedPrice.IncludedDiscounts {
					id := inc.Discount.ID
					if id == "" {
						log.Warn("discount reference without id", "order", order.ID)
						continue
					}
					rec, ok := byID[id]
					if !ok {
						log.Warn("usage references unknown discount",
							"discount", id, "order", order.ID)
						continue
					}
					discountedOrders[order.ID] = true
					amount := money.FromCents(inc.DiscountedAmount.CentAmount).
						Mul(decimal.NewFromInt(priceInfo.Quantity))
					rec.TotalSpent = rec.TotalSpent.Add(amount)
					rec.TotalUsage++
					if rec.CurrencyCode == models.DefaultCurrency && inc.DiscountedAmount.CurrencyCode != "" {
						rec.CurrencyCode = inc.DiscountedAmount.CurrencyCode
					}
					if seenOrders[id] == nil {
						seenOrders[id] = make(map[string]bool)
					}
					seenOrders[id][order.ID] = true
				}
			}
		}
	}

	for i := range records {
		records[i].UniqueOrders = len(seenOrders[records[i].ID])
		finalize(&records[i])
	}

	return OrderUsage{
		Records:          records,
		TotalOrdersValue: total,
		DistinctOrders:   len(discountedOrders),
	}
}

// AggregateFromRows merges pre-grouped warehouse usage rows into the discount
// snapshot. Discounts without a matching row keep zero usage; rows without a
// matching discount are logged and skipped.
func AggregateFromRows(discounts []models.Discount, rows []UsageRow, log *slog.Logger) []UsageRecord {
	byID := make(map[string]*UsageRecord, len(discounts))
	records := make([]UsageRecord, len(discounts))
	for i, d := range discounts {
		records[i] = newRecord(d)
		byID[d.ID] = &records[i]
	}

	for _, row := range rows {
		rec, ok := byID[row.DiscountID]
		if !ok {
			log.Warn("warehouse row references unknown discount", "discount", row.DiscountID)
			continue
		}
		rec.TotalSpent = row.TotalSpent
		rec.TotalUsage = row.OrderCount
		rec.UniqueOrders = row.OrderCount
	}

	for i := range records {
		finalize(&records[i])
	}
	return records
}
