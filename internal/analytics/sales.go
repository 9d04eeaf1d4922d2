package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"discount-dashboard/internal/models"
	"discount-dashboard/pkg/money"
)

// SalesPoint is one bucket of a sales-over-time series.
type SalesPoint struct {
	Time   string  `json:"time"`
	Amount float64 `json:"amount"`
}

// ProductSummary aggregates a product's revenue over a set of orders.
type ProductSummary struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Revenue      float64 `json:"revenue"`
	QuantitySold int64   `json:"quantitySold"`
}

// LocationCount counts orders per billing state or city.
type LocationCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// TotalSales sums order totals in currency units.
func TotalSales(orders []models.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(money.FromCents(o.TotalPrice.CentAmount))
	}
	return total
}

// SalesByBucket buckets order totals over the range: hours of the day for
// today, weekdays for week, days of the month for month. Buckets are
// pre-seeded with zeros so the series has no gaps, and order timestamps are
// interpreted in the given location.
func SalesByBucket(orders []models.Order, r Range, now time.Time, loc *time.Location) []SalesPoint {
	keys, keyOf := bucketScheme(r, now, loc)

	amounts := make(map[string]decimal.Decimal, len(keys))
	for _, k := range keys {
		amounts[k] = decimal.Zero
	}
	for _, o := range orders {
		created := o.CreatedTime()
		if created.IsZero() {
			continue
		}
		k := keyOf(created.In(loc))
		if cur, ok := amounts[k]; ok {
			amounts[k] = cur.Add(money.FromCents(o.TotalPrice.CentAmount))
		}
	}

	points := make([]SalesPoint, len(keys))
	for i, k := range keys {
		f, _ := amounts[k].Round(2).Float64()
		points[i] = SalesPoint{Time: k, Amount: f}
	}
	return points
}

func bucketScheme(r Range, now time.Time, loc *time.Location) ([]string, func(time.Time) string) {
	switch r {
	case RangeWeek:
		keys := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
		return keys, func(t time.Time) string { return t.Format("Mon") }
	case RangeMonth:
		now = now.In(loc)
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		days := first.AddDate(0, 1, -1).Day()
		keys := make([]string, days)
		for i := range keys {
			keys[i] = first.AddDate(0, 0, i).Format("02 Jan")
		}
		return keys, func(t time.Time) string { return t.Format("02 Jan") }
	default: // today
		keys := make([]string, 24)
		for i := range keys {
			keys[i] = time.Date(0, 1, 1, i, 0, 0, 0, time.UTC).Format("15:00")
		}
		return keys, func(t time.Time) string { return t.Format("15:00") }
	}
}

// TopProducts returns the n highest-revenue products across the orders,
// revenue being unit price times quantity.
func TopProducts(orders []models.Order, n int) []ProductSummary {
	byID := make(map[string]*ProductSummary)
	for _, o := range orders {
		for _, item := range o.LineItems {
			revenue := money.FromCents(item.Price.Value.CentAmount).
				Mul(decimal.NewFromInt(item.Quantity))
			p, ok := byID[item.ProductID]
			if !ok {
				sku := "N/A"
				if item.Variant.SKU != nil && *item.Variant.SKU != "" {
					sku = *item.Variant.SKU
				}
				p = &ProductSummary{
					ID:   item.ProductID,
					Name: item.Name.Resolve("Unknown Product"),
					SKU:  sku,
				}
				byID[item.ProductID] = p
			}
			f, _ := revenue.Float64()
			p.Revenue += f
			p.QuantitySold += item.Quantity
		}
	}

	products := make([]ProductSummary, 0, len(byID))
	for _, p := range byID {
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].Revenue != products[j].Revenue {
			return products[i].Revenue > products[j].Revenue
		}
		return products[i].Name < products[j].Name
	})
	if n > 0 && len(products) > n {
		products = products[:n]
	}
	return products
}

// LocationView selects the grouping key for OrdersByLocation.
type LocationView string

const (
	ViewState LocationView = "state"
	ViewCity  LocationView = "city"
)

// OrdersByLocation counts orders per billing state or city, most orders
// first. Orders without the selected address field are skipped.
func OrdersByLocation(orders []models.Order, view LocationView) []LocationCount {
	counts := make(map[string]int)
	for _, o := range orders {
		if o.BillingAddress == nil {
			continue
		}
		key := o.BillingAddress.State
		if view == ViewCity {
			key = o.BillingAddress.City
		}
		if key == "" {
			continue
		}
		counts[key]++
	}

	out := make([]LocationCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, LocationCount{Name: name, Value: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}
