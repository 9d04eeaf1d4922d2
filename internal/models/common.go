package models

import "sort"

// Money is a platform amount in minor units (cents).
type Money struct {
	CentAmount   int64  `json:"centAmount"`
	CurrencyCode string `json:"currencyCode"`
}

// LocalizedString maps locale tags to display strings.
type LocalizedString map[string]string

// Resolve picks the display string for the dashboard locale: en-AU, then en,
// then the lexicographically smallest locale so the choice is deterministic.
func (ls LocalizedString) Resolve(fallback string) string {
	if s, ok := ls["en-AU"]; ok && s != "" {
		return s
	}
	if s, ok := ls["en"]; ok && s != "" {
		return s
	}
	keys := make([]string, 0, len(ls))
	for k := range ls {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if ls[k] != "" {
			return ls[k]
		}
	}
	return fallback
}

// Reference points at another platform resource, expanded or not.
type Reference struct {
	TypeID string `json:"typeId"`
	ID     string `json:"id"`
}

// CartDiscountPage is the paged response of a cart-discount query.
type CartDiscountPage struct {
	Limit   int        `json:"limit"`
	Offset  int        `json:"offset"`
	Count   int        `json:"count"`
	Total   int        `json:"total"`
	Results []Discount `json:"results"`
}

// OrderPage is the paged response of an order query.
type OrderPage struct {
	Limit   int     `json:"limit"`
	Offset  int     `json:"offset"`
	Count   int     `json:"count"`
	Total   int     `json:"total"`
	Results []Order `json:"results"`
}
