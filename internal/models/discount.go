package models

import (
	"time"

	"github.com/shopspring/decimal"

	"discount-dashboard/pkg/money"
)

// UncategorizedKey groups discounts that carry no campaign key.
const UncategorizedKey = "uncategorized"

// DefaultCurrency is assumed when a budget cap carries no currency code.
const DefaultCurrency = "AUD"

// DiscountValue is the tagged union of a cart discount's value: relative
// (permyriad) or absolute/fixed (money).
type DiscountValue struct {
	Type      string  `json:"type"`
	Permyriad int     `json:"permyriad,omitempty"`
	Money     []Money `json:"money,omitempty"`
}

// CustomFields are the optional dashboard-specific fields attached to a cart
// discount. Every field is genuinely optional; absence is never an error.
//
// The platform schema spells the campaign key field "campaing-key"; both the
// corrected and the legacy spelling are accepted.
type CustomFields struct {
	Cap               *Money  `json:"cap,omitempty"`
	Used              *Money  `json:"used,omitempty"`
	ApplicationCap    *int    `json:"application-cap,omitempty"`
	Auto              *bool   `json:"auto,omitempty"`
	CampaignKey       *string `json:"campaign-key,omitempty"`
	LegacyCampaignKey *string `json:"campaing-key,omitempty"`
	CampaignName      *string `json:"campaign-name,omitempty"`
	StartDate         *string `json:"start-date,omitempty"`
	EndDate           *string `json:"end-date,omitempty"`
}

// Custom wraps the custom-field container as the platform nests it.
type Custom struct {
	Fields CustomFields `json:"fields"`
}

// Discount is a platform cart discount as read by the dashboard.
type Discount struct {
	ID                   string          `json:"id"`
	Version              int             `json:"version"`
	Key                  *string         `json:"key,omitempty"`
	Name                 LocalizedString `json:"name"`
	Description          LocalizedString `json:"description,omitempty"`
	Value                DiscountValue   `json:"value"`
	IsActive             bool            `json:"isActive"`
	ValidFrom            *string         `json:"validFrom,omitempty"`
	ValidUntil           *string         `json:"validUntil,omitempty"`
	RequiresDiscountCode bool            `json:"requiresDiscountCode"`
	SortOrder            string          `json:"sortOrder,omitempty"`
	CartPredicate        string          `json:"cartPredicate,omitempty"`
	CreatedAt            string          `json:"createdAt,omitempty"`
	LastModifiedAt       string          `json:"lastModifiedAt,omitempty"`
	Custom               *Custom         `json:"custom,omitempty"`
}

// DisplayName resolves the discount name for the dashboard locale.
func (d Discount) DisplayName() string {
	return d.Name.Resolve("Unnamed Discount")
}

func (d Discount) fields() CustomFields {
	if d.Custom == nil {
		return CustomFields{}
	}
	return d.Custom.Fields
}

// BudgetCap returns the budget ceiling in currency units (zero when no cap is
// set) and its currency code.
func (d Discount) BudgetCap() (decimal.Decimal, string) {
	f := d.fields()
	if f.Cap == nil {
		return decimal.Zero, DefaultCurrency
	}
	code := f.Cap.CurrencyCode
	if code == "" {
		code = DefaultCurrency
	}
	return money.FromCents(f.Cap.CentAmount), code
}

// ApplicationCap returns the maximum number of applications, zero when unset.
func (d Discount) ApplicationCap() int {
	if f := d.fields(); f.ApplicationCap != nil {
		return *f.ApplicationCap
	}
	return 0
}

// AutoDisable reports whether the discount should be disabled once a cap is
// reached.
func (d Discount) AutoDisable() bool {
	if f := d.fields(); f.Auto != nil {
		return *f.Auto
	}
	return false
}

// CampaignKey returns the campaign grouping key, preferring the corrected
// field name over the legacy spelling, defaulting to UncategorizedKey.
func (d Discount) CampaignKey() string {
	f := d.fields()
	if f.CampaignKey != nil && *f.CampaignKey != "" {
		return *f.CampaignKey
	}
	if f.LegacyCampaignKey != nil && *f.LegacyCampaignKey != "" {
		return *f.LegacyCampaignKey
	}
	return UncategorizedKey
}

// CampaignName returns the explicit campaign display name, if any.
func (d Discount) CampaignName() *string {
	if f := d.fields(); f.CampaignName != nil && *f.CampaignName != "" {
		return f.CampaignName
	}
	return nil
}

// EffectiveStart is the display start of the discount: the start-date custom
// field when present, else validFrom. Malformed timestamps count as absent.
func (d Discount) EffectiveStart() *time.Time {
	if t := parseTimestamp(d.fields().StartDate); t != nil {
		return t
	}
	return parseTimestamp(d.ValidFrom)
}

// EffectiveEnd mirrors EffectiveStart for the end bound.
func (d Discount) EffectiveEnd() *time.Time {
	if t := parseTimestamp(d.fields().EndDate); t != nil {
		return t
	}
	return parseTimestamp(d.ValidUntil)
}

func parseTimestamp(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, *s); err == nil {
			return &t
		}
	}
	return nil
}
