package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalizedStringResolve(t *testing.T) {
	assert.Equal(t, "G'day", LocalizedString{"en-AU": "G'day", "en": "Hello"}.Resolve("x"))
	assert.Equal(t, "Hello", LocalizedString{"en": "Hello", "de": "Hallo"}.Resolve("x"))
	// No preferred locale: smallest locale tag wins, deterministically.
	assert.Equal(t, "Hallo", LocalizedString{"fr": "Salut", "de": "Hallo"}.Resolve("x"))
	assert.Equal(t, "x", LocalizedString{}.Resolve("x"))
	assert.Equal(t, "x", LocalizedString(nil).Resolve("x"))
}

func TestDiscountDefaults(t *testing.T) {
	var d Discount

	budget, currency := d.BudgetCap()
	assert.True(t, budget.IsZero())
	assert.Equal(t, DefaultCurrency, currency)
	assert.Equal(t, 0, d.ApplicationCap())
	assert.False(t, d.AutoDisable())
	assert.Equal(t, UncategorizedKey, d.CampaignKey())
	assert.Nil(t, d.CampaignName())
	assert.Nil(t, d.EffectiveStart())
	assert.Nil(t, d.EffectiveEnd())
	assert.Equal(t, "Unnamed Discount", d.DisplayName())
}

func TestDiscountBudgetCap(t *testing.T) {
	d := Discount{Custom: &Custom{Fields: CustomFields{
		Cap: &Money{CentAmount: 100000, CurrencyCode: "AUD"},
	}}}
	budget, currency := d.BudgetCap()
	assert.Equal(t, "1000", budget.String())
	assert.Equal(t, "AUD", currency)
}

func TestCampaignKeySpellings(t *testing.T) {
	key := "summer-sale"
	legacy := "winter-deal"

	d := Discount{Custom: &Custom{Fields: CustomFields{CampaignKey: &key}}}
	assert.Equal(t, "summer-sale", d.CampaignKey())

	d = Discount{Custom: &Custom{Fields: CustomFields{LegacyCampaignKey: &legacy}}}
	assert.Equal(t, "winter-deal", d.CampaignKey())

	// Corrected spelling wins when both are set.
	d = Discount{Custom: &Custom{Fields: CustomFields{CampaignKey: &key, LegacyCampaignKey: &legacy}}}
	assert.Equal(t, "summer-sale", d.CampaignKey())
}

func TestEffectiveDates(t *testing.T) {
	from := "2025-01-10T00:00:00Z"
	override := "2025-01-02"
	d := Discount{
		ValidFrom: &from,
		Custom:    &Custom{Fields: CustomFields{StartDate: &override}},
	}
	start := d.EffectiveStart()
	require.NotNil(t, start)
	assert.Equal(t, "2025-01-02", start.Format("2006-01-02"))

	// Malformed override falls back to validFrom.
	bad := "not-a-date"
	d.Custom.Fields.StartDate = &bad
	start = d.EffectiveStart()
	require.NotNil(t, start)
	assert.Equal(t, "2025-01-10", start.Format("2006-01-02"))

	// Everything malformed: absent, not an error.
	d.ValidFrom = &bad
	assert.Nil(t, d.EffectiveStart())
}

func TestDiscountDecoding(t *testing.T) {
	payload := `{
		"id": "d1",
		"version": 3,
		"name": {"en-AU": "Ten Off"},
		"value": {"type": "relative", "permyriad": 1000},
		"isActive": true,
		"requiresDiscountCode": false,
		"custom": {
			"fields": {
				"cap": {"centAmount": 100000, "currencyCode": "AUD"},
				"application-cap": 50,
				"auto": true,
				"campaing-key": "summer-sale"
			}
		}
	}`

	var d Discount
	require.NoError(t, json.Unmarshal([]byte(payload), &d))
	assert.Equal(t, "d1", d.ID)
	assert.Equal(t, "Ten Off", d.DisplayName())
	assert.Equal(t, 1000, d.Value.Permyriad)
	assert.Equal(t, 50, d.ApplicationCap())
	assert.True(t, d.AutoDisable())
	assert.Equal(t, "summer-sale", d.CampaignKey())

	budget, _ := d.BudgetCap()
	assert.Equal(t, "1000", budget.String())
}

func TestOrderCreatedTime(t *testing.T) {
	o := Order{CreatedAt: "2025-01-15T10:30:00Z"}
	assert.Equal(t, 10, o.CreatedTime().UTC().Hour())

	bad := Order{CreatedAt: "nope"}
	assert.True(t, bad.CreatedTime().IsZero())
}
