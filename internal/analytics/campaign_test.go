package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discount-dashboard/internal/models"
)

func strp(s string) *string { return &s }

func campaignDiscount(id, key string, active bool, validFrom, validUntil string) models.Discount {
	d := models.Discount{
		ID:       id,
		Name:     models.LocalizedString{"en-AU": "Discount " + id},
		IsActive: active,
	}
	if validFrom != "" {
		d.ValidFrom = strp(validFrom)
	}
	if validUntil != "" {
		d.ValidUntil = strp(validUntil)
	}
	if key != "" {
		d.Custom = &models.Custom{Fields: models.CustomFields{CampaignKey: strp(key)}}
	}
	return d
}

var now = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

func TestClassifyCampaigns_Active(t *testing.T) {
	discounts := []models.Discount{
		campaignDiscount("d1", "summer-sale", false, "2025-01-01T00:00:00Z", "2025-01-31T00:00:00Z"),
	}
	campaigns := ClassifyCampaigns(discounts, now)
	require.Len(t, campaigns, 1)
	assert.Equal(t, StatusActive, campaigns[0].Status)
}

func TestClassifyCampaigns_Upcoming(t *testing.T) {
	discounts := []models.Discount{
		campaignDiscount("d1", "k", false, "2025-02-01T00:00:00Z", ""),
	}
	campaigns := ClassifyCampaigns(discounts, now)
	require.Len(t, campaigns, 1)
	assert.Equal(t, StatusUpcoming, campaigns[0].Status)
}

func TestClassifyCampaigns_ExpiredWithActiveMemberIsMixed(t *testing.T) {
	discounts := []models.Discount{
		campaignDiscount("d1", "k", true, "", "2025-01-01T00:00:00Z"),
	}
	campaigns := ClassifyCampaigns(discounts, now)
	require.Len(t, campaigns, 1)
	assert.Equal(t, StatusMixed, campaigns[0].Status)
}

func TestClassifyCampaigns_OnlyEndBound(t *testing.T) {
	// End in the future, no start: active.
	discounts := []models.Discount{
		campaignDiscount("d1", "k", false, "", "2025-06-01T00:00:00Z"),
	}
	campaigns := ClassifyCampaigns(discounts, now)
	assert.Equal(t, StatusActive, campaigns[0].Status)

	// End in the past, no active member: expired.
	discounts[0].ValidUntil = strp("2025-01-01T00:00:00Z")
	campaigns = ClassifyCampaigns(discounts, now)
	assert.Equal(t, StatusExpired, campaigns[0].Status)
}

func TestClassifyCampaigns_NoBoundsOngoing(t *testing.T) {
	discounts := []models.Discount{campaignDiscount("d1", "k", true, "", "")}
	campaigns := ClassifyCampaigns(discounts, now)
	assert.Equal(t, StatusOngoing, campaigns[0].Status)
}

func TestClassifyCampaigns_NameFallback(t *testing.T) {
	discounts := []models.Discount{campaignDiscount("d1", "summer-sale", true, "", "")}
	campaigns := ClassifyCampaigns(discounts, now)
	require.Len(t, campaigns, 1)
	assert.Equal(t, "Summer Sale", campaigns[0].Name)
}

func TestClassifyCampaigns_ExplicitNameWins(t *testing.T) {
	d := campaignDiscount("d1", "summer-sale", true, "", "")
	d.Custom.Fields.CampaignName = strp("Summer Mega Sale")
	campaigns := ClassifyCampaigns([]models.Discount{d}, now)
	assert.Equal(t, "Summer Mega Sale", campaigns[0].Name)
}

func TestClassifyCampaigns_UncategorizedDefault(t *testing.T) {
	discounts := []models.Discount{campaignDiscount("d1", "", true, "", "")}
	campaigns := ClassifyCampaigns(discounts, now)
	require.Len(t, campaigns, 1)
	assert.Equal(t, models.UncategorizedKey, campaigns[0].ID)
	assert.Equal(t, "Uncategorized Campaign", campaigns[0].Name)
}

func TestClassifyCampaigns_LegacyKeySpelling(t *testing.T) {
	d := models.Discount{
		ID:   "d1",
		Name: models.LocalizedString{"en": "Legacy"},
		Custom: &models.Custom{Fields: models.CustomFields{
			LegacyCampaignKey: strp("winter-deal"),
		}},
	}
	campaigns := ClassifyCampaigns([]models.Discount{d}, now)
	require.Len(t, campaigns, 1)
	assert.Equal(t, "winter-deal", campaigns[0].ID)
	assert.Equal(t, "Winter Deal", campaigns[0].Name)
}

func TestClassifyCampaigns_WidestWindow(t *testing.T) {
	discounts := []models.Discount{
		campaignDiscount("d1", "k", false, "2025-01-10T00:00:00Z", "2025-01-20T00:00:00Z"),
		campaignDiscount("d2", "k", false, "2025-01-05T00:00:00Z", "2025-01-25T00:00:00Z"),
	}
	campaigns := ClassifyCampaigns(discounts, now)
	require.Len(t, campaigns, 1)
	c := campaigns[0]
	require.NotNil(t, c.ValidFrom)
	require.NotNil(t, c.ValidUntil)
	assert.Equal(t, "2025-01-05", c.ValidFrom.Format("2006-01-02"))
	assert.Equal(t, "2025-01-25", c.ValidUntil.Format("2006-01-02"))
}

func TestClassifyCampaigns_StartDateOverride(t *testing.T) {
	d := campaignDiscount("d1", "k", false, "2025-01-10T00:00:00Z", "")
	d.Custom.Fields.StartDate = strp("2025-01-02T00:00:00Z")
	campaigns := ClassifyCampaigns([]models.Discount{d}, now)
	require.NotNil(t, campaigns[0].ValidFrom)
	assert.Equal(t, "2025-01-02", campaigns[0].ValidFrom.Format("2006-01-02"))
}

func TestClassifyCampaigns_MalformedDatesTreatedAsAbsent(t *testing.T) {
	discounts := []models.Discount{
		campaignDiscount("d1", "k", false, "not-a-date", "also-bad"),
	}
	campaigns := ClassifyCampaigns(discounts, now)
	require.Len(t, campaigns, 1)
	assert.Nil(t, campaigns[0].ValidFrom)
	assert.Nil(t, campaigns[0].ValidUntil)
	assert.Equal(t, StatusOngoing, campaigns[0].Status)
}

func TestClassifyCampaigns_SortOrder(t *testing.T) {
	discounts := []models.Discount{
		campaignDiscount("e1", "ended", false, "2024-11-01T00:00:00Z", "2024-12-01T00:00:00Z"),
		campaignDiscount("a1", "running", false, "2025-01-01T00:00:00Z", "2025-02-01T00:00:00Z"),
		campaignDiscount("u2", "later", false, "2025-03-01T00:00:00Z", "2025-04-01T00:00:00Z"),
		campaignDiscount("u1", "soon", false, "2025-02-01T00:00:00Z", "2025-03-01T00:00:00Z"),
		campaignDiscount("o1", "open-ended", false, "", ""),
	}
	campaigns := ClassifyCampaigns(discounts, now)

	var got []string
	for _, c := range campaigns {
		got = append(got, c.ID)
	}
	// active first, then upcoming (earliest start first), then ongoing,
	// then expired.
	assert.Equal(t, []string{"running", "soon", "later", "open-ended", "ended"}, got)
}

func TestClassifyCampaigns_MemberOrder(t *testing.T) {
	inactive := campaignDiscount("d1", "k", false, "", "")
	lowCap := campaignDiscount("d2", "k", true, "", "")
	cap5 := 5
	lowCap.Custom.Fields.ApplicationCap = &cap5
	highCap := campaignDiscount("d3", "k", true, "", "")
	cap50 := 50
	highCap.Custom.Fields.ApplicationCap = &cap50

	campaigns := ClassifyCampaigns([]models.Discount{inactive, lowCap, highCap}, now)
	require.Len(t, campaigns, 1)

	var got []string
	for _, d := range campaigns[0].Discounts {
		got = append(got, d.ID)
	}
	// Active before inactive, higher cap first among active.
	assert.Equal(t, []string{"d3", "d2", "d1"}, got)
}

func TestTitleCaseKey(t *testing.T) {
	assert.Equal(t, "Summer Sale", TitleCaseKey("summer-sale"))
	assert.Equal(t, "Black Friday 2025", TitleCaseKey("black_friday_2025"))
	assert.Equal(t, "Vip", TitleCaseKey("VIP"))
}
