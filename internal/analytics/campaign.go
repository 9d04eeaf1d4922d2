package analytics

import (
	"sort"
	"strings"
	"time"

	"discount-dashboard/internal/models"
)

// Status is a campaign's derived lifecycle state.
type Status string

const (
	StatusActive   Status = "active"
	StatusUpcoming Status = "upcoming"
	StatusOngoing  Status = "ongoing"
	StatusMixed    Status = "mixed"
	StatusExpired  Status = "expired"
	StatusUnknown  Status = "unknown"
)

var statusPriority = map[Status]int{
	StatusActive:   0,
	StatusUpcoming: 1,
	StatusOngoing:  2,
	StatusMixed:    3,
	StatusExpired:  4,
	StatusUnknown:  5,
}

// Campaign is a derived grouping of discounts sharing a campaign key. It is
// never persisted; classification recomputes it from the discount snapshot.
type Campaign struct {
	ID         string
	Name       string
	Discounts  []models.Discount
	ValidFrom  *time.Time
	ValidUntil *time.Time
	Status     Status
	// Reserved for target-group/category rollups; currently unpopulated.
	TargetGroups     []string
	TargetCategories []string
}

// ClassifyCampaigns groups discounts by campaign key, derives each campaign's
// validity window (widest span across members, custom start/end dates taking
// precedence over validFrom/validUntil) and lifecycle status, and returns the
// campaigns in display order. Pure and total: absent or malformed optional
// fields never cause an error.
func ClassifyCampaigns(discounts []models.Discount, now time.Time) []Campaign {
	byKey := make(map[string]*Campaign)
	var order []string

	for _, d := range discounts {
		key := d.CampaignKey()
		c, ok := byKey[key]
		if !ok {
			c = &Campaign{ID: key, Name: campaignDisplayName(d, key), Status: StatusUnknown}
			byKey[key] = c
			order = append(order, key)
		} else if c.Name == defaultCampaignName(key) {
			// A later member may carry the explicit campaign name.
			if n := d.CampaignName(); n != nil {
				c.Name = *n
			}
		}
		c.Discounts = append(c.Discounts, d)

		if start := d.EffectiveStart(); start != nil {
			if c.ValidFrom == nil || start.Before(*c.ValidFrom) {
				c.ValidFrom = start
			}
		}
		if end := d.EffectiveEnd(); end != nil {
			if c.ValidUntil == nil || end.After(*c.ValidUntil) {
				c.ValidUntil = end
			}
		}
	}

	campaigns := make([]Campaign, 0, len(byKey))
	for _, key := range order {
		c := byKey[key]
		c.Status = deriveStatus(c, now)
		sortMembers(c.Discounts)
		campaigns = append(campaigns, *c)
	}
	sortCampaigns(campaigns)
	return campaigns
}

func campaignDisplayName(d models.Discount, key string) string {
	if n := d.CampaignName(); n != nil {
		return *n
	}
	return defaultCampaignName(key)
}

func defaultCampaignName(key string) string {
	if key == models.UncategorizedKey {
		return "Uncategorized Campaign"
	}
	return TitleCaseKey(key)
}

// TitleCaseKey turns a kebab- or snake-case key into a Title Case name:
// "summer-sale" becomes "Summer Sale".
func TitleCaseKey(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func deriveStatus(c *Campaign, now time.Time) Status {
	var status Status
	switch {
	case c.ValidFrom != nil && c.ValidUntil != nil:
		switch {
		case now.Before(*c.ValidFrom):
			status = StatusUpcoming
		case now.After(*c.ValidUntil):
			status = StatusExpired
		default:
			status = StatusActive
		}
	case c.ValidFrom != nil:
		if now.Before(*c.ValidFrom) {
			status = StatusUpcoming
		} else {
			status = StatusActive
		}
	case c.ValidUntil != nil:
		if now.After(*c.ValidUntil) {
			status = StatusExpired
		} else {
			status = StatusActive
		}
	default:
		return StatusOngoing
	}

	// Bounds say inactive but a member flag says active: surface the
	// inconsistency instead of silently resolving it either way.
	if status == StatusExpired || status == StatusUpcoming {
		for _, d := range c.Discounts {
			if d.IsActive {
				return StatusMixed
			}
		}
	}
	return status
}

// sortMembers orders a campaign's discounts: active before inactive, then
// descending application cap, then case-insensitive display name.
func sortMembers(ds []models.Discount) {
	sort.SliceStable(ds, func(i, j int) bool {
		a, b := ds[i], ds[j]
		if a.IsActive != b.IsActive {
			return a.IsActive
		}
		if capA, capB := a.ApplicationCap(), b.ApplicationCap(); capA != capB {
			return capA > capB
		}
		return strings.ToLower(a.DisplayName()) < strings.ToLower(b.DisplayName())
	})
}

// sortCampaigns orders campaigns by status priority, then start date
// (earliest first for upcoming, latest first otherwise, dated before
// undated), then case-insensitive name.
func sortCampaigns(cs []Campaign) {
	sort.SliceStable(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if pa, pb := statusPriority[a.Status], statusPriority[b.Status]; pa != pb {
			return pa < pb
		}
		if a.ValidFrom != nil && b.ValidFrom != nil {
			if !a.ValidFrom.Equal(*b.ValidFrom) {
				if a.Status == StatusUpcoming {
					return a.ValidFrom.Before(*b.ValidFrom)
				}
				return a.ValidFrom.After(*b.ValidFrom)
			}
		} else if a.ValidFrom != nil {
			return true
		} else if b.ValidFrom != nil {
			return false
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}
