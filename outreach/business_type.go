// Package outreach contains the cadence scheduling and timing-recommendation core:
// business classification, call-window scoring, cadence generation, pipeline
// auto-advance, and session queue building. Everything in this package is a pure,
// synchronous computation over already-fetched data; persistence and transport
// live elsewhere.
package outreach

import (
	"strings"
)

// BusinessType is a coarse bucket used to pick call-window tables for a lead
type BusinessType string

const (
	BusinessTypeRestaurant           BusinessType = "restaurant"
	BusinessTypeRetail               BusinessType = "retail"
	BusinessTypeProfessionalServices BusinessType = "professional_services"
	BusinessTypeHealthWellness       BusinessType = "health_wellness"
	BusinessTypeHomeServices         BusinessType = "home_services"
	BusinessTypeAutomotive           BusinessType = "automotive"
	BusinessTypeCreator              BusinessType = "creator"
	BusinessTypeGeneral              BusinessType = "general"
)

// String returns the string representation of the business type
func (b BusinessType) String() string {
	return string(b)
}

// Valid checks if the business type is valid
func (b BusinessType) Valid() bool {
	switch b {
	case BusinessTypeRestaurant, BusinessTypeRetail, BusinessTypeProfessionalServices,
		BusinessTypeHealthWellness, BusinessTypeHomeServices, BusinessTypeAutomotive,
		BusinessTypeCreator, BusinessTypeGeneral:
		return true
	default:
		return false
	}
}

// classificationEntry pairs a business type with its match keywords. Matching is
// case-insensitive substring search; the first type whose keyword matches wins,
// so the slice order is part of the contract.
type classificationEntry struct {
	Type     BusinessType
	Keywords []string
}

var classificationTable = []classificationEntry{
	{BusinessTypeRestaurant, []string{
		"restaurant", "cafe", "coffee", "pizza", "pizzeria", "bakery",
		"sports bar", "wine bar", "grill", "diner", "bistro", "food",
		"catering", "taco", "sushi", "deli", "pub", "brewery", "eatery",
	}},
	// Health and professional keywords come before retail so "Barber Shop"
	// and "Marketing Agency" do not fall through to the generic "shop" and
	// "market" matches.
	{BusinessTypeHealthWellness, []string{
		"gym", "fitness", "yoga", "pilates", "spa", "salon", "massage",
		"wellness", "chiro", "dental", "dentist", "clinic", "barber",
		"nail", "therapy",
	}},
	{BusinessTypeProfessionalServices, []string{
		"law", "legal", "attorney", "account", "bookkeep", "insurance",
		"real estate", "realtor", "consult", "marketing", "finance",
		"notary", "architect", "engineer", "agency",
	}},
	{BusinessTypeRetail, []string{
		"retail", "boutique", "shop", "store", "clothing", "apparel",
		"jewelry", "furniture", "bookstore", "florist", "market", "gift",
	}},
	{BusinessTypeHomeServices, []string{
		"plumb", "hvac", "roof", "landscap", "electric", "cleaning",
		"pest", "paint", "contractor", "handyman", "remodel", "lawn",
		"moving", "locksmith",
	}},
	{BusinessTypeAutomotive, []string{
		"auto", "car wash", "tire", "mechanic", "detailing", "body shop",
		"oil change", "dealership", "towing", "transmission",
	}},
	{BusinessTypeCreator, []string{
		"influencer", "creator", "photograph", "videograph", "artist",
		"musician", "podcast", "blogger", "youtuber", "streamer", "studio",
	}},
}

// ClassifyBusiness maps a free-text category to one of the eight business-type
// buckets. Absent or unmatched input classifies as general; the function always
// returns a valid type.
func ClassifyBusiness(category *string) BusinessType {
	if category == nil {
		return BusinessTypeGeneral
	}

	normalized := strings.ToLower(strings.TrimSpace(*category))
	if normalized == "" {
		return BusinessTypeGeneral
	}

	for _, entry := range classificationTable {
		for _, kw := range entry.Keywords {
			if strings.Contains(normalized, kw) {
				return entry.Type
			}
		}
	}

	return BusinessTypeGeneral
}
