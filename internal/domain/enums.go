package domain

import (
	"sort"
	"strings"
)

// Country is an ISO 3166-1 alpha-2 country code.
type Country string

const (
	CountryUS Country = "US"
	CountryMX Country = "MX"
	CountryCA Country = "CA"
)

// SupportedDestinations lists the import destinations with rate tables behind them.
var SupportedDestinations = map[Country]bool{
	CountryUS: true,
	CountryMX: true,
}

// ParseCountry trims and upper-cases a country code.
func ParseCountry(s string) Country {
	return Country(strings.ToUpper(strings.TrimSpace(s)))
}

// IsSupportedDestination reports whether rates can be resolved for imports into c.
func IsSupportedDestination(c Country) bool {
	return SupportedDestinations[c]
}

// SupportedDestinationList returns the supported destinations sorted alphabetically.
func SupportedDestinationList() []string {
	out := make([]string, 0, len(SupportedDestinations))
	for c := range SupportedDestinations {
		out = append(out, string(c))
	}
	sort.Strings(out)
	return out
}

// DataQuality says whether every figure in a result is backed by rate data.
type DataQuality string

const (
	DataQualityComplete DataQuality = "complete"
	DataQualityPartial  DataQuality = "partial"
)

// MatchLevel records which step of the HS fallback chain produced the base rates.
type MatchLevel string

const (
	MatchExact8  MatchLevel = "exact_8"
	MatchPrefix6 MatchLevel = "prefix_6"
	MatchPrefix4 MatchLevel = "prefix_4"
	MatchNone    MatchLevel = "none"
)

// MatchLevelForLength maps an HS prefix length to its MatchLevel.
func MatchLevelForLength(n int) MatchLevel {
	switch n {
	case 8:
		return MatchExact8
	case 6:
		return MatchPrefix6
	case 4:
		return MatchPrefix4
	default:
		return MatchNone
	}
}

// PolicyType identifies the legal basis of an additive duty.
type PolicyType string

const (
	PolicySection301   PolicyType = "section_301"
	PolicySection232   PolicyType = "section_232"
	PolicySection201   PolicyType = "section_201"
	PolicyAntidumping  PolicyType = "antidumping"
	PolicyCountervail  PolicyType = "countervailing"
	PolicySafeguard    PolicyType = "safeguard"
	PolicyOtherOverlay PolicyType = "other"
)

// DataCategory groups cached data by how long it may be served without a refetch.
type DataCategory string

const (
	CategoryTreatyRate      DataCategory = "treaty_rate"
	CategoryInfrastructure  DataCategory = "infrastructure"
	CategoryBusinessPattern DataCategory = "business_pattern"
	CategoryTariffRate      DataCategory = "tariff_rate"
	CategoryShippingRate    DataCategory = "shipping_rate"
	CategoryCountryRisk     DataCategory = "country_risk"
	CategoryPolicyOverlay   DataCategory = "policy_overlay"
)

// AllCategories lists every DataCategory.
var AllCategories = []DataCategory{
	CategoryTreatyRate,
	CategoryInfrastructure,
	CategoryBusinessPattern,
	CategoryTariffRate,
	CategoryShippingRate,
	CategoryCountryRisk,
	CategoryPolicyOverlay,
}

// ParseCategory validates a category name.
func ParseCategory(s string) (DataCategory, bool) {
	for _, c := range AllCategories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// FreshnessSource says where a classifier answer came from.
type FreshnessSource string

const (
	SourceStable   FreshnessSource = "stable"
	SourceVolatile FreshnessSource = "cache"
	SourceLive     FreshnessSource = "live"
)
