package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Component is one line of a bill of materials priced for import.
type Component struct {
	HSCode      string
	Origin      Country
	Value       decimal.Decimal
	Description string
}

// TariffRateRecord is a base-rate row. A NULL rate column means no data; it is
// never read as zero.
type TariffRateRecord struct {
	HSCode        string              `db:"hs_code"`
	MFNRate       decimal.NullDecimal `db:"mfn_rate"`
	USMCARate     decimal.NullDecimal `db:"usmca_rate"`
	EffectiveDate *time.Time          `db:"effective_date"`
	Source        string              `db:"source"`
}

// PolicyAdjustment is an additive duty scoped to an HS prefix and optionally an origin.
type PolicyAdjustment struct {
	PolicyType    PolicyType          `db:"policy_type"`
	HSPrefix      string              `db:"hs_prefix"`
	OriginCountry *string             `db:"origin_country"`
	Rate          decimal.NullDecimal `db:"rate"`
	EffectiveFrom *time.Time          `db:"effective_from"`
	EffectiveTo   *time.Time          `db:"effective_to"`
	Description   string              `db:"description"`
}

// Label is a short human readable name for the adjustment.
func (p *PolicyAdjustment) Label() string {
	if p.Description != "" {
		return p.Description
	}
	return string(p.PolicyType) + " (" + p.HSPrefix + ")"
}

// RateLookupResult is everything the rate store knows for one HS code and lane.
type RateLookupResult struct {
	HSCode            string
	Origin            Country
	Destination       Country
	MFNRate           decimal.NullDecimal
	USMCARate         decimal.NullDecimal
	PolicyAdjustments []PolicyAdjustment
	PolicyDetails     []string
	MatchLevel        MatchLevel
	MatchedCode       string
	Source            string
	EffectiveDate     *time.Time
}

// PolicyTotal sums the policy adjustment rates. The result is invalid when any
// adjustment has an unknown rate.
func (r *RateLookupResult) PolicyTotal() decimal.NullDecimal {
	total := decimal.Zero
	for i := range r.PolicyAdjustments {
		rate := r.PolicyAdjustments[i].Rate
		if !rate.Valid {
			return decimal.NullDecimal{}
		}
		total = total.Add(rate.Decimal)
	}
	return decimal.NewNullDecimal(total)
}

// Freshness says where a cached answer came from and when it was fetched.
type Freshness struct {
	FetchedAt time.Time
	Source    FreshnessSource
	Stale     bool
}

// ComponentResult is the duty outcome of a single component for one destination.
type ComponentResult struct {
	Index             int
	HSCode            string
	NormalizedHSCode  string
	Padded            bool
	Origin            Country
	Value             decimal.Decimal
	MFNRate           decimal.NullDecimal
	USMCARate         decimal.NullDecimal
	PolicyRate        decimal.NullDecimal
	PolicyAdjustments []PolicyAdjustment
	MFNDuty           decimal.NullDecimal
	USMCADuty         decimal.NullDecimal
	Savings           decimal.NullDecimal
	MatchLevel        MatchLevel
	Incomplete        bool
	Reason            string
	Stale             bool
}

// DestinationResult aggregates component outcomes for one destination. Totals are
// null when any component is incomplete.
type DestinationResult struct {
	Destination          Country
	TotalValue           decimal.Decimal
	TotalMFNDuty         decimal.NullDecimal
	TotalUSMCADuty       decimal.NullDecimal
	Savings              decimal.NullDecimal
	SavingsPercentage    decimal.NullDecimal
	EffectiveDutyRate    decimal.NullDecimal
	PolicyAdjustments    []string
	DataQuality          DataQuality
	IncompleteComponents int
	Stale                bool
	Components           []ComponentResult
}

// ComponentBreakdown shows one input component across every requested destination.
type ComponentBreakdown struct {
	Index        int
	HSCode       string
	Origin       Country
	Value        decimal.Decimal
	Description  string
	Destinations map[Country]ComponentResult
}

// ShippingRate is a freight quote for a lane.
type ShippingRate struct {
	Origin      Country         `json:"origin"`
	Destination Country         `json:"destination"`
	Mode        string          `json:"mode"`
	CostPerKg   decimal.Decimal `json:"cost_per_kg"`
	Currency    string          `json:"currency"`
	TransitDays int             `json:"transit_days"`
	AsOf        time.Time       `json:"as_of"`
}

// CountryRisk is a supplier-country risk score, 0 (low) to 100 (high).
type CountryRisk struct {
	Country Country   `json:"country"`
	Score   float64   `json:"score"`
	Level   string    `json:"level"`
	AsOf    time.Time `json:"as_of"`
}

// TradeRoute is an infrastructure fact: a port of entry serving a lane.
type TradeRoute struct {
	Origin      Country `db:"origin_country" json:"origin"`
	Destination Country `db:"destination_country" json:"destination"`
	PortOfEntry string  `db:"port_of_entry" json:"port_of_entry"`
	Mode        string  `db:"mode" json:"mode"`
	TransitDays int     `db:"transit_days" json:"transit_days"`
}

// BusinessPattern is a slowly changing business statistic such as seasonality.
type BusinessPattern struct {
	Key       string    `db:"pattern_key" json:"key"`
	Payload   string    `db:"payload" json:"payload"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// OperationalFactors are non-duty considerations attached to a destination.
type OperationalFactors struct {
	Destination Country
	Shipping    *ShippingRate
	OriginRisk  []CountryRisk
	Routes      []TradeRoute
	Seasonality *BusinessPattern
}

// ComparisonResult is the outcome of comparing duty exposure across destinations.
// It is created per request and never persisted.
type ComparisonResult struct {
	ID                     uuid.UUID
	Destinations           []Country
	PerDestination         map[Country]*DestinationResult
	Recommendation         string
	RecommendedDestination Country
	ComponentBreakdown     []ComponentBreakdown
	DataQuality            DataQuality
	Warnings               []string
	OperationalFactors     map[Country]*OperationalFactors
	ManufacturingLocation  Country
	GeneratedAt            time.Time
}
