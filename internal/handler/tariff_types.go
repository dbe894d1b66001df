package handler

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"tradeflow/internal/domain"
	"tradeflow/internal/service"
)

// --- Request Types ---

// ComponentRequest is one bill-of-materials line.
type ComponentRequest struct {
	HSCode      string           `json:"hs_code" example:"8542.31.00"`
	Origin      string           `json:"origin" example:"CN"`
	Value       *decimal.Decimal `json:"value" swaggertype:"number" example:"1000000"`
	Description string           `json:"description,omitempty" example:"Microcontroller"`
}

// CompareRequest is the body of a multi-destination comparison.
type CompareRequest struct {
	Components            []ComponentRequest `json:"components"`
	Destinations          []string           `json:"destinations" example:"US,MX"`
	ManufacturingLocation string             `json:"manufacturing_location,omitempty" example:"MX"`
}

// SavingsRequest is the body of a single-destination savings calculation.
type SavingsRequest struct {
	Components  []ComponentRequest `json:"components"`
	Destination string             `json:"destination" example:"US"`
}

// InvalidateRequest names the cache category to drop.
type InvalidateRequest struct {
	Category string `json:"category" binding:"required" example:"shipping_rate"`
}

// ReloadTreatyRequest switches the active treaty schedule version.
type ReloadTreatyRequest struct {
	Version string `json:"version" binding:"required" example:"2025-07"`
}

// ToComponents converts request lines to domain components. Field checks beyond
// presence of a value are left to the service.
func ToComponents(reqs []ComponentRequest) ([]domain.Component, error) {
	out := make([]domain.Component, len(reqs))
	for i, r := range reqs {
		if r.Value == nil {
			return nil, domain.NewValidationError(fmt.Sprintf("components[%d].value", i), "value is required")
		}
		out[i] = domain.Component{
			HSCode:      r.HSCode,
			Origin:      domain.ParseCountry(r.Origin),
			Value:       *r.Value,
			Description: r.Description,
		}
	}
	return out, nil
}

// ToComparisonInput converts a CompareRequest to service input.
func (r *CompareRequest) ToComparisonInput() (service.ComparisonInput, error) {
	components, err := ToComponents(r.Components)
	if err != nil {
		return service.ComparisonInput{}, err
	}
	dests := make([]domain.Country, len(r.Destinations))
	for i, d := range r.Destinations {
		dests[i] = domain.Country(d)
	}
	return service.ComparisonInput{
		Components:            components,
		Destinations:          dests,
		ManufacturingLocation: domain.ParseCountry(r.ManufacturingLocation),
	}, nil
}

// --- Response Types ---

// DestinationResponse is the duty summary for one destination. Amounts that
// cannot be computed are null.
type DestinationResponse struct {
	Destination          string                    `json:"destination" example:"US"`
	TotalValue           json.Number               `json:"total_value" swaggertype:"number" example:"1000000"`
	MFNTotalDuties       *json.Number              `json:"mfn_total_duties" swaggertype:"number" example:"250000"`
	USMCATotalDuties     *json.Number              `json:"usmca_total_duties" swaggertype:"number" example:"0"`
	Savings              *json.Number              `json:"savings" swaggertype:"number" example:"250000"`
	SavingsPercentage    *json.Number              `json:"savings_percentage" swaggertype:"number" example:"100"`
	EffectiveDutyRate    *json.Number              `json:"effective_duty_rate" swaggertype:"number" example:"25"`
	PolicyAdjustments    []string                  `json:"policy_adjustments"`
	DataQuality          domain.DataQuality        `json:"data_quality" example:"complete"`
	IncompleteComponents int                       `json:"incomplete_components" example:"0"`
	Stale                bool                      `json:"stale" example:"false"`
	Components           []ComponentResultResponse `json:"components,omitempty"`
}

// ComponentResultResponse is one component priced into one destination.
type ComponentResultResponse struct {
	Index             int               `json:"index" example:"0"`
	HSCode            string            `json:"hs_code" example:"8542.31.00"`
	NormalizedHSCode  string            `json:"normalized_hs_code" example:"85423100"`
	Padded            bool              `json:"padded" example:"false"`
	Origin            string            `json:"origin" example:"CN"`
	Value             json.Number       `json:"value" swaggertype:"number" example:"1000000"`
	MatchLevel        domain.MatchLevel `json:"match_level" example:"exact_8"`
	MFNRate           *json.Number      `json:"mfn_rate" swaggertype:"number" example:"25"`
	USMCARate         *json.Number      `json:"usmca_rate" swaggertype:"number" example:"0"`
	PolicyRate        *json.Number      `json:"policy_rate" swaggertype:"number" example:"0"`
	PolicyAdjustments []string          `json:"policy_adjustments"`
	MFNDuty           *json.Number      `json:"mfn_duty" swaggertype:"number" example:"250000"`
	USMCADuty         *json.Number      `json:"usmca_duty" swaggertype:"number" example:"0"`
	Savings           *json.Number      `json:"savings" swaggertype:"number" example:"250000"`
	Incomplete        bool              `json:"incomplete" example:"false"`
	Reason            string            `json:"reason,omitempty"`
	Stale             bool              `json:"stale" example:"false"`
}

// BreakdownResponse shows one input component across destinations.
type BreakdownResponse struct {
	Index        int                                `json:"index" example:"0"`
	HSCode       string                             `json:"hs_code" example:"8542.31.00"`
	Origin       string                             `json:"origin" example:"CN"`
	Value        json.Number                        `json:"value" swaggertype:"number" example:"1000000"`
	Description  string                             `json:"description,omitempty"`
	Destinations map[string]ComponentResultResponse `json:"destinations"`
}

// OperationalFactorsResponse holds non-duty considerations for a destination.
type OperationalFactorsResponse struct {
	Shipping    *domain.ShippingRate    `json:"shipping,omitempty"`
	OriginRisk  []domain.CountryRisk    `json:"origin_risk,omitempty"`
	Routes      []domain.TradeRoute     `json:"routes,omitempty"`
	Seasonality *domain.BusinessPattern `json:"seasonality,omitempty"`
}

// ComparisonResponse is the outcome of a multi-destination comparison.
type ComparisonResponse struct {
	ID                     string                                `json:"id" example:"0b8a1f7e-3c7e-4a55-9d2c-2d8f3a0c1e11"`
	Comparison             map[string]DestinationResponse        `json:"comparison"`
	Recommendation         string                                `json:"recommendation" example:"US offers higher USMCA savings than MX by $70000.00 ($250000.00 vs $180000.00)."`
	RecommendedDestination string                                `json:"recommended_destination,omitempty" example:"US"`
	ComponentBreakdown     []BreakdownResponse                   `json:"component_breakdown"`
	DataQuality            domain.DataQuality                    `json:"data_quality" example:"complete"`
	Warnings               []string                              `json:"warnings"`
	OperationalFactors     map[string]OperationalFactorsResponse `json:"operational_factors,omitempty"`
	ManufacturingLocation  string                                `json:"manufacturing_location,omitempty" example:"MX"`
	GeneratedAt            time.Time                             `json:"generated_at" example:"2025-03-01T09:00:00Z"`
}

// PolicyAdjustmentResponse is one additive duty overlay.
type PolicyAdjustmentResponse struct {
	PolicyType    domain.PolicyType `json:"policy_type" example:"section_301"`
	HSPrefix      string            `json:"hs_prefix" example:"85423100"`
	OriginCountry *string           `json:"origin_country,omitempty" example:"CN"`
	Rate          *json.Number      `json:"rate" swaggertype:"number" example:"25"`
	Description   string            `json:"description,omitempty" example:"Section 301 List 3"`
}

// FreshnessResponse says where a rate answer came from.
type FreshnessResponse struct {
	FetchedAt time.Time              `json:"fetched_at" example:"2025-03-01T09:00:00Z"`
	Source    domain.FreshnessSource `json:"source" example:"live"`
	Stale     bool                   `json:"stale" example:"false"`
}

// RateLookupResponse is a resolved rate set for one HS code and lane.
type RateLookupResponse struct {
	HSCode            string                     `json:"hs_code" example:"85423100"`
	Origin            string                     `json:"origin" example:"CN"`
	Destination       string                     `json:"destination" example:"US"`
	MFNRate           *json.Number               `json:"mfn_rate" swaggertype:"number" example:"0"`
	USMCARate         *json.Number               `json:"usmca_rate" swaggertype:"number" example:"0"`
	PolicyRate        *json.Number               `json:"policy_rate" swaggertype:"number" example:"25"`
	PolicyAdjustments []PolicyAdjustmentResponse `json:"policy_adjustments"`
	PolicyDetails     []string                   `json:"policy_details"`
	MatchLevel        domain.MatchLevel          `json:"match_level" example:"exact_8"`
	MatchedCode       string                     `json:"matched_code,omitempty" example:"85423100"`
	Source            string                     `json:"source,omitempty" example:"USITC HTS 2025 Rev. 1"`
	EffectiveDate     *time.Time                 `json:"effective_date,omitempty"`
	Freshness         FreshnessResponse          `json:"freshness"`
}

// NormalizeResponse is the canonical form of an HS code.
type NormalizeResponse struct {
	Input      string `json:"input" example:"8542.31"`
	Normalized string `json:"normalized" example:"85423100"`
	Padded     bool   `json:"padded" example:"true"`
	Chapter    string `json:"chapter" example:"85"`
}

// InvalidateResponse reports how many cache entries were dropped.
type InvalidateResponse struct {
	Category string `json:"category" example:"shipping_rate"`
	Removed  int    `json:"removed" example:"12"`
}

// ReloadTreatyResponse reports the new treaty version.
type ReloadTreatyResponse struct {
	Version string `json:"version" example:"2025-07"`
	Removed int    `json:"removed" example:"340"`
}

// --- Converters ---

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func nullNumber(v decimal.NullDecimal) *json.Number {
	if !v.Valid {
		return nil
	}
	n := number(v.Decimal)
	return &n
}

func roundedNumber(v decimal.NullDecimal, places int32) *json.Number {
	if !v.Valid {
		return nil
	}
	n := number(v.Decimal.Round(places))
	return &n
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func labels(adjustments []domain.PolicyAdjustment) []string {
	out := make([]string, 0, len(adjustments))
	for i := range adjustments {
		out = append(out, adjustments[i].Label())
	}
	return out
}

// NewComponentResultResponse converts a component outcome.
func NewComponentResultResponse(r *domain.ComponentResult) ComponentResultResponse {
	return ComponentResultResponse{
		Index:             r.Index,
		HSCode:            r.HSCode,
		NormalizedHSCode:  r.NormalizedHSCode,
		Padded:            r.Padded,
		Origin:            string(r.Origin),
		Value:             number(r.Value),
		MatchLevel:        r.MatchLevel,
		MFNRate:           nullNumber(r.MFNRate),
		USMCARate:         nullNumber(r.USMCARate),
		PolicyRate:        nullNumber(r.PolicyRate),
		PolicyAdjustments: labels(r.PolicyAdjustments),
		MFNDuty:           nullNumber(r.MFNDuty),
		USMCADuty:         nullNumber(r.USMCADuty),
		Savings:           nullNumber(r.Savings),
		Incomplete:        r.Incomplete,
		Reason:            r.Reason,
		Stale:             r.Stale,
	}
}

// NewDestinationResponse converts a destination summary. Components are only
// included when withComponents is set.
func NewDestinationResponse(r *domain.DestinationResult, withComponents bool) DestinationResponse {
	out := DestinationResponse{
		Destination:          string(r.Destination),
		TotalValue:           number(r.TotalValue),
		MFNTotalDuties:       nullNumber(r.TotalMFNDuty),
		USMCATotalDuties:     nullNumber(r.TotalUSMCADuty),
		Savings:              nullNumber(r.Savings),
		SavingsPercentage:    roundedNumber(r.SavingsPercentage, 4),
		EffectiveDutyRate:    roundedNumber(r.EffectiveDutyRate, 4),
		PolicyAdjustments:    nonNil(r.PolicyAdjustments),
		DataQuality:          r.DataQuality,
		IncompleteComponents: r.IncompleteComponents,
		Stale:                r.Stale,
	}
	if withComponents {
		out.Components = make([]ComponentResultResponse, len(r.Components))
		for i := range r.Components {
			out.Components[i] = NewComponentResultResponse(&r.Components[i])
		}
	}
	return out
}

// NewComparisonResponse converts a comparison result.
func NewComparisonResponse(r *domain.ComparisonResult) ComparisonResponse {
	out := ComparisonResponse{
		ID:                     r.ID.String(),
		Comparison:             make(map[string]DestinationResponse, len(r.PerDestination)),
		Recommendation:         r.Recommendation,
		RecommendedDestination: string(r.RecommendedDestination),
		ComponentBreakdown:     make([]BreakdownResponse, len(r.ComponentBreakdown)),
		DataQuality:            r.DataQuality,
		Warnings:               nonNil(r.Warnings),
		ManufacturingLocation:  string(r.ManufacturingLocation),
		GeneratedAt:            r.GeneratedAt,
	}
	for dest, res := range r.PerDestination {
		out.Comparison[string(dest)] = NewDestinationResponse(res, false)
	}
	for i := range r.ComponentBreakdown {
		b := &r.ComponentBreakdown[i]
		br := BreakdownResponse{
			Index:        b.Index,
			HSCode:       b.HSCode,
			Origin:       string(b.Origin),
			Value:        number(b.Value),
			Description:  b.Description,
			Destinations: make(map[string]ComponentResultResponse, len(b.Destinations)),
		}
		for dest, cr := range b.Destinations {
			br.Destinations[string(dest)] = NewComponentResultResponse(&cr)
		}
		out.ComponentBreakdown[i] = br
	}
	if len(r.OperationalFactors) > 0 {
		out.OperationalFactors = make(map[string]OperationalFactorsResponse, len(r.OperationalFactors))
		for dest, f := range r.OperationalFactors {
			out.OperationalFactors[string(dest)] = OperationalFactorsResponse{
				Shipping:    f.Shipping,
				OriginRisk:  f.OriginRisk,
				Routes:      f.Routes,
				Seasonality: f.Seasonality,
			}
		}
	}
	return out
}

// NewRateLookupResponse converts a rate lookup and its freshness.
func NewRateLookupResponse(r *domain.RateLookupResult, f domain.Freshness) RateLookupResponse {
	adjustments := make([]PolicyAdjustmentResponse, len(r.PolicyAdjustments))
	for i := range r.PolicyAdjustments {
		a := &r.PolicyAdjustments[i]
		adjustments[i] = PolicyAdjustmentResponse{
			PolicyType:    a.PolicyType,
			HSPrefix:      a.HSPrefix,
			OriginCountry: a.OriginCountry,
			Rate:          nullNumber(a.Rate),
			Description:   a.Description,
		}
	}
	return RateLookupResponse{
		HSCode:            r.HSCode,
		Origin:            string(r.Origin),
		Destination:       string(r.Destination),
		MFNRate:           nullNumber(r.MFNRate),
		USMCARate:         nullNumber(r.USMCARate),
		PolicyRate:        nullNumber(r.PolicyTotal()),
		PolicyAdjustments: adjustments,
		PolicyDetails:     nonNil(r.PolicyDetails),
		MatchLevel:        r.MatchLevel,
		MatchedCode:       r.MatchedCode,
		Source:            r.Source,
		EffectiveDate:     r.EffectiveDate,
		Freshness: FreshnessResponse{
			FetchedAt: f.FetchedAt,
			Source:    f.Source,
			Stale:     f.Stale,
		},
	}
}

// SortedDestinations returns the comparison's destination codes in order.
func (r *ComparisonResponse) SortedDestinations() []string {
	out := make([]string, 0, len(r.Comparison))
	for d := range r.Comparison {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
