package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tradeflow/internal/domain"
	"tradeflow/internal/hscode"
)

// ComparisonInput is a validated-on-entry comparison request.
type ComparisonInput struct {
	Components            []domain.Component
	Destinations          []domain.Country
	ManufacturingLocation domain.Country
}

// ComparisonConfig tunes recommendation wording and operational lookups.
type ComparisonConfig struct {
	MaterialityThreshold decimal.Decimal
	ShippingMode         string
}

// ComparisonService compares duty exposure of one bill of components across
// import destinations.
type ComparisonService interface {
	Compare(ctx context.Context, input ComparisonInput) (*domain.ComparisonResult, error)
	Savings(ctx context.Context, components []domain.Component, destination domain.Country) (*domain.DestinationResult, error)
}

type comparisonService struct {
	savings SavingsService
	factors FactorSource
	cfg     ComparisonConfig
	now     func() time.Time
}

// NewComparisonService creates a ComparisonService. factors may be nil, in which
// case no operational factors are attached.
func NewComparisonService(savings SavingsService, factors FactorSource, cfg ComparisonConfig) ComparisonService {
	if cfg.ShippingMode == "" {
		cfg.ShippingMode = "ocean"
	}
	return &comparisonService{
		savings: savings,
		factors: factors,
		cfg:     cfg,
		now:     time.Now,
	}
}

func (s *comparisonService) Savings(ctx context.Context, components []domain.Component, destination domain.Country) (*domain.DestinationResult, error) {
	components, destinations, err := validateInput(components, []domain.Country{destination})
	if err != nil {
		return nil, err
	}
	return s.savings.ComputeSavings(ctx, components, destinations[0])
}

func (s *comparisonService) Compare(ctx context.Context, input ComparisonInput) (*domain.ComparisonResult, error) {
	components, destinations, err := validateInput(input.Components, input.Destinations)
	if err != nil {
		return nil, err
	}
	input.Components = components

	perDest := make([]*domain.DestinationResult, len(destinations))
	g, gctx := errgroup.WithContext(ctx)
	for i, dest := range destinations {
		g.Go(func() error {
			r, err := s.savings.ComputeSavings(gctx, input.Components, dest)
			if err != nil {
				return fmt.Errorf("destination %s: %w", dest, err)
			}
			perDest[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &domain.ComparisonResult{
		ID:                    uuid.New(),
		Destinations:          destinations,
		PerDestination:        make(map[domain.Country]*domain.DestinationResult, len(destinations)),
		DataQuality:           domain.DataQualityComplete,
		ManufacturingLocation: input.ManufacturingLocation,
		GeneratedAt:           s.now().UTC(),
	}
	for _, r := range perDest {
		result.PerDestination[r.Destination] = r
		if r.DataQuality == domain.DataQualityPartial {
			result.DataQuality = domain.DataQualityPartial
		}
	}

	result.ComponentBreakdown = buildBreakdown(input.Components, perDest)
	result.Warnings = collectWarnings(input.Components, perDest)
	result.Recommendation, result.RecommendedDestination = recommend(perDest, s.cfg.MaterialityThreshold)

	if s.factors != nil {
		factors, warnings := s.operationalFactors(ctx, input, destinations)
		result.OperationalFactors = factors
		result.Warnings = append(result.Warnings, warnings...)
	}

	zap.L().Debug("comparison computed",
		zap.String("id", result.ID.String()),
		zap.Int("components", len(input.Components)),
		zap.Int("destinations", len(destinations)),
		zap.String("data_quality", string(result.DataQuality)),
	)
	return result, nil
}

// validateInput rejects the request before any rate is fetched. It returns a
// copy of the components with origins normalized and the de-duplicated
// destination list; the caller's slices are left untouched.
func validateInput(components []domain.Component, destinations []domain.Country) ([]domain.Component, []domain.Country, error) {
	if len(components) == 0 {
		return nil, nil, domain.NewValidationError("components", "at least one component is required")
	}
	if len(destinations) == 0 {
		return nil, nil, domain.NewValidationError("destinations", "at least one destination is required")
	}

	seen := make(map[domain.Country]bool, len(destinations))
	out := make([]domain.Country, 0, len(destinations))
	for _, d := range destinations {
		d = domain.ParseCountry(string(d))
		if !domain.IsSupportedDestination(d) {
			return nil, nil, domain.UnsupportedDestinationError(d)
		}
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}

	comps := make([]domain.Component, len(components))
	copy(comps, components)
	for i := range comps {
		c := &comps[i]
		if hscode.Normalize(c.HSCode) == "" {
			return nil, nil, domain.NewValidationError(fmt.Sprintf("components[%d].hs_code", i),
				fmt.Sprintf("invalid HS code %q", c.HSCode))
		}
		c.Origin = domain.ParseCountry(string(c.Origin))
		if c.Origin == "" {
			return nil, nil, domain.NewValidationError(fmt.Sprintf("components[%d].origin", i), "origin is required")
		}
		if c.Value.IsNegative() {
			return nil, nil, domain.NewValidationError(fmt.Sprintf("components[%d].value", i), "value must not be negative")
		}
	}
	return comps, out, nil
}

func buildBreakdown(components []domain.Component, perDest []*domain.DestinationResult) []domain.ComponentBreakdown {
	out := make([]domain.ComponentBreakdown, len(components))
	for i := range components {
		c := &components[i]
		row := domain.ComponentBreakdown{
			Index:        i,
			HSCode:       hscode.Normalize(c.HSCode),
			Origin:       c.Origin,
			Value:        c.Value,
			Description:  c.Description,
			Destinations: make(map[domain.Country]domain.ComponentResult, len(perDest)),
		}
		for _, r := range perDest {
			row.Destinations[r.Destination] = r.Components[i]
		}
		out[i] = row
	}
	return out
}

func collectWarnings(components []domain.Component, perDest []*domain.DestinationResult) []string {
	var warnings []string
	for i := range components {
		if hscode.WasPadded(components[i].HSCode) {
			warnings = append(warnings, fmt.Sprintf(
				"components[%d]: HS code %q was zero-padded to %s; verify the subheading",
				i, components[i].HSCode, hscode.Normalize(components[i].HSCode)))
		}
	}
	for _, r := range perDest {
		for j := range r.Components {
			c := &r.Components[j]
			if c.Incomplete {
				warnings = append(warnings, fmt.Sprintf("components[%d]: %s; consult a customs broker", c.Index, c.Reason))
			}
		}
		if r.Stale {
			warnings = append(warnings, fmt.Sprintf(
				"%s: some rates were served from cache after a failed refresh and may be out of date", r.Destination))
		}
	}
	return warnings
}

// recommend words the outcome. Destinations are ranked by savings; a gap
// smaller than threshold is reported as a tie.
func recommend(perDest []*domain.DestinationResult, threshold decimal.Decimal) (string, domain.Country) {
	var partial []string
	for _, r := range perDest {
		if r.DataQuality == domain.DataQualityPartial {
			partial = append(partial, fmt.Sprintf("%s (%d component(s))", r.Destination, r.IncompleteComponents))
		}
	}
	if len(partial) > 0 {
		return fmt.Sprintf("Duty comparison incomplete: rates unavailable for %s. Consult a customs broker before relying on these figures.",
			joinList(partial)), ""
	}

	if len(perDest) == 1 {
		r := perDest[0]
		if r.Savings.Decimal.IsNegative() {
			return fmt.Sprintf("Claiming USMCA treatment into %s costs %s more than MFN duties (%s%%).",
				r.Destination, formatUSD(r.Savings.Decimal.Neg()), r.SavingsPercentage.Decimal.StringFixed(2)), r.Destination
		}
		return fmt.Sprintf("Importing into %s under USMCA saves %s (%s%%) versus MFN duties.",
			r.Destination, formatUSD(r.Savings.Decimal), r.SavingsPercentage.Decimal.StringFixed(2)), r.Destination
	}

	ranked := make([]*domain.DestinationResult, len(perDest))
	copy(ranked, perDest)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Savings.Decimal.GreaterThan(ranked[j].Savings.Decimal)
	})
	best, next := ranked[0], ranked[1]
	diff := best.Savings.Decimal.Sub(next.Savings.Decimal)
	if diff.LessThan(threshold) {
		return fmt.Sprintf("%s and %s offer similar USMCA savings (%s vs %s, difference %s); decide on operational factors.",
			best.Destination, next.Destination,
			formatUSD(best.Savings.Decimal), formatUSD(next.Savings.Decimal), formatUSD(diff)), ""
	}
	return fmt.Sprintf("%s offers higher USMCA savings than %s by %s (%s vs %s).",
		best.Destination, next.Destination, formatUSD(diff),
		formatUSD(best.Savings.Decimal), formatUSD(next.Savings.Decimal)), best.Destination
}

func (s *comparisonService) operationalFactors(ctx context.Context, input ComparisonInput, destinations []domain.Country) (map[domain.Country]*domain.OperationalFactors, []string) {
	shipFrom := input.ManufacturingLocation
	if shipFrom == "" {
		shipFrom = input.Components[0].Origin
	}

	var origins []domain.Country
	seen := make(map[domain.Country]bool)
	for i := range input.Components {
		if o := input.Components[i].Origin; !seen[o] {
			seen[o] = true
			origins = append(origins, o)
		}
	}

	var warnings []string
	warn := func(what string, err error) {
		if errors.Is(err, domain.ErrNoFetcher) || errors.Is(err, domain.ErrNotFound) {
			return
		}
		warnings = append(warnings, fmt.Sprintf("%s unavailable: %v", what, err))
	}

	var risks []domain.CountryRisk
	for _, o := range origins {
		risk, _, err := s.factors.CountryRisk(ctx, RiskQuery{Country: o})
		if err != nil {
			warn("country risk for "+string(o), err)
			continue
		}
		risks = append(risks, *risk)
	}

	out := make(map[domain.Country]*domain.OperationalFactors, len(destinations))
	for _, dest := range destinations {
		f := &domain.OperationalFactors{Destination: dest, OriginRisk: risks}

		rate, _, err := s.factors.ShippingRate(ctx, ShippingQuery{Origin: shipFrom, Destination: dest, Mode: s.cfg.ShippingMode})
		if err != nil {
			warn(fmt.Sprintf("shipping rate %s to %s", shipFrom, dest), err)
		} else {
			f.Shipping = rate
		}

		routes, _, err := s.factors.Routes(ctx, InfrastructureQuery{Origin: shipFrom, Destination: dest})
		if err != nil {
			warn(fmt.Sprintf("ports of entry %s to %s", shipFrom, dest), err)
		} else {
			f.Routes = routes
		}

		pattern, _, err := s.factors.BusinessPattern(ctx, PatternQuery{Name: "seasonality:" + string(dest)})
		if err != nil {
			warn("seasonality for "+string(dest), err)
		} else {
			f.Seasonality = pattern
		}

		out[dest] = f
	}
	return out, warnings
}

func formatUSD(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		out := items[0]
		for _, it := range items[1 : len(items)-1] {
			out += ", " + it
		}
		return out + " and " + items[len(items)-1]
	}
}
