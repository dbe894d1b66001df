package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"tradeflow/internal/domain"
	"tradeflow/internal/hscode"
)

var hundred = decimal.NewFromInt(100)

// SavingsService computes MFN versus USMCA duty exposure for a bill of components.
type SavingsService interface {
	ComputeSavings(ctx context.Context, components []domain.Component, destination domain.Country) (*domain.DestinationResult, error)
}

type savingsService struct {
	rates       RateSource
	concurrency int
}

// NewSavingsService creates a SavingsService. concurrency bounds the number of
// components resolved at once.
func NewSavingsService(rates RateSource, concurrency int) SavingsService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &savingsService{rates: rates, concurrency: concurrency}
}

func (s *savingsService) ComputeSavings(ctx context.Context, components []domain.Component, destination domain.Country) (*domain.DestinationResult, error) {
	if !domain.IsSupportedDestination(destination) {
		return nil, domain.UnsupportedDestinationError(destination)
	}

	results := make([]domain.ComponentResult, len(components))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range components {
		g.Go(func() error {
			r, err := s.computeComponent(gctx, i, &components[i], destination)
			if err != nil {
				return err
			}
			results[i] = *r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return aggregate(destination, results), nil
}

func (s *savingsService) computeComponent(ctx context.Context, index int, comp *domain.Component, destination domain.Country) (*domain.ComponentResult, error) {
	code := hscode.Normalize(comp.HSCode)
	if code == "" {
		return nil, domain.NewValidationError(fmt.Sprintf("components[%d].hs_code", index),
			fmt.Sprintf("invalid HS code %q", comp.HSCode))
	}

	lookup, fresh, err := s.rates.TariffRates(ctx, TariffRateQuery{
		HSCode:      code,
		Origin:      comp.Origin,
		Destination: destination,
	})
	if err != nil {
		return nil, fmt.Errorf("component %d (%s): %w", index, code, err)
	}

	res := &domain.ComponentResult{
		Index:             index,
		HSCode:            comp.HSCode,
		NormalizedHSCode:  code,
		Padded:            hscode.WasPadded(comp.HSCode),
		Origin:            comp.Origin,
		Value:             comp.Value,
		MFNRate:           lookup.MFNRate,
		USMCARate:         lookup.USMCARate,
		PolicyRate:        lookup.PolicyTotal(),
		PolicyAdjustments: lookup.PolicyAdjustments,
		MatchLevel:        lookup.MatchLevel,
		Stale:             fresh.Stale,
	}

	switch {
	case !res.MFNRate.Valid:
		res.Incomplete = true
		res.Reason = fmt.Sprintf("no MFN rate found for %s into %s", code, destination)
	case !res.USMCARate.Valid:
		res.Incomplete = true
		res.Reason = fmt.Sprintf("no USMCA rate found for %s into %s", code, destination)
	case !res.PolicyRate.Valid:
		res.Incomplete = true
		res.Reason = fmt.Sprintf("policy adjustment rate unavailable for %s into %s", code, destination)
	}
	if res.Incomplete {
		return res, nil
	}

	mfnDuty := comp.Value.Mul(res.MFNRate.Decimal.Add(res.PolicyRate.Decimal)).Div(hundred)
	usmcaDuty := comp.Value.Mul(res.USMCARate.Decimal).Div(hundred)
	res.MFNDuty = decimal.NewNullDecimal(mfnDuty)
	res.USMCADuty = decimal.NewNullDecimal(usmcaDuty)
	res.Savings = decimal.NewNullDecimal(mfnDuty.Sub(usmcaDuty))
	return res, nil
}

// aggregate folds component results into destination totals. Any incomplete
// component makes every total null.
func aggregate(destination domain.Country, components []domain.ComponentResult) *domain.DestinationResult {
	out := &domain.DestinationResult{
		Destination: destination,
		TotalValue:  decimal.Zero,
		DataQuality: domain.DataQualityComplete,
		Components:  components,
	}

	totalMFN := decimal.Zero
	totalUSMCA := decimal.Zero
	seen := make(map[string]bool)
	for i := range components {
		c := &components[i]
		out.TotalValue = out.TotalValue.Add(c.Value)
		if c.Stale {
			out.Stale = true
		}
		for j := range c.PolicyAdjustments {
			label := c.PolicyAdjustments[j].Label()
			if !seen[label] {
				seen[label] = true
				out.PolicyAdjustments = append(out.PolicyAdjustments, label)
			}
		}
		if c.Incomplete {
			out.IncompleteComponents++
			continue
		}
		totalMFN = totalMFN.Add(c.MFNDuty.Decimal)
		totalUSMCA = totalUSMCA.Add(c.USMCADuty.Decimal)
	}

	if out.IncompleteComponents > 0 {
		out.DataQuality = domain.DataQualityPartial
		return out
	}

	savings := totalMFN.Sub(totalUSMCA)
	percentage := decimal.Zero
	if !totalMFN.IsZero() {
		percentage = savings.Div(totalMFN).Mul(hundred)
	}
	effective := decimal.Zero
	if !out.TotalValue.IsZero() {
		effective = totalMFN.Div(out.TotalValue).Mul(hundred)
	}

	out.TotalMFNDuty = decimal.NewNullDecimal(totalMFN)
	out.TotalUSMCADuty = decimal.NewNullDecimal(totalUSMCA)
	out.Savings = decimal.NewNullDecimal(savings)
	out.SavingsPercentage = decimal.NewNullDecimal(percentage)
	out.EffectiveDutyRate = decimal.NewNullDecimal(effective)
	return out
}
