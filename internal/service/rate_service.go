package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tradeflow/internal/domain"
	"tradeflow/internal/hscode"
	"tradeflow/internal/port"
)

// RateService resolves base rates and policy overlays for an HS code on a lane.
// Base rates change with the treaty schedule; overlays carry their own
// effective windows, so callers that cache may hold the two separately.
type RateService interface {
	GetRates(ctx context.Context, hsCode string, origin, destination domain.Country) (*domain.RateLookupResult, error)
	BaseRates(ctx context.Context, hsCode string, destination domain.Country) (*domain.RateLookupResult, error)
	PolicyOverlays(ctx context.Context, hsCode string, origin, destination domain.Country) ([]domain.PolicyAdjustment, error)
}

type rateService struct {
	repo port.TariffRateRepository
	now  func() time.Time
}

// RateOption configures a RateService.
type RateOption func(*rateService)

// WithRateClock overrides the clock that decides which rows are in force.
func WithRateClock(now func() time.Time) RateOption {
	return func(s *rateService) { s.now = now }
}

// NewRateService creates a RateService backed by repo.
func NewRateService(repo port.TariffRateRepository, opts ...RateOption) RateService {
	s := &rateService{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetRates combines BaseRates and PolicyOverlays for one lane.
func (s *rateService) GetRates(ctx context.Context, hsCode string, origin, destination domain.Country) (*domain.RateLookupResult, error) {
	result, err := s.BaseRates(ctx, hsCode, destination)
	if err != nil {
		return nil, err
	}
	adjustments, err := s.PolicyOverlays(ctx, result.HSCode, origin, destination)
	if err != nil {
		return nil, err
	}
	result.Origin = origin
	result.PolicyAdjustments = adjustments
	result.PolicyDetails = policyDetails(adjustments)
	return result, nil
}

// BaseRates looks up the schedule row in force today by exact 8-digit code,
// then the 6- and 4-digit prefixes. Rates the store does not have stay null.
func (s *rateService) BaseRates(ctx context.Context, hsCode string, destination domain.Country) (*domain.RateLookupResult, error) {
	code, err := validateLookup(hsCode, destination)
	if err != nil {
		return nil, err
	}

	result := &domain.RateLookupResult{
		HSCode:      code,
		Destination: destination,
		MatchLevel:  domain.MatchNone,
	}

	asOf := s.now()
	for _, prefix := range hscode.Prefixes(code) {
		rec, err := s.repo.FindBaseRate(ctx, destination, prefix, asOf)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("rateService.BaseRates %s/%s: %w", destination, prefix, err)
		}
		result.MFNRate = rec.MFNRate
		result.USMCARate = rec.USMCARate
		result.MatchLevel = domain.MatchLevelForLength(len(prefix))
		result.MatchedCode = rec.HSCode
		result.Source = rec.Source
		result.EffectiveDate = rec.EffectiveDate
		break
	}

	switch result.MatchLevel {
	case domain.MatchExact8:
	case domain.MatchNone:
		zap.L().Warn("no base rate at any HS level",
			zap.String("hs_code", code),
			zap.String("destination", string(destination)),
		)
	default:
		zap.L().Debug("base rate matched at fallback level",
			zap.String("hs_code", code),
			zap.String("matched_code", result.MatchedCode),
			zap.String("match_level", string(result.MatchLevel)),
			zap.String("destination", string(destination)),
		)
	}
	return result, nil
}

// PolicyOverlays returns the overlays in force today for origin. Rules stored
// on the 8- or 6-digit code win; chapter rules apply only when none match.
func (s *rateService) PolicyOverlays(ctx context.Context, hsCode string, origin, destination domain.Country) ([]domain.PolicyAdjustment, error) {
	code, err := validateLookup(hsCode, destination)
	if err != nil {
		return nil, err
	}

	asOf := s.now()
	adjustments, err := s.repo.FindPolicyAdjustments(ctx, destination, []string{code, code[:6]}, origin, asOf)
	if err != nil {
		return nil, fmt.Errorf("rateService.PolicyOverlays %s: %w", code, err)
	}
	if len(adjustments) == 0 {
		adjustments, err = s.repo.FindChapterPolicies(ctx, destination, hscode.Chapter(code), origin, asOf)
		if err != nil {
			return nil, fmt.Errorf("rateService.PolicyOverlays chapter %s: %w", code, err)
		}
	}
	return adjustments, nil
}

func validateLookup(hsCode string, destination domain.Country) (string, error) {
	if !domain.IsSupportedDestination(destination) {
		return "", domain.UnsupportedDestinationError(destination)
	}
	code := hscode.Normalize(hsCode)
	if code == "" {
		return "", domain.NewValidationError("hs_code", fmt.Sprintf("invalid HS code %q", hsCode))
	}
	return code, nil
}

func policyDetails(adjustments []domain.PolicyAdjustment) []string {
	if len(adjustments) == 0 {
		return nil
	}
	out := make([]string, 0, len(adjustments))
	for i := range adjustments {
		a := &adjustments[i]
		if a.Rate.Valid {
			out = append(out, fmt.Sprintf("%s: +%s%%", a.Label(), a.Rate.Decimal.String()))
		} else {
			out = append(out, fmt.Sprintf("%s: rate unavailable", a.Label()))
		}
	}
	return out
}

// overlayExpiry is the first instant a cached overlay set may no longer be in
// force: the day after the earliest effective_to. Zero when no overlay ends.
func overlayExpiry(adjustments []domain.PolicyAdjustment) time.Time {
	var earliest time.Time
	for i := range adjustments {
		to := adjustments[i].EffectiveTo
		if to == nil {
			continue
		}
		y, m, d := to.UTC().Date()
		end := time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC)
		if earliest.IsZero() || end.Before(earliest) {
			earliest = end
		}
	}
	return earliest
}
