package port

import (
	"context"
	"time"

	"tradeflow/internal/domain"
)

// TariffRateRepository reads base rates and policy overlays. Implementations are
// read-only; rows are written by the seed and admin tooling.
type TariffRateRepository interface {
	// FindBaseRate returns the base-rate row stored under exactly hsCode for the
	// destination's schedule that is in force on asOf, or domain.ErrNotFound.
	FindBaseRate(ctx context.Context, destination domain.Country, hsCode string, asOf time.Time) (*domain.TariffRateRecord, error)
	// FindPolicyAdjustments returns overlays stored under any of codes that apply
	// to origin on asOf.
	FindPolicyAdjustments(ctx context.Context, destination domain.Country, codes []string, origin domain.Country, asOf time.Time) ([]domain.PolicyAdjustment, error)
	// FindChapterPolicies returns chapter-level overlays for a 2-digit chapter.
	FindChapterPolicies(ctx context.Context, destination domain.Country, chapter string, origin domain.Country, asOf time.Time) ([]domain.PolicyAdjustment, error)
}

// TradeDataRepository reads slow-moving reference data.
type TradeDataRepository interface {
	FindRoutes(ctx context.Context, origin, destination domain.Country) ([]domain.TradeRoute, error)
	FindBusinessPattern(ctx context.Context, key string) (*domain.BusinessPattern, error)
}
