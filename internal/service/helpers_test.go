package service_test

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"tradeflow/internal/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func rate(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(dec(s))
}

func component(hs string, origin domain.Country, value string) domain.Component {
	return domain.Component{HSCode: hs, Origin: origin, Value: dec(value)}
}

func lookup(hs string, mfn, usmca decimal.NullDecimal, adjustments ...domain.PolicyAdjustment) *domain.RateLookupResult {
	level := domain.MatchExact8
	if !mfn.Valid && !usmca.Valid {
		level = domain.MatchNone
	}
	return &domain.RateLookupResult{
		HSCode:            hs,
		MFNRate:           mfn,
		USMCARate:         usmca,
		PolicyAdjustments: adjustments,
		MatchLevel:        level,
	}
}

var live = domain.Freshness{Source: domain.SourceLive}
