package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"tradeflow/internal/cache"
	"tradeflow/internal/config"
	"tradeflow/internal/domain"
	"tradeflow/internal/port"
)

// Query is a typed classifier request. Each variant knows its cache key and
// the category it belongs to before origin-specific reclassification.
type Query interface {
	Key() string
	baseCategory() domain.DataCategory
}

// TariffRateQuery asks for the rates of one HS code on a lane. The classifier
// caches the base schedule under this query and the policy overlays under a
// PolicyOverlayQuery for the same lane.
type TariffRateQuery struct {
	HSCode      string
	Origin      domain.Country
	Destination domain.Country
}

func (q TariffRateQuery) Key() string {
	return fmt.Sprintf("rates:%s:%s:%s", q.HSCode, q.Origin, q.Destination)
}

func (TariffRateQuery) baseCategory() domain.DataCategory { return domain.CategoryTreatyRate }

// PolicyOverlayQuery asks for the additive duties in force on a lane.
type PolicyOverlayQuery struct {
	HSCode      string
	Origin      domain.Country
	Destination domain.Country
}

func (q PolicyOverlayQuery) Key() string {
	return fmt.Sprintf("overlays:%s:%s:%s", q.HSCode, q.Origin, q.Destination)
}

func (PolicyOverlayQuery) baseCategory() domain.DataCategory { return domain.CategoryPolicyOverlay }

// ShippingQuery asks for a freight quote.
type ShippingQuery struct {
	Origin      domain.Country
	Destination domain.Country
	Mode        string
}

func (q ShippingQuery) Key() string {
	return fmt.Sprintf("shipping:%s:%s:%s", q.Origin, q.Destination, q.Mode)
}

func (ShippingQuery) baseCategory() domain.DataCategory { return domain.CategoryShippingRate }

// RiskQuery asks for a country risk score.
type RiskQuery struct {
	Country domain.Country
}

func (q RiskQuery) Key() string { return "risk:" + string(q.Country) }

func (RiskQuery) baseCategory() domain.DataCategory { return domain.CategoryCountryRisk }

// InfrastructureQuery asks for the ports of entry serving a lane.
type InfrastructureQuery struct {
	Origin      domain.Country
	Destination domain.Country
}

func (q InfrastructureQuery) Key() string {
	return fmt.Sprintf("routes:%s:%s", q.Origin, q.Destination)
}

func (InfrastructureQuery) baseCategory() domain.DataCategory { return domain.CategoryInfrastructure }

// PatternQuery asks for a business pattern by key.
type PatternQuery struct {
	Name string
}

func (q PatternQuery) Key() string { return "pattern:" + q.Name }

func (PatternQuery) baseCategory() domain.DataCategory { return domain.CategoryBusinessPattern }

// ClassifierConfig holds refresh intervals and fetch limits. A zero interval
// puts the category in the stable registry. Expired entries younger than
// StaleRetention survive Purge so they can still be served as a fallback.
type ClassifierConfig struct {
	Intervals       map[domain.DataCategory]time.Duration
	VolatileOrigins []domain.Country
	FetchTimeout    time.Duration
	StaleRetention  time.Duration
	TreatyVersion   string
}

// ClassifierConfigFrom maps application configuration onto a ClassifierConfig.
func ClassifierConfigFrom(cfg *config.Config) ClassifierConfig {
	origins := make([]domain.Country, 0, len(cfg.Cache.VolatileOrigins))
	for _, o := range cfg.Cache.VolatileOrigins {
		origins = append(origins, domain.ParseCountry(o))
	}
	return ClassifierConfig{
		Intervals: map[domain.DataCategory]time.Duration{
			domain.CategoryTreatyRate:      cfg.Cache.TreatyTTL,
			domain.CategoryInfrastructure:  cfg.Cache.InfrastructureTTL,
			domain.CategoryBusinessPattern: cfg.Cache.BusinessPatternTTL,
			domain.CategoryTariffRate:      cfg.Cache.TariffRateTTL,
			domain.CategoryShippingRate:    cfg.Cache.ShippingRateTTL,
			domain.CategoryCountryRisk:     cfg.Cache.CountryRiskTTL,
			domain.CategoryPolicyOverlay:   cfg.Cache.PolicyOverlayTTL,
		},
		VolatileOrigins: origins,
		FetchTimeout:    cfg.Rates.FetchTimeout,
		StaleRetention:  cfg.Cache.StaleRetention,
		TreatyVersion:   cfg.Rates.TreatyVersion,
	}
}

// CacheStats is a snapshot of classifier counters.
type CacheStats struct {
	StableHits      int64   `json:"stable_hits"`
	VolatileHits    int64   `json:"volatile_hits"`
	LiveFetches     int64   `json:"live_fetches"`
	StaleFallbacks  int64   `json:"stale_fallbacks"`
	FetchErrors     int64   `json:"fetch_errors"`
	Efficiency      float64 `json:"efficiency"`
	StableEntries   int     `json:"stable_entries"`
	VolatileEntries int     `json:"volatile_entries"`
	TreatyVersion   string  `json:"treaty_version"`
}

// RateSource supplies tariff rates with freshness metadata.
type RateSource interface {
	TariffRates(ctx context.Context, q TariffRateQuery) (*domain.RateLookupResult, domain.Freshness, error)
}

// FactorSource supplies non-duty operational data.
type FactorSource interface {
	ShippingRate(ctx context.Context, q ShippingQuery) (*domain.ShippingRate, domain.Freshness, error)
	CountryRisk(ctx context.Context, q RiskQuery) (*domain.CountryRisk, domain.Freshness, error)
	Routes(ctx context.Context, q InfrastructureQuery) ([]domain.TradeRoute, domain.Freshness, error)
	BusinessPattern(ctx context.Context, q PatternQuery) (*domain.BusinessPattern, domain.Freshness, error)
}

// DataClassifier serves reads from a stable registry for data that only changes
// on operator action and from a TTL cache for volatile data, fetching live on a
// miss. A failed refresh falls back to the last stored value, marked stale.
type DataClassifier struct {
	cfg       ClassifierConfig
	volatile  map[domain.Country]bool
	rates     RateService
	tradeData port.TradeDataRepository
	market    port.MarketDataSource

	stable *cache.Cache[string, any]
	ttl    *cache.Cache[string, any]

	mu            sync.RWMutex
	treatyVersion string

	stableHits     atomic.Int64
	volatileHits   atomic.Int64
	liveFetches    atomic.Int64
	staleFallbacks atomic.Int64
	fetchErrors    atomic.Int64
}

// ClassifierOption configures a DataClassifier.
type ClassifierOption func(*classifierOptions)

type classifierOptions struct {
	now func() time.Time
}

// WithClassifierClock overrides the clock used for cache timestamps.
func WithClassifierClock(now func() time.Time) ClassifierOption {
	return func(o *classifierOptions) { o.now = now }
}

// NewDataClassifier creates a classifier. tradeData and market may be nil, in
// which case the corresponding queries fail with domain.ErrNoFetcher.
func NewDataClassifier(cfg ClassifierConfig, rates RateService, tradeData port.TradeDataRepository, market port.MarketDataSource, opts ...ClassifierOption) *DataClassifier {
	o := classifierOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	volatile := make(map[domain.Country]bool, len(cfg.VolatileOrigins))
	for _, c := range cfg.VolatileOrigins {
		volatile[c] = true
	}
	if cfg.Intervals == nil {
		cfg.Intervals = map[domain.DataCategory]time.Duration{}
	}
	return &DataClassifier{
		cfg:           cfg,
		volatile:      volatile,
		rates:         rates,
		tradeData:     tradeData,
		market:        market,
		stable:        cache.New[string, any](cache.WithClock(o.now)),
		ttl:           cache.New[string, any](cache.WithClock(o.now)),
		treatyVersion: cfg.TreatyVersion,
	}
}

// Classify returns the category a query is cached under. Tariff rates for a
// volatile origin move from the treaty registry to the hourly tariff cache.
func (c *DataClassifier) Classify(q Query) domain.DataCategory {
	if tq, ok := q.(TariffRateQuery); ok && c.volatile[tq.Origin] {
		return domain.CategoryTariffRate
	}
	return q.baseCategory()
}

// Interval returns the refresh interval of a category. Zero means stable.
func (c *DataClassifier) Interval(cat domain.DataCategory) time.Duration {
	return c.cfg.Intervals[cat]
}

// TariffRates resolves rates for a lane. Base rates come from the category the
// origin classifies into; overlays always come from the policy overlay cache.
func (c *DataClassifier) TariffRates(ctx context.Context, q TariffRateQuery) (*domain.RateLookupResult, domain.Freshness, error) {
	base, baseFresh, err := getData(ctx, c, q, func(ctx context.Context) (*domain.RateLookupResult, error) {
		return c.rates.BaseRates(ctx, q.HSCode, q.Destination)
	})
	if err != nil {
		return nil, domain.Freshness{}, err
	}
	overlays, overlayFresh, err := c.PolicyOverlays(ctx, PolicyOverlayQuery{
		HSCode:      q.HSCode,
		Origin:      q.Origin,
		Destination: q.Destination,
	})
	if err != nil {
		return nil, domain.Freshness{}, err
	}

	result := *base
	result.Origin = q.Origin
	result.PolicyAdjustments = overlays
	result.PolicyDetails = policyDetails(overlays)
	return &result, oldest(baseFresh, overlayFresh), nil
}

// PolicyOverlays resolves the overlays in force on a lane. A cached set expires
// at its refresh interval or when the first overlay in it ends, whichever is
// sooner.
func (c *DataClassifier) PolicyOverlays(ctx context.Context, q PolicyOverlayQuery) ([]domain.PolicyAdjustment, domain.Freshness, error) {
	return getDataUntil(ctx, c, q, func(ctx context.Context) ([]domain.PolicyAdjustment, error) {
		return c.rates.PolicyOverlays(ctx, q.HSCode, q.Origin, q.Destination)
	}, overlayExpiry)
}

// oldest reports the freshness of a combined answer as that of its oldest part.
func oldest(a, b domain.Freshness) domain.Freshness {
	out := a
	if b.FetchedAt.Before(a.FetchedAt) {
		out = b
	}
	out.Stale = a.Stale || b.Stale
	return out
}

// ShippingRate resolves a freight quote from the market data provider.
func (c *DataClassifier) ShippingRate(ctx context.Context, q ShippingQuery) (*domain.ShippingRate, domain.Freshness, error) {
	if c.market == nil {
		return nil, domain.Freshness{}, domain.ErrNoFetcher
	}
	return getData(ctx, c, q, func(ctx context.Context) (*domain.ShippingRate, error) {
		return c.market.ShippingRate(ctx, q.Origin, q.Destination, q.Mode)
	})
}

// CountryRisk resolves a country risk score from the market data provider.
func (c *DataClassifier) CountryRisk(ctx context.Context, q RiskQuery) (*domain.CountryRisk, domain.Freshness, error) {
	if c.market == nil {
		return nil, domain.Freshness{}, domain.ErrNoFetcher
	}
	return getData(ctx, c, q, func(ctx context.Context) (*domain.CountryRisk, error) {
		return c.market.CountryRisk(ctx, q.Country)
	})
}

// Routes resolves ports of entry for a lane.
func (c *DataClassifier) Routes(ctx context.Context, q InfrastructureQuery) ([]domain.TradeRoute, domain.Freshness, error) {
	if c.tradeData == nil {
		return nil, domain.Freshness{}, domain.ErrNoFetcher
	}
	return getData(ctx, c, q, func(ctx context.Context) ([]domain.TradeRoute, error) {
		return c.tradeData.FindRoutes(ctx, q.Origin, q.Destination)
	})
}

// BusinessPattern resolves a business pattern by key.
func (c *DataClassifier) BusinessPattern(ctx context.Context, q PatternQuery) (*domain.BusinessPattern, domain.Freshness, error) {
	if c.tradeData == nil {
		return nil, domain.Freshness{}, domain.ErrNoFetcher
	}
	return getData(ctx, c, q, func(ctx context.Context) (*domain.BusinessPattern, error) {
		return c.tradeData.FindBusinessPattern(ctx, q.Name)
	})
}

// GetData dispatches any Query to its typed accessor.
func (c *DataClassifier) GetData(ctx context.Context, q Query) (any, domain.Freshness, error) {
	switch q := q.(type) {
	case TariffRateQuery:
		return c.TariffRates(ctx, q)
	case PolicyOverlayQuery:
		return c.PolicyOverlays(ctx, q)
	case ShippingQuery:
		return c.ShippingRate(ctx, q)
	case RiskQuery:
		return c.CountryRisk(ctx, q)
	case InfrastructureQuery:
		return c.Routes(ctx, q)
	case PatternQuery:
		return c.BusinessPattern(ctx, q)
	default:
		return nil, domain.Freshness{}, fmt.Errorf("%w: %T", domain.ErrUnknownCategory, q)
	}
}

func getData[T any](ctx context.Context, c *DataClassifier, q Query, fetch func(context.Context) (T, error)) (T, domain.Freshness, error) {
	return getDataUntil[T](ctx, c, q, fetch, nil)
}

// getDataUntil is getData with an optional hard expiry taken from the fetched
// value. A zero time means the category interval alone applies.
func getDataUntil[T any](ctx context.Context, c *DataClassifier, q Query, fetch func(context.Context) (T, error), expires func(T) time.Time) (T, domain.Freshness, error) {
	var zero T
	if c.stable.Closed() {
		return zero, domain.Freshness{}, domain.ErrCacheClosed
	}

	cat := c.Classify(q)
	key := string(cat) + "|" + q.Key()
	interval := c.cfg.Intervals[cat]
	store := c.ttl
	source := domain.SourceVolatile
	if interval <= 0 {
		store = c.stable
		source = domain.SourceStable
	}

	entry, state := store.Get(key)
	if state == cache.Fresh {
		if source == domain.SourceStable {
			c.stableHits.Add(1)
		} else {
			c.volatileHits.Add(1)
		}
		return entry.Value.(T), domain.Freshness{FetchedAt: entry.StoredAt, Source: source}, nil
	}

	c.liveFetches.Add(1)
	fetchCtx, cancel := ctx, context.CancelFunc(func() {})
	if c.cfg.FetchTimeout > 0 {
		fetchCtx, cancel = context.WithTimeout(ctx, c.cfg.FetchTimeout)
	}
	value, err := fetch(fetchCtx)
	cancel()

	if err != nil {
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound) {
			return zero, domain.Freshness{}, err
		}
		c.fetchErrors.Add(1)
		if state == cache.Stale {
			c.staleFallbacks.Add(1)
			zap.L().Warn("serving stale data after failed refresh",
				zap.String("key", key),
				zap.Time("stored_at", entry.StoredAt),
				zap.Error(err),
			)
			return entry.Value.(T), domain.Freshness{FetchedAt: entry.StoredAt, Source: source, Stale: true}, nil
		}
		return zero, domain.Freshness{}, fmt.Errorf("%w: %s: %w", domain.ErrUpstreamFetch, key, err)
	}

	policy := cache.TTL(interval)
	if expires != nil {
		if at := expires(value); !at.IsZero() {
			policy = cache.All(policy, cache.Until(at))
		}
	}
	stored := store.Set(key, value, policy)
	return value, domain.Freshness{FetchedAt: stored.StoredAt, Source: domain.SourceLive}, nil
}

// InvalidateCategory drops every cached entry of cat and reports how many were removed.
func (c *DataClassifier) InvalidateCategory(cat domain.DataCategory) int {
	prefix := string(cat) + "|"
	match := func(k string, _ cache.Entry[any]) bool { return strings.HasPrefix(k, prefix) }
	n := c.stable.InvalidateFunc(match) + c.ttl.InvalidateFunc(match)
	zap.L().Info("cache category invalidated", zap.String("category", string(cat)), zap.Int("entries", n))
	return n
}

// ReloadTreaty records a new treaty version and drops cached treaty rates so
// they are refetched on next use.
func (c *DataClassifier) ReloadTreaty(version string) int {
	c.mu.Lock()
	previous := c.treatyVersion
	c.treatyVersion = version
	c.mu.Unlock()
	n := c.InvalidateCategory(domain.CategoryTreatyRate)
	zap.L().Info("treaty version reloaded",
		zap.String("previous", previous),
		zap.String("version", version),
	)
	return n
}

// TreatyVersion returns the treaty version currently in force.
func (c *DataClassifier) TreatyVersion() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.treatyVersion
}

// Purge drops entries that expired more than StaleRetention ago. A
// non-positive retention keeps every entry available as a stale fallback.
func (c *DataClassifier) Purge() int {
	if c.cfg.StaleRetention <= 0 {
		return 0
	}
	return c.stable.Purge(c.cfg.StaleRetention) + c.ttl.Purge(c.cfg.StaleRetention)
}

// Close disposes both caches. Later reads fail with domain.ErrCacheClosed.
func (c *DataClassifier) Close() {
	c.stable.Close()
	c.ttl.Close()
}

// Stats returns a snapshot of the classifier counters.
func (c *DataClassifier) Stats() CacheStats {
	s := CacheStats{
		StableHits:      c.stableHits.Load(),
		VolatileHits:    c.volatileHits.Load(),
		LiveFetches:     c.liveFetches.Load(),
		StaleFallbacks:  c.staleFallbacks.Load(),
		FetchErrors:     c.fetchErrors.Load(),
		StableEntries:   c.stable.Len(),
		VolatileEntries: c.ttl.Len(),
		TreatyVersion:   c.TreatyVersion(),
	}
	s.Efficiency = Efficiency(s.StableHits, s.VolatileHits, s.LiveFetches)
	return s
}

// Efficiency is the share of reads answered from either cache.
func Efficiency(stableHits, volatileHits, liveFetches int64) float64 {
	hits := stableHits + volatileHits
	total := hits + liveFetches
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// CacheAdmin is the operator surface of the classifier.
type CacheAdmin interface {
	Stats() CacheStats
	InvalidateCategory(cat domain.DataCategory) int
	ReloadTreaty(version string) int
}
