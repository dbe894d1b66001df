package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"tradeflow/internal/domain"
	"tradeflow/internal/service"
	"tradeflow/mocks"
)

func strPtr(s string) *string { return &s }

func TestRateService_GetRates_ExactMatchWithPolicy(t *testing.T) {
	repo := new(mocks.MockTariffRateRepo)
	svc := service.NewRateService(repo)

	repo.On("FindBaseRate", mock.Anything, domain.CountryUS, "85423100", mock.Anything).
		Return(&domain.TariffRateRecord{HSCode: "85423100", MFNRate: rate("25"), USMCARate: rate("0"), Source: "hts-2025"}, nil)
	repo.On("FindPolicyAdjustments", mock.Anything, domain.CountryUS, []string{"85423100", "854231"}, domain.Country("CN"), mock.Anything).
		Return([]domain.PolicyAdjustment{{
			PolicyType:    domain.PolicySection301,
			HSPrefix:      "854231",
			OriginCountry: strPtr("CN"),
			Rate:          rate("25"),
			Description:   "Section 301 List 3",
		}}, nil)

	res, err := svc.GetRates(context.Background(), "8542.31.00", "CN", domain.CountryUS)
	require.NoError(t, err)
	assert.Equal(t, "85423100", res.HSCode)
	assert.Equal(t, domain.MatchExact8, res.MatchLevel)
	assert.True(t, res.MFNRate.Decimal.Equal(dec("25")))
	assert.True(t, res.USMCARate.Valid)
	assert.True(t, res.USMCARate.Decimal.IsZero())
	assert.Equal(t, "hts-2025", res.Source)
	assert.Equal(t, []string{"Section 301 List 3: +25%"}, res.PolicyDetails)
	repo.AssertNotCalled(t, "FindChapterPolicies", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestRateService_GetRates_FallsBackToPrefixes(t *testing.T) {
	repo := new(mocks.MockTariffRateRepo)
	svc := service.NewRateService(repo)

	repo.On("FindBaseRate", mock.Anything, domain.CountryMX, "73181500", mock.Anything).Return(nil, domain.ErrNotFound)
	repo.On("FindBaseRate", mock.Anything, domain.CountryMX, "731815", mock.Anything).Return(nil, domain.ErrNotFound)
	repo.On("FindBaseRate", mock.Anything, domain.CountryMX, "7318", mock.Anything).
		Return(&domain.TariffRateRecord{HSCode: "7318", MFNRate: rate("5"), USMCARate: rate("0")}, nil)
	repo.On("FindPolicyAdjustments", mock.Anything, domain.CountryMX, []string{"73181500", "731815"}, domain.CountryUS, mock.Anything).
		Return([]domain.PolicyAdjustment{}, nil)
	repo.On("FindChapterPolicies", mock.Anything, domain.CountryMX, "73", domain.CountryUS, mock.Anything).
		Return(nil, nil)

	res, err := svc.GetRates(context.Background(), "7318.15", domain.CountryUS, domain.CountryMX)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchPrefix4, res.MatchLevel)
	assert.Equal(t, "7318", res.MatchedCode)
	assert.True(t, res.MFNRate.Decimal.Equal(dec("5")))
	assert.Empty(t, res.PolicyDetails)
	repo.AssertExpectations(t)
}

func TestRateService_GetRates_NoRecordStaysNull(t *testing.T) {
	repo := new(mocks.MockTariffRateRepo)
	svc := service.NewRateService(repo)

	repo.On("FindBaseRate", mock.Anything, domain.CountryUS, mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	repo.On("FindPolicyAdjustments", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	repo.On("FindChapterPolicies", mock.Anything, mock.Anything, "99", mock.Anything, mock.Anything).Return(nil, nil)

	res, err := svc.GetRates(context.Background(), "99999999", "CN", domain.CountryUS)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchNone, res.MatchLevel)
	assert.False(t, res.MFNRate.Valid, "missing MFN rate must be null, not zero")
	assert.False(t, res.USMCARate.Valid)
	repo.AssertNumberOfCalls(t, "FindBaseRate", 3)
}

func TestRateService_GetRates_ChapterPolicyWithNullRate(t *testing.T) {
	repo := new(mocks.MockTariffRateRepo)
	svc := service.NewRateService(repo)

	repo.On("FindBaseRate", mock.Anything, domain.CountryUS, "72081000", mock.Anything).
		Return(&domain.TariffRateRecord{HSCode: "72081000", MFNRate: rate("0"), USMCARate: rate("0")}, nil)
	repo.On("FindPolicyAdjustments", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	repo.On("FindChapterPolicies", mock.Anything, domain.CountryUS, "72", domain.Country("CN"), mock.Anything).
		Return([]domain.PolicyAdjustment{{PolicyType: domain.PolicySection232, HSPrefix: "72"}}, nil)

	res, err := svc.GetRates(context.Background(), "72081000", "CN", domain.CountryUS)
	require.NoError(t, err)
	require.Len(t, res.PolicyAdjustments, 1)
	assert.Equal(t, []string{"section_232 (72): rate unavailable"}, res.PolicyDetails)
	assert.False(t, res.PolicyTotal().Valid)
}

func TestRateService_GetRates_UnsupportedDestination(t *testing.T) {
	repo := new(mocks.MockTariffRateRepo)
	svc := service.NewRateService(repo)

	_, err := svc.GetRates(context.Background(), "85423100", "CN", "DE")
	assert.ErrorIs(t, err, domain.ErrUnsupportedDestination)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), `"DE"`)
	repo.AssertNotCalled(t, "FindBaseRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRateService_GetRates_InvalidCode(t *testing.T) {
	repo := new(mocks.MockTariffRateRepo)
	svc := service.NewRateService(repo)

	_, err := svc.GetRates(context.Background(), "n/a", "CN", domain.CountryUS)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRateService_GetRates_StoreError(t *testing.T) {
	repo := new(mocks.MockTariffRateRepo)
	svc := service.NewRateService(repo)

	dbErr := errors.New("connection refused")
	repo.On("FindBaseRate", mock.Anything, domain.CountryUS, "85423100", mock.Anything).Return(nil, dbErr)

	_, err := svc.GetRates(context.Background(), "85423100", "CN", domain.CountryUS)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, domain.ErrValidation)
}

func TestRateService_ResolvesRowsInForceOnClockDate(t *testing.T) {
	repo := new(mocks.MockTariffRateRepo)
	clock := newFakeClock()
	svc := service.NewRateService(repo, service.WithRateClock(clock.Now))
	asOf := clock.Now()

	repo.On("FindBaseRate", mock.Anything, domain.CountryUS, "85423100", asOf).
		Return(&domain.TariffRateRecord{HSCode: "85423100", MFNRate: rate("25"), USMCARate: rate("0")}, nil).Once()
	repo.On("FindPolicyAdjustments", mock.Anything, domain.CountryUS, []string{"85423100", "854231"}, domain.Country("CN"), asOf).
		Return([]domain.PolicyAdjustment{{PolicyType: domain.PolicySection301, HSPrefix: "854231", Rate: rate("25")}}, nil).Once()

	res, err := svc.GetRates(context.Background(), "85423100", "CN", domain.CountryUS)
	require.NoError(t, err)
	assert.Equal(t, domain.Country("CN"), res.Origin)
	assert.Len(t, res.PolicyAdjustments, 1)
	repo.AssertExpectations(t)

	clock.Advance(24 * time.Hour)
	repo.On("FindBaseRate", mock.Anything, domain.CountryUS, "85423100", clock.Now()).
		Return(&domain.TariffRateRecord{HSCode: "85423100", MFNRate: rate("30"), USMCARate: rate("0")}, nil).Once()

	base, err := svc.BaseRates(context.Background(), "85423100", domain.CountryUS)
	require.NoError(t, err)
	assert.True(t, base.MFNRate.Decimal.Equal(dec("30")))
	assert.Empty(t, base.PolicyAdjustments, "base lookup carries no overlays")
	repo.AssertExpectations(t)
}

func TestRateService_PolicyOverlays_ChapterFallback(t *testing.T) {
	repo := new(mocks.MockTariffRateRepo)
	svc := service.NewRateService(repo)

	repo.On("FindPolicyAdjustments", mock.Anything, domain.CountryUS, []string{"72081000", "720810"}, domain.CountryMX, mock.Anything).Return(nil, nil)
	repo.On("FindChapterPolicies", mock.Anything, domain.CountryUS, "72", domain.CountryMX, mock.Anything).
		Return([]domain.PolicyAdjustment{{PolicyType: domain.PolicySection232, HSPrefix: "72", Rate: rate("25")}}, nil)

	got, err := svc.PolicyOverlays(context.Background(), "7208.10", domain.CountryMX, domain.CountryUS)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.PolicySection232, got[0].PolicyType)
	repo.AssertNotCalled(t, "FindBaseRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	_, err = svc.PolicyOverlays(context.Background(), "72081000", domain.CountryMX, "DE")
	assert.ErrorIs(t, err, domain.ErrUnsupportedDestination)
}

func TestRateService_BaseRates_LogsFallbackMatches(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	repo := new(mocks.MockTariffRateRepo)
	svc := service.NewRateService(repo)
	repo.On("FindBaseRate", mock.Anything, domain.CountryMX, "73181500", mock.Anything).Return(nil, domain.ErrNotFound)
	repo.On("FindBaseRate", mock.Anything, domain.CountryMX, "731815", mock.Anything).
		Return(&domain.TariffRateRecord{HSCode: "731815", MFNRate: rate("5"), USMCARate: rate("0")}, nil)
	repo.On("FindBaseRate", mock.Anything, domain.CountryUS, mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

	_, err := svc.BaseRates(context.Background(), "73181500", domain.CountryMX)
	require.NoError(t, err)
	fallback := logs.FilterMessage("base rate matched at fallback level").All()
	if assert.Len(t, fallback, 1) {
		assert.Equal(t, zapcore.DebugLevel, fallback[0].Level)
		assert.Equal(t, "731815", fallback[0].ContextMap()["matched_code"])
		assert.Equal(t, "prefix_6", fallback[0].ContextMap()["match_level"])
	}

	_, err = svc.BaseRates(context.Background(), "99999999", domain.CountryUS)
	require.NoError(t, err)
	missing := logs.FilterMessage("no base rate at any HS level").All()
	if assert.Len(t, missing, 1) {
		assert.Equal(t, zapcore.WarnLevel, missing[0].Level)
		assert.Equal(t, "99999999", missing[0].ContextMap()["hs_code"])
	}
}
