package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tradeflow/internal/domain"
	"tradeflow/internal/service"
	"tradeflow/mocks"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func newComparison(rates *mocks.MockRateSource, factors service.FactorSource) service.ComparisonService {
	return service.NewComparisonService(
		service.NewSavingsService(rates, 4),
		factors,
		service.ComparisonConfig{MaterialityThreshold: dec("1000"), ShippingMode: "ocean"},
	)
}

func scenarioRates(usMFN, mxMFN string) *mocks.MockRateSource {
	rates := new(mocks.MockRateSource)
	rates.On("TariffRates", mock.Anything, rateQuery("85423100", "CN", domain.CountryUS)).
		Return(lookup("85423100", rate(usMFN), rate("0")), live, nil)
	rates.On("TariffRates", mock.Anything, rateQuery("85423100", "CN", domain.CountryMX)).
		Return(lookup("85423100", rate(mxMFN), rate("0")), live, nil)
	return rates
}

func scenarioInput(dests ...domain.Country) service.ComparisonInput {
	return service.ComparisonInput{
		Components:   []domain.Component{component("85423100", "CN", "1000000")},
		Destinations: dests,
	}
}

func TestComparisonService_SingleDestination(t *testing.T) {
	svc := newComparison(scenarioRates("25", "18"), nil)

	res, err := svc.Compare(context.Background(), scenarioInput(domain.CountryUS))
	require.NoError(t, err)

	us := res.PerDestination[domain.CountryUS]
	require.NotNil(t, us)
	assert.True(t, us.Savings.Decimal.Equal(dec("250000")))
	assert.Equal(t, domain.CountryUS, res.RecommendedDestination)
	assert.Contains(t, res.Recommendation, "$250000.00")
	assert.Contains(t, res.Recommendation, "100.00%")
	assert.Equal(t, domain.DataQualityComplete, res.DataQuality)
	assert.NotEqual(t, "", res.ID.String())
}

func TestComparisonService_ScenarioB_HigherSavingsNamed(t *testing.T) {
	svc := newComparison(scenarioRates("25", "18"), nil)

	res, err := svc.Compare(context.Background(), scenarioInput(domain.CountryUS, domain.CountryMX))
	require.NoError(t, err)

	assert.True(t, res.PerDestination[domain.CountryMX].Savings.Decimal.Equal(dec("180000")))
	assert.Equal(t, domain.CountryUS, res.RecommendedDestination)
	assert.Contains(t, res.Recommendation, "US offers higher USMCA savings than MX")
	assert.Contains(t, res.Recommendation, "$70000.00")
}

func TestComparisonService_DifferenceBelowThresholdIsSimilar(t *testing.T) {
	svc := newComparison(scenarioRates("25", "24.95"), nil)

	res, err := svc.Compare(context.Background(), scenarioInput(domain.CountryUS, domain.CountryMX))
	require.NoError(t, err)

	assert.Contains(t, res.Recommendation, "similar")
	assert.Contains(t, res.Recommendation, "$500.00")
	assert.Equal(t, domain.Country(""), res.RecommendedDestination)
}

func TestComparisonService_ScenarioC_PartialData(t *testing.T) {
	rates := new(mocks.MockRateSource)
	rates.On("TariffRates", mock.Anything, rateQuery("99999999", "CN", domain.CountryUS)).
		Return(&domain.RateLookupResult{HSCode: "99999999", MatchLevel: domain.MatchNone}, live, nil)
	svc := newComparison(rates, nil)

	res, err := svc.Compare(context.Background(), service.ComparisonInput{
		Components:   []domain.Component{component("99999999", "CN", "1000")},
		Destinations: []domain.Country{domain.CountryUS},
	})
	require.NoError(t, err)

	us := res.PerDestination[domain.CountryUS]
	assert.False(t, us.TotalMFNDuty.Valid)
	assert.Equal(t, domain.DataQualityPartial, us.DataQuality)
	assert.Equal(t, domain.DataQualityPartial, res.DataQuality)
	assert.Contains(t, res.Recommendation, "customs broker")
	assert.NotEmpty(t, res.Warnings)
}

func TestComparisonService_ScenarioD_UnsupportedDestination(t *testing.T) {
	rates := new(mocks.MockRateSource)
	svc := newComparison(rates, nil)

	_, err := svc.Compare(context.Background(), scenarioInput(domain.CountryUS, "DE"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, err, domain.ErrUnsupportedDestination)
	assert.Contains(t, err.Error(), `"DE"`)
	rates.AssertNotCalled(t, "TariffRates", mock.Anything, mock.Anything)
}

func TestComparisonService_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input service.ComparisonInput
		field string
	}{
		{"no components", service.ComparisonInput{Destinations: []domain.Country{"US"}}, "components"},
		{"no destinations", service.ComparisonInput{Components: []domain.Component{component("85423100", "CN", "1")}}, "destinations"},
		{"invalid hs code", service.ComparisonInput{
			Components:   []domain.Component{component("n/a", "CN", "1")},
			Destinations: []domain.Country{"US"},
		}, "components[0].hs_code"},
		{"missing origin", service.ComparisonInput{
			Components:   []domain.Component{component("85423100", "", "1")},
			Destinations: []domain.Country{"US"},
		}, "components[0].origin"},
		{"negative value", service.ComparisonInput{
			Components:   []domain.Component{component("85423100", "CN", "-5")},
			Destinations: []domain.Country{"US"},
		}, "components[0].value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newComparison(new(mocks.MockRateSource), nil)
			_, err := svc.Compare(context.Background(), tt.input)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestComparisonService_DestinationsNormalizedAndDeduplicated(t *testing.T) {
	svc := newComparison(scenarioRates("25", "18"), nil)

	res, err := svc.Compare(context.Background(), scenarioInput("us", " US", domain.CountryMX))
	require.NoError(t, err)
	assert.Equal(t, []domain.Country{domain.CountryUS, domain.CountryMX}, res.Destinations)
}

func TestComparisonService_LeavesCallerComponentsUntouched(t *testing.T) {
	svc := newComparison(scenarioRates("25", "18"), nil)

	components := []domain.Component{component("8542.31.00", " cn", "1000000")}
	input := service.ComparisonInput{Components: components, Destinations: []domain.Country{"us", domain.CountryMX}}

	res, err := svc.Compare(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, domain.Country("CN"), res.ComponentBreakdown[0].Origin)
	assert.Equal(t, domain.Country(" cn"), components[0].Origin)
	assert.Equal(t, "8542.31.00", components[0].HSCode)
	assert.Equal(t, []domain.Country{"us", domain.CountryMX}, input.Destinations)

	_, err = svc.Savings(context.Background(), components, domain.CountryUS)
	require.NoError(t, err)
	assert.Equal(t, domain.Country(" cn"), components[0].Origin)
}

func TestComparisonService_Breakdown(t *testing.T) {
	svc := newComparison(scenarioRates("25", "18"), nil)

	res, err := svc.Compare(context.Background(), scenarioInput(domain.CountryUS, domain.CountryMX))
	require.NoError(t, err)
	require.Len(t, res.ComponentBreakdown, 1)

	want := domain.ComponentResult{
		Index:            0,
		HSCode:           "85423100",
		NormalizedHSCode: "85423100",
		Origin:           "CN",
		Value:            dec("1000000"),
		MFNRate:          rate("25"),
		USMCARate:        rate("0"),
		PolicyRate:       rate("0"),
		MFNDuty:          rate("250000"),
		USMCADuty:        rate("0"),
		Savings:          rate("250000"),
		MatchLevel:       domain.MatchExact8,
	}
	got := res.ComponentBreakdown[0].Destinations[domain.CountryUS]
	if diff := cmp.Diff(want, got, decimalEqual); diff != "" {
		t.Errorf("US breakdown mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, res.ComponentBreakdown[0].Destinations[domain.CountryMX].Savings.Decimal.Equal(dec("180000")))
}

func TestComparisonService_PaddedCodeWarns(t *testing.T) {
	rates := new(mocks.MockRateSource)
	rates.On("TariffRates", mock.Anything, rateQuery("85420000", "CN", domain.CountryUS)).
		Return(lookup("85420000", rate("0"), rate("0")), live, nil)
	svc := newComparison(rates, nil)

	res, err := svc.Compare(context.Background(), service.ComparisonInput{
		Components:   []domain.Component{component("8542", "CN", "10")},
		Destinations: []domain.Country{domain.CountryUS},
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "zero-padded to 85420000")
}

func TestComparisonService_OperationalFactors(t *testing.T) {
	factors := new(mocks.MockFactorSource)
	factors.On("CountryRisk", mock.Anything, service.RiskQuery{Country: "CN"}).
		Return(&domain.CountryRisk{Country: "CN", Score: 61, Level: "elevated"}, live, nil)
	factors.On("ShippingRate", mock.Anything, service.ShippingQuery{Origin: "MX", Destination: "US", Mode: "ocean"}).
		Return(nil, domain.Freshness{}, errors.New("provider timeout"))
	factors.On("Routes", mock.Anything, service.InfrastructureQuery{Origin: "MX", Destination: "US"}).
		Return(nil, domain.Freshness{}, domain.ErrNotFound)
	factors.On("BusinessPattern", mock.Anything, service.PatternQuery{Name: "seasonality:US"}).
		Return(nil, domain.Freshness{}, domain.ErrNoFetcher)

	svc := newComparison(scenarioRates("25", "18"), factors)
	input := scenarioInput(domain.CountryUS)
	input.ManufacturingLocation = domain.CountryMX

	res, err := svc.Compare(context.Background(), input)
	require.NoError(t, err)

	f := res.OperationalFactors[domain.CountryUS]
	require.NotNil(t, f)
	require.Len(t, f.OriginRisk, 1)
	assert.Equal(t, 61.0, f.OriginRisk[0].Score)
	assert.Nil(t, f.Shipping)
	assert.Empty(t, f.Routes)
	assert.Equal(t, domain.CountryMX, res.ManufacturingLocation)

	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "shipping rate MX to US unavailable")
	factors.AssertExpectations(t)
}

func TestComparisonService_SavingsEndpointValidates(t *testing.T) {
	rates := scenarioRates("25", "18")
	svc := newComparison(rates, nil)

	res, err := svc.Savings(context.Background(), []domain.Component{component("85423100", "CN", "1000000")}, "us")
	require.NoError(t, err)
	assert.Equal(t, domain.CountryUS, res.Destination)

	_, err = svc.Savings(context.Background(), []domain.Component{component("85423100", "CN", "1")}, "CA")
	assert.ErrorIs(t, err, domain.ErrUnsupportedDestination)
}
