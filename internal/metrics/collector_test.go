package metrics_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeflow/internal/metrics"
	"tradeflow/internal/service"
)

func TestCacheCollector(t *testing.T) {
	stats := service.CacheStats{
		StableHits:      6,
		VolatileHits:    2,
		LiveFetches:     2,
		StaleFallbacks:  1,
		FetchErrors:     3,
		Efficiency:      0.8,
		StableEntries:   40,
		VolatileEntries: 5,
		TreatyVersion:   "USMCA-2020",
	}
	c := metrics.NewCacheCollector(func() service.CacheStats { return stats })

	expected := `
# HELP tradeflow_cache_hits_total Reads answered from a cache, by store.
# TYPE tradeflow_cache_hits_total counter
tradeflow_cache_hits_total{store="stable"} 6
tradeflow_cache_hits_total{store="volatile"} 2
# HELP tradeflow_cache_efficiency_ratio Share of reads answered from a cache.
# TYPE tradeflow_cache_efficiency_ratio gauge
tradeflow_cache_efficiency_ratio 0.8
# HELP tradeflow_treaty_version_info Treaty version in force.
# TYPE tradeflow_treaty_version_info gauge
tradeflow_treaty_version_info{version="USMCA-2020"} 1
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"tradeflow_cache_hits_total",
		"tradeflow_cache_efficiency_ratio",
		"tradeflow_treaty_version_info",
	)
	require.NoError(t, err)
	assert.Equal(t, 9, testutil.CollectAndCount(c))
}

func TestNewRegistry_RegistersRuntimeCollectors(t *testing.T) {
	reg := metrics.NewRegistry(metrics.NewCacheCollector(func() service.CacheStats { return service.CacheStats{} }))

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["go_goroutines"])
	assert.True(t, names["tradeflow_cache_live_fetches_total"])
}
