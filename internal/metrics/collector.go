// Package metrics exposes classifier statistics to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tradeflow/internal/service"
)

const namespace = "tradeflow"

// StatsFunc returns the current classifier counters.
type StatsFunc func() service.CacheStats

// CacheCollector reads classifier counters at scrape time.
type CacheCollector struct {
	stats StatsFunc

	hits           *prometheus.Desc
	liveFetches    *prometheus.Desc
	staleFallbacks *prometheus.Desc
	fetchErrors    *prometheus.Desc
	efficiency     *prometheus.Desc
	entries        *prometheus.Desc
	treatyVersion  *prometheus.Desc
}

// NewCacheCollector creates a collector over stats.
func NewCacheCollector(stats StatsFunc) *CacheCollector {
	return &CacheCollector{
		stats: stats,
		hits: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "hits_total"),
			"Reads answered from a cache, by store.",
			[]string{"store"}, nil,
		),
		liveFetches: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "live_fetches_total"),
			"Reads that went to the underlying source.",
			nil, nil,
		),
		staleFallbacks: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "stale_fallbacks_total"),
			"Failed refreshes answered with a stale value.",
			nil, nil,
		),
		fetchErrors: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "fetch_errors_total"),
			"Failed live fetches.",
			nil, nil,
		),
		efficiency: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "efficiency_ratio"),
			"Share of reads answered from a cache.",
			nil, nil,
		),
		entries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "entries"),
			"Entries currently stored, by store.",
			[]string{"store"}, nil,
		),
		treatyVersion: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "treaty", "version_info"),
			"Treaty version in force.",
			[]string{"version"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *CacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.liveFetches
	ch <- c.staleFallbacks
	ch <- c.fetchErrors
	ch <- c.efficiency
	ch <- c.entries
	ch <- c.treatyVersion
}

// Collect implements prometheus.Collector.
func (c *CacheCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.stats()
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.StableHits), "stable")
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.VolatileHits), "volatile")
	ch <- prometheus.MustNewConstMetric(c.liveFetches, prometheus.CounterValue, float64(s.LiveFetches))
	ch <- prometheus.MustNewConstMetric(c.staleFallbacks, prometheus.CounterValue, float64(s.StaleFallbacks))
	ch <- prometheus.MustNewConstMetric(c.fetchErrors, prometheus.CounterValue, float64(s.FetchErrors))
	ch <- prometheus.MustNewConstMetric(c.efficiency, prometheus.GaugeValue, s.Efficiency)
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(s.StableEntries), "stable")
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(s.VolatileEntries), "volatile")
	ch <- prometheus.MustNewConstMetric(c.treatyVersion, prometheus.GaugeValue, 1, s.TreatyVersion)
}

// NewRegistry returns a registry with the Go and process collectors plus c.
func NewRegistry(c prometheus.Collector) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c,
	)
	return reg
}

// Handler serves reg in the Prometheus exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
