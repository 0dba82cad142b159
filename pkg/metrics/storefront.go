package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records catalog fetch and checkout activity.
type StorefrontMetrics struct {
	fetchDuration    *prometheus.HistogramVec
	fetchFailures    *prometheus.CounterVec
	checkoutOutcomes *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	fetchDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shop_fetch_duration_seconds",
		Help:    "Duration of upstream shop fetches in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
	fetchFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_fetch_failures",
		Help: "Upstream shop fetches that degraded to an empty result.",
	}, []string{"endpoint"})
	checkoutOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_checkout_outcomes",
		Help: "Checkout submissions by classified outcome.",
	}, []string{"outcome"})
	reg.MustRegister(fetchDuration, fetchFailures, checkoutOutcomes)
	return &StorefrontMetrics{
		fetchDuration:    fetchDuration,
		fetchFailures:    fetchFailures,
		checkoutOutcomes: checkoutOutcomes,
	}
}

// ObserveFetchDuration records the duration for the named endpoint.
func (s *StorefrontMetrics) ObserveFetchDuration(endpoint string, duration time.Duration) {
	if s == nil || s.fetchDuration == nil {
		return
	}
	s.fetchDuration.WithLabelValues(normalizeLabel(endpoint)).Observe(duration.Seconds())
}

// IncFetchFailure increments the degraded-fetch counter for the named endpoint.
func (s *StorefrontMetrics) IncFetchFailure(endpoint string) {
	if s == nil || s.fetchFailures == nil {
		return
	}
	s.fetchFailures.WithLabelValues(normalizeLabel(endpoint)).Inc()
}

// IncCheckoutOutcome increments the counter for the named checkout outcome.
func (s *StorefrontMetrics) IncCheckoutOutcome(outcome string) {
	if s == nil || s.checkoutOutcomes == nil {
		return
	}
	s.checkoutOutcomes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
