package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		rateFetchFailuresTotal,
		rateFallbackActive,
	)
}

var (
	rateFetchFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_fetch_failures_total",
			Help: "Total number of failed live exchange-rate fetches.",
		},
	)

	rateFallbackActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_fallback_active",
			Help: "1 when the static fallback rate table served the last request, 0 otherwise.",
		},
	)
)

func IncRateFetchFailures() {
	rateFetchFailuresTotal.Inc()
}

func SetRateFallbackActive(active bool) {
	if active {
		rateFallbackActive.Set(1)
		return
	}
	rateFallbackActive.Set(0)
}
