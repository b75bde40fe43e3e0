package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		renewalsRefreshedTotal,
		renewalRefreshSkipsTotal,
		rollupsComputedTotal,
	)
}

var (
	renewalsRefreshedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "renewals_refreshed_total",
			Help: "Total number of stale renewal dates recomputed by the renewal worker.",
		},
	)

	renewalRefreshSkipsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "renewal_refresh_skips_total",
			Help: "Total number of subscriptions skipped during renewal refresh due to bad data.",
		},
	)

	rollupsComputedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rollups_computed_total",
			Help: "Total number of dashboard spend rollups computed.",
		},
	)
)

func IncRenewalsRefreshed(count int) {
	renewalsRefreshedTotal.Add(float64(count))
}

func IncRenewalRefreshSkips(count int) {
	renewalRefreshSkipsTotal.Add(float64(count))
}

func IncRollupsComputed() {
	rollupsComputedTotal.Inc()
}
