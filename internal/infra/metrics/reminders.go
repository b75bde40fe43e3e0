package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(remindersSentTotal) }

var remindersSentTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "reminders_sent_total",
		Help: "Total number of renewal reminders processed, labeled by status.",
	},
	[]string{"status"}, // 'sent', 'failed', 'deduped'
)

func IncReminder(status string) {
	remindersSentTotal.WithLabelValues(status).Inc()
}
