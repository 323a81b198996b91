package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ApplicationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "edfund_applications_created_total",
		Help: "Loan requests inserted, profile creations and top-ups alike.",
	})

	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "edfund_status_transitions_total",
		Help: "Administrator status transitions applied, by target status.",
	}, []string{"target"})

	WatchSubscriptions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "edfund_watch_subscriptions",
		Help: "Live snapshot subscriptions currently open.",
	})
)
