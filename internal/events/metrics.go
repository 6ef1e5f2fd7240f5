package events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_bus_events_emitted_total",
			Help: "Total number of events emitted on session buses",
		},
		[]string{"event"},
	)

	handlersInvoked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_bus_handlers_invoked_total",
			Help: "Total number of handler invocations across session buses",
		},
	)
)
