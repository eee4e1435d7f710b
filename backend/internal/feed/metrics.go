package feed

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	feedConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feed_connections",
			Help: "Number of open board feed websocket connections",
		},
	)

	feedEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_events_published_total",
			Help: "Change events published to the board feed",
		},
		[]string{"entity", "op"},
	)

	feedPublishErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_publish_errors_total",
			Help: "Change events that could not be published",
		},
	)

	feedSlowClientDrops = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_slow_client_disconnects_total",
			Help: "Subscribers disconnected because their send buffer was full",
		},
	)
)
