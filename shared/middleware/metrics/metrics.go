// Package metrics provides Prometheus HTTP metrics middleware.
//
// Plain requests are timed as request latency. Requests upgraded to a
// websocket (the board feeds) are timed as sessions instead, since they live
// until the subscriber goes away.
package metrics

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "simpleboard"

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route pattern",
		},
		[]string{"method", "route", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of requests that were not upgraded",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	requestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Requests being processed, upgraded sessions excluded",
		},
	)

	sessionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "websocket_session_duration_seconds",
			Help:      "Lifetime of upgraded websocket sessions",
			Buckets:   []float64{1, 10, 60, 300, 900, 1800, 3600, 4 * 3600, 12 * 3600},
		},
		[]string{"route"},
	)
)

// statusRecorder captures the status code and notices websocket upgrades.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int

	upgradeOnce sync.Once
	upgraded    bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack lets websocket upgrades pass through. From here on the request
// counts as a session and leaves the in-flight gauge.
func (rw *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	conn, buf, err := hj.Hijack()
	if err != nil {
		return nil, nil, err
	}
	rw.upgradeOnce.Do(func() {
		rw.statusCode = http.StatusSwitchingProtocols
		rw.upgraded = true
		requestsInFlight.Dec()
	})
	return conn, buf, nil
}

func (rw *statusRecorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// routePattern keeps label cardinality bounded: board and item ids never end
// up in a label.
func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

// Middleware returns HTTP middleware that records Prometheus metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestsInFlight.Inc()

		rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := routePattern(r)
		elapsed := time.Since(start).Seconds()
		requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.statusCode)).Inc()

		if rec.upgraded {
			sessionDuration.WithLabelValues(route).Observe(elapsed)
			return
		}
		requestsInFlight.Dec()
		requestDuration.WithLabelValues(r.Method, route).Observe(elapsed)
	})
}
