package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openmic_http_requests_total",
			Help: "HTTP requests by route template, method and status code",
		},
		[]string{"route", "method", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "openmic_http_request_duration_seconds",
			Help:    "HTTP request latency by route template",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	signupOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openmic_signup_operations_total",
			Help: "Signup operations by outcome (ok or an error code)",
		},
		[]string{"operation", "result"},
	)

	notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openmic_notifications_total",
			Help: "Notifications delivered per channel and kind",
		},
		[]string{"channel", "kind", "result"},
	)
)

// TrackRequest records one served HTTP request.
func TrackRequest(route, method string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// TrackSignupOperation records the outcome of a signup operation.
func TrackSignupOperation(operation, result string) {
	signupOperations.WithLabelValues(operation, result).Inc()
}

// TrackNotification records one delivery attempt.
func TrackNotification(channel, kind string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	notifications.WithLabelValues(channel, kind, result).Inc()
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
