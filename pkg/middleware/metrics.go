package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Number of in-flight HTTP requests",
		},
	)

	meetingOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meeting_operations_total",
			Help: "Meeting lifecycle operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	invitationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meeting_invitations_total",
			Help: "Meeting invitation emails by outcome",
		},
		[]string{"outcome"},
	)
)

// Metrics records request counts and latency labelled by the route pattern.
func Metrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		activeRequests.Inc()
		defer activeRequests.Dec()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		path := c.Path()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Response().Status)
		httpRequestsTotal.WithLabelValues(c.Request().Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())
		return nil
	}
}

func RecordMeetingOperation(operation, outcome string) {
	meetingOperations.WithLabelValues(operation, outcome).Inc()
}

func RecordInvitation(outcome string) {
	invitationsSent.WithLabelValues(outcome).Inc()
}
