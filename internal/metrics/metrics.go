package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

func NewServerMetrics(service string) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout",
		Subsystem: service,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "checkout",
		Subsystem: service,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})

	prometheus.MustRegister(requests, latency)
	return &ServerMetrics{Requests: requests, LatencyMS: latency}
}

// Middleware records request count and latency per route.
func (m *ServerMetrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}

			handler := c.Path()
			if handler == "" {
				handler = c.Request().URL.Path
			}
			m.Requests.WithLabelValues(handler, strconv.Itoa(status)).Inc()
			m.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
			return err
		}
	}
}

// OutboxMetrics tracks dispatch outcomes of the order-transition worker.
type OutboxMetrics struct {
	Dispatched *prometheus.CounterVec
	PendingAge prometheus.Histogram
}

func NewOutboxMetrics(service string) *OutboxMetrics {
	dispatched := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout",
		Subsystem: service,
		Name:      "outbox_dispatched_total",
		Help:      "Order-transition tasks dispatched, by result.",
	}, []string{"result"})
	pendingAge := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "checkout",
		Subsystem: service,
		Name:      "outbox_task_age_seconds",
		Help:      "Age of a task at the moment it is resolved.",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 300, 900},
	})

	prometheus.MustRegister(dispatched, pendingAge)
	return &OutboxMetrics{Dispatched: dispatched, PendingAge: pendingAge}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
