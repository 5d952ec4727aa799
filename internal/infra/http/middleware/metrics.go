package middleware

import (
	"net/http"
	"strconv"
	"time"

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

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	quotationsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quotations_created_total",
			Help: "Total number of quotations created through the gateway",
		},
	)

	quotationsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quotations_sent_total",
			Help: "Total number of quotations sent to clients",
		},
	)

	reportEmailsQueued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "report_emails_queued_total",
			Help: "Total number of report email jobs queued",
		},
	)

	upstreamErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_upstream_errors_total",
			Help: "Total number of upstream CRM API errors",
		},
		[]string{"resource"},
	)

	forcedLogouts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "forced_logouts_total",
			Help: "Total number of sessions torn down after an upstream 401",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordQuotationCreated() {
	quotationsCreated.Inc()
}

func RecordQuotationSent() {
	quotationsSent.Inc()
}

func RecordReportEmailQueued() {
	reportEmailsQueued.Inc()
}

func RecordUpstreamError(resource string) {
	upstreamErrors.WithLabelValues(resource).Inc()
}

func RecordForcedLogout() {
	forcedLogouts.Inc()
}
