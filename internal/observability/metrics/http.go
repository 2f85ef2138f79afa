package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPServerMetrics owns the API-side registry: request-level metrics
// plus ingestion and query counters.
type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	documentsIngestedTotal *prometheus.CounterVec
	queryTotal             *prometheus.CounterVec
	queryResults           *prometheus.HistogramVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "legalintel",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "legalintel",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "legalintel",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	documentsIngestedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "legalintel",
			Subsystem: "ingest",
			Name:      "documents_total",
			Help:      "Total uploaded documents by outcome.",
		},
		[]string{"service", "outcome"},
	)
	queryTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "legalintel",
			Subsystem: "query",
			Name:      "requests_total",
			Help:      "Total routed queries by detected category.",
		},
		[]string{"service", "category"},
	)
	queryResults := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "legalintel",
			Subsystem: "query",
			Name:      "results",
			Help:      "Distribution of result counts per query.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21, 50},
		},
		[]string{"service", "category"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		documentsIngestedTotal,
		queryTotal,
		queryResults,
	)

	return &HTTPServerMetrics{
		registry:               registry,
		requestTotal:           requestTotal,
		requestDuration:        requestDuration,
		requestInFlight:        requestInFlight,
		documentsIngestedTotal: documentsIngestedTotal,
		queryTotal:             queryTotal,
		queryResults:           queryResults,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	switch {
	case strings.HasSuffix(path, "/reclassify"):
		return "/v1/documents/{document_id}/reclassify"
	case strings.HasPrefix(path, "/v1/documents/"):
		return "/v1/documents/{document_id}"
	default:
		return path
	}
}

func (m *HTTPServerMetrics) RecordIngest(service string, processed, failed int) {
	if processed > 0 {
		m.documentsIngestedTotal.WithLabelValues(service, "processed").Add(float64(processed))
	}
	if failed > 0 {
		m.documentsIngestedTotal.WithLabelValues(service, "failed").Add(float64(failed))
	}
}

func (m *HTTPServerMetrics) RecordQuery(service, category string, resultCount int) {
	if category == "" {
		category = "unknown"
	}
	m.queryTotal.WithLabelValues(service, category).Inc()
	m.queryResults.WithLabelValues(service, category).Observe(float64(resultCount))
}
