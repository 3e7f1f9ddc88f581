package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "endpoint", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)
	qualityScore = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "datahealth_quality_score",
			Help: "Overall data quality score per master data type (0-10).",
		},
		[]string{"data_type"},
	)
	dimensionScore = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "datahealth_dimension_score",
			Help: "Quality dimension score per master data type (0-100).",
		},
		[]string{"data_type", "dimension"},
	)
	syncRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datahealth_sync_runs_total",
			Help: "Total number of master data sync runs.",
		},
		[]string{"mode", "status"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(qualityScore)
	prometheus.MustRegister(dimensionScore)
	prometheus.MustRegister(syncRunsTotal)
}

// RecordRequest records metrics for a handled HTTP request.
func RecordRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := classifyStatus(statusCode)
	httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

// SetQualityScore publishes the overall score for a data type.
func SetQualityScore(dataType string, score float64) {
	qualityScore.WithLabelValues(dataType).Set(score)
}

// SetDimensionScore publishes a dimension score for a data type.
func SetDimensionScore(dataType, dimension string, score float64) {
	dimensionScore.WithLabelValues(dataType, dimension).Set(score)
}

// RecordSyncRun counts a sync run by source mode and outcome.
func RecordSyncRun(mode string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	syncRunsTotal.WithLabelValues(mode, status).Inc()
}

func classifyStatus(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "2xx"
	} else if statusCode >= 300 && statusCode < 400 {
		return "3xx"
	} else if statusCode >= 400 && statusCode < 500 {
		return "4xx"
	} else if statusCode >= 500 && statusCode < 600 {
		return "5xx"
	}
	return "unknown"
}

// MetricsHandler returns the HTTP handler exposing Prometheus metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
