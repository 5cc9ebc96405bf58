package prometheus

import (
	"net/http"
	"time"

	"github.com/Nethupa05/Hardware-Backend/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec

	// Authentication metrics
	LoginCounter    prometheus.Counter
	RegisterCounter prometheus.Counter
	AuthErrors      *prometheus.CounterVec

	// Database operation metrics
	DbOperationDuration *prometheus.HistogramVec

	// Resource operation metrics
	ResourceOperations *prometheus.CounterVec

	// Stock metrics
	LowStockAlertsCounter prometheus.Counter
	StockOperations       *prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	prefix := config.Metrics.Prefix

	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	LoginCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_login_attempts_total",
			Help: "Total number of login attempts",
		},
	)

	RegisterCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_register_attempts_total",
			Help: "Total number of registration attempts",
		},
	)

	AuthErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"reason"},
	)

	DbOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	ResourceOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_resource_operations_total",
			Help: "Total number of resource operations",
		},
		[]string{"resource", "operation"},
	)

	LowStockAlertsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_low_stock_alerts_total",
			Help: "Total number of low stock alerts emitted",
		},
	)

	StockOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_stock_operations_total",
			Help: "Total number of stock adjustments",
		},
		[]string{"operation"},
	)
}

// RecordAuthError increments the auth error counter for a reason
func RecordAuthError(reason string) {
	if AuthErrors == nil {
		return
	}
	AuthErrors.WithLabelValues(reason).Inc()
}

// RecordOperation increments the operation counter for a resource
func RecordOperation(resource, operation string) {
	if ResourceOperations == nil {
		return
	}
	ResourceOperations.WithLabelValues(resource, operation).Inc()
}

// RecordStockOperation increments the stock adjustment counter
func RecordStockOperation(operation string) {
	if StockOperations == nil {
		return
	}
	StockOperations.WithLabelValues(operation).Inc()
}

// RecordLowStockAlert increments the low stock alert counter
func RecordLowStockAlert() {
	if LowStockAlertsCounter == nil {
		return
	}
	LowStockAlertsCounter.Inc()
}

// TrackDBOperation returns a function to record DB operation duration.
// Usage: defer prometheus.TrackDBOperation("query")(time.Now())
func TrackDBOperation(operationType string) func(time.Time) {
	return func(start time.Time) {
		if DbOperationDuration == nil {
			return
		}
		DbOperationDuration.WithLabelValues(operationType).Observe(time.Since(start).Seconds())
	}
}

// GetPrometheusHandler returns the HTTP handler for the metrics endpoint
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}
