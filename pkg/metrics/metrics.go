package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
		[]string{"service"},
	)

	// Navigation metrics
	TrackingSessionsGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tracking_sessions_active",
			Help: "Current number of active tracking sessions",
		},
		[]string{"service"},
	)

	PositionUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "position_updates_total",
			Help: "Total number of device position updates processed",
		},
		[]string{"service", "accuracy_mode"},
	)

	RoutingRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routing_requests_total",
			Help: "Total number of routing service requests",
		},
		[]string{"service", "status"},
	)

	RoutingFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routing_fallbacks_total",
			Help: "Total number of straight-line fallback routes produced",
		},
		[]string{"service"},
	)

	ReroutesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reroutes_total",
			Help: "Total number of route recomputations",
		},
		[]string{"service", "trigger"}, // trigger: user|drift
	)

	WebSocketConnectionsGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "websocket_connections_total",
			Help: "Current number of active WebSocket connections",
		},
		[]string{"service"},
	)

	// Storefront metrics
	PinsImportedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pins_imported_total",
			Help: "Total number of delivery pins imported",
		},
		[]string{"service", "mode"}, // mode: replace|append
	)

	DeliveriesCompletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deliveries_completed_total",
			Help: "Total number of deliveries moved to history",
		},
		[]string{"service"},
	)

	OrdersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_total",
			Help: "Total number of orders submitted",
		},
		[]string{"service", "status"},
	)

	DatabaseQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "database_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"service", "operation", "status"},
	)

	DatabaseQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "database_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "operation"},
	)

	RabbitMQMessagesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rabbitmq_messages_published_total",
			Help: "Total number of messages published to RabbitMQ",
		},
		[]string{"service", "exchange", "status"},
	)
)

// RecordHTTPMetrics records HTTP request metrics
func RecordHTTPMetrics(service, method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	HttpRequestsTotal.WithLabelValues(service, method, path, status).Inc()
	HttpRequestDuration.WithLabelValues(service, method, path, status).Observe(duration.Seconds())
}

// RecordRoutingRequest records one routing service call outcome
func RecordRoutingRequest(service string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	RoutingRequestsTotal.WithLabelValues(service, status).Inc()
}

// RecordDatabaseQuery records database query metrics
func RecordDatabaseQuery(service, operation string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	DatabaseQueriesTotal.WithLabelValues(service, operation, status).Inc()
	DatabaseQueryDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

// RecordRabbitMQPublish records RabbitMQ publish metrics
func RecordRabbitMQPublish(service, exchange string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	RabbitMQMessagesPublished.WithLabelValues(service, exchange, status).Inc()
}
