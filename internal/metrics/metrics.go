package metrics

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cartOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_operations_total",
			Help: "Total number of cart engine operations.",
		},
		[]string{"op", "mode", "result"},
	)

	cartItemsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cart_items",
			Help: "Current number of distinct items in the cart.",
		},
	)

	gatewayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_requests_total",
			Help: "Total number of HTTP requests issued to the backend.",
		},
		[]string{"method", "code"},
	)

	gatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_request_duration_seconds",
			Help:    "Duration of backend HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

func init() {
	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}
}

func CartOperation(op, mode, result string) {
	cartOperationsTotal.WithLabelValues(op, mode, result).Inc()
}

func SetCartItems(count int) {
	cartItemsGauge.Set(float64(count))
}

func GatewayRequest(method string, statusCode int, duration time.Duration) {
	code := strconv.Itoa(statusCode)
	gatewayRequestsTotal.WithLabelValues(method, code).Inc()
	gatewayRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}
