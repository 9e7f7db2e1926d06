package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Sonuç etiketleri
const (
	ResultSuccess             = "success"
	ResultInvalidAmount       = "invalid_amount"
	ResultLimitExceeded       = "limit_exceeded"
	ResultInsufficientBalance = "insufficient_balance"
	ResultStorageFailure      = "storage_failure"
)

var (
	// Puan işlemleri
	PointOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "point_operations_total",
			Help: "Total point mutations by type and result",
		},
		[]string{"type", "result"}, // CHARGE|USE
	)
	PointOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "point_operation_duration_seconds",
			Help:    "Duration of point mutations including lock wait",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"type"},
	)

	// Kullanıcı kilitleri
	LockWaitSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "point_lock_wait_seconds",
			Help:    "Time spent waiting for the per-user lock",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
	)
	UserLocks = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "point_user_locks",
			Help: "Number of per-user locks created",
		},
	)

	// HTTP
	RateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Requests rejected by the per-IP rate limiter",
		},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	registerOnce sync.Once
)

// /metrics endpoint'i için handler
var Handler = promhttp.Handler

// Init collector'ları default registry'e kaydeder; birden fazla çağrı güvenli
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			PointOperationsTotal,
			PointOperationDuration,
			LockWaitSeconds,
			UserLocks,
			RateLimitedTotal,
			HTTPRequestDuration,
		)
	})
}
