package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	grpcRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "grpc",
			Name:      "requests_total",
			Help:      "Total number of gRPC requests handled.",
		},
		[]string{"method", "code"},
	)

	grpcDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "storefront",
			Subsystem: "grpc",
			Name:      "request_duration_seconds",
			Help:      "Duration of gRPC requests.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method"},
	)

	catalogCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "catalog",
			Name:      "snapshot_cache_total",
			Help:      "Catalog snapshot cache lookups by result.",
		},
		[]string{"result"},
	)

	catalogFetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "storefront",
			Subsystem: "catalog",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of catalog provider reads.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
	)

	couponApplications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "checkout",
			Name:      "coupon_applications_total",
			Help:      "Coupon application attempts by result.",
		},
		[]string{"result"},
	)

	orders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "checkout",
			Name:      "orders_total",
			Help:      "Orders handed to the order gateway by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	Registry.MustRegister(
		grpcRequests,
		grpcDuration,
		catalogCache,
		catalogFetchDuration,
		couponApplications,
		orders,
	)
}

// Handler exposes the registry for scraping.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// UnaryServerInterceptor counts and times every unary call.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		grpcDuration.WithLabelValues(info.FullMethod).Observe(time.Since(start).Seconds())
		grpcRequests.WithLabelValues(info.FullMethod, status.Code(err).String()).Inc()
		return resp, err
	}
}

func RecordCatalogCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	catalogCache.WithLabelValues(result).Inc()
}

func ObserveCatalogFetch(d time.Duration) {
	catalogFetchDuration.Observe(d.Seconds())
}

func RecordCoupon(result string) {
	couponApplications.WithLabelValues(result).Inc()
}

func RecordOrder(outcome string) {
	orders.WithLabelValues(outcome).Inc()
}
