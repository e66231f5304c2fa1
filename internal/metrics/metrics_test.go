package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestRecorders(t *testing.T) {
	before := testutil.ToFloat64(catalogCache.WithLabelValues("hit"))
	RecordCatalogCache(true)
	assert.Equal(t, before+1, testutil.ToFloat64(catalogCache.WithLabelValues("hit")))

	before = testutil.ToFloat64(orders.WithLabelValues("submitted"))
	RecordOrder("submitted")
	assert.Equal(t, before+1, testutil.ToFloat64(orders.WithLabelValues("submitted")))
}

func TestUnaryServerInterceptor(t *testing.T) {
	const method = "/omnipos.storefront.v1.StorefrontService/Quote"
	before := testutil.ToFloat64(grpcRequests.WithLabelValues(method, codes.NotFound.String()))

	_, err := UnaryServerInterceptor()(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: method},
		func(ctx context.Context, req any) (any, error) {
			return nil, status.Error(codes.NotFound, "session not found")
		})
	require.Error(t, err)

	assert.Equal(t, before+1, testutil.ToFloat64(grpcRequests.WithLabelValues(method, codes.NotFound.String())))
}

func TestHandler(t *testing.T) {
	RecordCoupon("applied")
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_checkout_coupon_applications_total")
}
