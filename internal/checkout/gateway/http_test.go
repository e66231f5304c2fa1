package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/checkout/codec"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	apperrors "github.com/fekuna/omnipos-storefront-service/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayload() model.OrderPayload {
	return model.OrderPayload{
		CustomerRef: "customer-1",
		Items: []model.OrderItem{{
			Name:      "Calabresa",
			ProductID: "calabresa",
			UnitPrice: model.MoneyFromString("46.90"),
			Quantity:  2,
			Options:   model.ItemOptions{Size: model.SizeM, Flavors: []string{"calabresa"}},
		}},
		Totals: model.Totals{
			Subtotal:   model.MoneyFromString("93.80"),
			GrandTotal: model.MoneyFromString("93.80"),
		},
	}
}

func TestSubmit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseForm())

		got, err := codec.Decode(r.PostForm)
		require.NoError(t, err)
		assert.Equal(t, "customer-1", got.CustomerRef)
		require.Len(t, got.Items, 1)
		assert.Equal(t, "46.90", r.PostForm.Get("product_price_0"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"order_id":"ord-123"}`))
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL, "secret", time.Second, nil)
	id, err := g.Submit(context.Background(), samplePayload())
	require.NoError(t, err)
	assert.Equal(t, "ord-123", id)
}

func TestSubmitFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusBadGateway)
		}},
		{"bad json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}},
		{"missing id", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewHTTPGateway(srv.URL, "", time.Second, nil).Submit(context.Background(), samplePayload())
			require.Error(t, err)
			assert.True(t, apperrors.IsExternal(err))
		})
	}
}

func TestSubmitUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPGateway(url, "", time.Second, nil).Submit(context.Background(), samplePayload())
	assert.True(t, apperrors.IsExternal(err))

	_, err = NewHTTPGateway("", "", time.Second, nil).Submit(context.Background(), samplePayload())
	assert.True(t, apperrors.IsExternal(err))
}
