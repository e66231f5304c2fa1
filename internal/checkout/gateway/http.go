// Package gateway submits flattened orders to the external order system over
// HTTP.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/checkout/codec"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	apperrors "github.com/fekuna/omnipos-storefront-service/pkg/errors"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"go.uber.org/zap"
)

const serviceName = "order gateway"

// HTTPGateway posts orders as application/x-www-form-urlencoded and expects a
// JSON body carrying the new order id.
type HTTPGateway struct {
	url        string
	apiKey     string
	httpClient *http.Client
	logger     logger.ZapLogger
}

type submitResponse struct {
	OrderID string `json:"order_id"`
}

func NewHTTPGateway(url, apiKey string, timeout time.Duration, log logger.ZapLogger) *HTTPGateway {
	if log == nil {
		log = logger.NewNop()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPGateway{
		url:        strings.TrimSuffix(url, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}
}

// Submit sends payload and returns the order id. Every failure, including a
// non-2xx status, comes back as an ExternalServiceError.
func (g *HTTPGateway) Submit(ctx context.Context, payload model.OrderPayload) (string, error) {
	if g.url == "" {
		return "", apperrors.External(serviceName, fmt.Errorf("gateway url not configured"))
	}
	form, err := codec.Encode(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, strings.NewReader(form.Encode()))
	if err != nil {
		return "", apperrors.External(serviceName, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Warn("order gateway request failed", zap.Error(err), zap.Int("items", len(payload.Items)))
		return "", apperrors.External(serviceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", apperrors.External(serviceName, fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	var out submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", apperrors.External(serviceName, fmt.Errorf("decode response: %w", err))
	}
	if out.OrderID == "" {
		return "", apperrors.External(serviceName, fmt.Errorf("response carried no order_id"))
	}
	return out.OrderID, nil
}
