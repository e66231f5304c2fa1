package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/checkout"
	"github.com/fekuna/omnipos-storefront-service/internal/metrics"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/session"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const EventOrderCreated = "OrderCreated"

// OrderCreatedEvent is published once the gateway has accepted an order.
type OrderCreatedEvent struct {
	EventID     string      `json:"event_id"`
	Type        string      `json:"type"`
	OrderID     string      `json:"order_id"`
	SessionID   string      `json:"session_id"`
	CustomerRef string      `json:"customer_ref"`
	CouponCode  string      `json:"coupon_code,omitempty"`
	ItemCount   int         `json:"item_count"`
	GrandTotal  model.Money `json:"grand_total"`
	OccurredAt  time.Time   `json:"occurred_at"`
}

type checkoutUseCase struct {
	pricing   checkout.Pricing
	gateway   checkout.Gateway
	publisher checkout.EventPublisher
	logger    logger.ZapLogger
}

// NewCheckoutUseCase wires checkout. publisher may be nil to skip order
// events.
func NewCheckoutUseCase(pricing checkout.Pricing, gateway checkout.Gateway, publisher checkout.EventPublisher, log logger.ZapLogger) checkout.UseCase {
	return &checkoutUseCase{
		pricing:   pricing,
		gateway:   gateway,
		publisher: publisher,
		logger:    log,
	}
}

func (uc *checkoutUseCase) Quote(s *session.Session) model.Totals {
	subtotal := s.Cart.Subtotal()
	return uc.pricing.Totals(subtotal, s.Coupons.Discount(subtotal))
}

func (uc *checkoutUseCase) PlaceOrder(ctx context.Context, s *session.Session) (*checkout.Receipt, error) {
	totals := uc.Quote(s)
	payload, err := checkout.AssembleOrderPayload(s.Cart.Lines(), s.CustomerRef, totals)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			metrics.RecordOrder("empty_cart")
		}
		return nil, err
	}
	if c, ok := s.Coupons.Active(); ok {
		payload.CouponCode = c.Code
	}

	orderID, err := uc.gateway.Submit(ctx, payload)
	if err != nil {
		metrics.RecordOrder("gateway_error")
		uc.logger.Error("order submission failed",
			zap.String("session_id", s.ID),
			zap.Error(err),
		)
		return nil, err
	}
	metrics.RecordOrder("placed")
	uc.logger.Info("order placed",
		zap.String("order_id", orderID),
		zap.String("session_id", s.ID),
		zap.String("grand_total", model.FormatMoney(totals.GrandTotal)),
	)

	uc.publish(ctx, s, orderID, payload)

	s.Cart.Clear()
	s.Coupons.Remove()

	return &checkout.Receipt{OrderID: orderID, Payload: payload}, nil
}

// publish only logs failures: the order already exists upstream.
func (uc *checkoutUseCase) publish(ctx context.Context, s *session.Session, orderID string, payload model.OrderPayload) {
	if uc.publisher == nil {
		return
	}
	evt := OrderCreatedEvent{
		EventID:     uuid.New().String(),
		Type:        EventOrderCreated,
		OrderID:     orderID,
		SessionID:   s.ID,
		CustomerRef: payload.CustomerRef,
		CouponCode:  payload.CouponCode,
		ItemCount:   len(payload.Items),
		GrandTotal:  payload.Totals.GrandTotal,
		OccurredAt:  time.Now().UTC(),
	}
	data, err := json.Marshal(evt)
	if err != nil {
		uc.logger.Error("Failed to marshal order event", zap.Error(err))
		return
	}
	if err := uc.publisher.Publish(ctx, orderID, data); err != nil {
		uc.logger.Warn("Failed to publish order event",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
	}
}
