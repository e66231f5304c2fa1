package checkout

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/session"
)

// Gateway submits an order to the external order system and returns its id.
type Gateway interface {
	Submit(ctx context.Context, payload model.OrderPayload) (string, error)
}

// EventPublisher emits order events. kafka-go's writer satisfies it through
// pkg/broker.
type EventPublisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

type Receipt struct {
	OrderID string             `json:"order_id"`
	Payload model.OrderPayload `json:"payload"`
}

// UseCase expects the caller to hold the session lock.
type UseCase interface {
	Quote(s *session.Session) model.Totals
	PlaceOrder(ctx context.Context, s *session.Session) (*Receipt, error)
}
