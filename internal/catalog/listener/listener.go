package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/catalog"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *broker.KafkaConsumer.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// CatalogListener drops the cached catalog snapshot whenever the commerce
// backend announces a catalog change.
type CatalogListener struct {
	consumer MessageReader
	uc       catalog.UseCase
	logger   logger.ZapLogger
	backoff  time.Duration
}

func NewCatalogListener(consumer MessageReader, uc catalog.UseCase, logger logger.ZapLogger) *CatalogListener {
	return &CatalogListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
		backoff:  time.Second,
	}
}

func (l *CatalogListener) Start(ctx context.Context) {
	l.logger.Info("Starting Catalog Kafka Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping Catalog Kafka Listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				// Don't log context canceled error as error
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(l.backoff):
				}
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type CatalogEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	EntityID  string    `json:"entity_id"`
	Timestamp time.Time `json:"timestamp"`
}

var invalidatingEvents = map[string]bool{
	"CatalogUpdated":  true,
	"ProductUpdated":  true,
	"ProductDeleted":  true,
	"CategoryUpdated": true,
	"StockChanged":    true,
}

func (l *CatalogListener) processMessage(ctx context.Context, value []byte) {
	var event CatalogEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if !invalidatingEvents[event.EventType] {
		return
	}

	if err := l.uc.Invalidate(ctx); err != nil {
		l.logger.Error("Failed to invalidate catalog snapshot",
			zap.String("event_id", event.EventID),
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
		return
	}
	l.logger.Info("Catalog snapshot invalidated",
		zap.String("event_type", event.EventType),
		zap.String("entity_id", event.EntityID),
	)
}
