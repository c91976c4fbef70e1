package events

import (
	"context"
	"log/slog"

	"github.com/olepukh/storefront/internal/domain/model"
)

// Routing keys for order fanout.
const (
	RoutingKeyOrderCreated       = "order.created"
	RoutingKeyOrderStatusChanged = "order.status_changed"
)

// Publisher fans order events out to interested consumers.
type Publisher interface {
	PublishOrderEvent(ctx context.Context, routingKey string, order model.Order) error
	Close() error
}

// NopPublisher drops events. Used when no broker is configured.
type NopPublisher struct {
	logger *slog.Logger
}

// NewNopPublisher constructs the no-op publisher.
func NewNopPublisher(logger *slog.Logger) *NopPublisher {
	return &NopPublisher{logger: logger}
}

func (p *NopPublisher) PublishOrderEvent(_ context.Context, routingKey string, order model.Order) error {
	p.logger.Debug("event broker not configured, dropping event",
		slog.String("routing_key", routingKey),
		slog.String("order", order.ID),
	)
	return nil
}

func (p *NopPublisher) Close() error { return nil }
