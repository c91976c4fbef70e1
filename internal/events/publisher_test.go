package events

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/olepukh/storefront/internal/domain/model"
)

func TestNopPublisher_PublishOrderEvent(t *testing.T) {
	pub := NewNopPublisher(slog.New(slog.NewTextHandler(io.Discard, nil)))
	order := model.Order{ID: "ord_1", Status: model.OrderStatusShipped}
	if err := pub.PublishOrderEvent(context.Background(), RoutingKeyOrderStatusChanged, order); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := pub.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
}
