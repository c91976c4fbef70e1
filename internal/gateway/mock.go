package gateway

import (
	"context"
	"fmt"

	"github.com/olepukh/storefront/internal/domain/model"
)

// MockGateway stands in whenever real credentials are absent. Sessions carry
// a clearly non-production URL scheme and no signature or redirect semantics.
type MockGateway struct{}

// NewMockGateway constructs the mock adapter.
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (g *MockGateway) CreateSession(_ context.Context, req SessionRequest) (*model.PaymentSession, error) {
	id := sessionID("mock_sess")
	return &model.PaymentSession{
		ID:  id,
		URL: "mock://payment",
		Payload: map[string]string{
			"order_id": req.OrderID,
			"amount":   fmt.Sprintf("%.2f", req.Amount),
			"session":  id,
		},
		Mock: true,
	}, nil
}
