package repository

import (
	"context"

	"github.com/olepukh/storefront/internal/domain/model"
)

// NewOrder carries the caller-supplied fields for ledger insertion.
type NewOrder struct {
	Items         []model.OrderItem
	Total         int64
	CustomerName  string
	CustomerEmail string
}

// StatusUpdate describes an unconditional status overwrite. Legality of the
// transition is the caller's responsibility, not the ledger's.
type StatusUpdate struct {
	Status         model.OrderStatus
	TransactionID  string
	TrackingNumber string
}

// OrderRepository describes persistence operations with orders. Orders are
// never deleted; the ledger is append-only.
type OrderRepository interface {
	Create(ctx context.Context, req NewOrder) (*model.Order, error)
	Get(ctx context.Context, id string) (*model.Order, error)
	// List returns orders for the given customer email, or every order
	// sorted by creation time descending when the filter is empty.
	List(ctx context.Context, customerEmail string) ([]model.Order, error)
	// AttachPaymentSession stores the session id and moves the order to
	// processing regardless of its prior status.
	AttachPaymentSession(ctx context.Context, id, sessionID string) (*model.Order, error)
	SetStatus(ctx context.Context, id string, update StatusUpdate) (*model.Order, error)
}
