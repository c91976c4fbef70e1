package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/olepukh/storefront/internal/domain/errors"
	"github.com/olepukh/storefront/internal/domain/model"
	"github.com/olepukh/storefront/internal/domain/repository"
)

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders}
}

// Create validates and records a new order. The submitted total is stored
// verbatim; it is never recomputed from the line items.
func (u *OrderUseCase) Create(ctx context.Context, req repository.NewOrder) (*model.Order, error) {
	if len(req.Items) == 0 {
		return nil, domainErrors.ErrEmptyOrder
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, domainErrors.NewValidationError("items.quantity")
		}
		if item.Name == "" {
			return nil, domainErrors.NewValidationError("items.name")
		}
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, domainErrors.NewValidationError("customer_name")
	}
	if strings.TrimSpace(req.CustomerEmail) == "" {
		return nil, domainErrors.NewValidationError("customer_email")
	}
	if req.Total < 0 {
		return nil, domainErrors.NewValidationError("total")
	}
	return u.orders.Create(ctx, req)
}

// Get fetches an order by ledger id.
func (u *OrderUseCase) Get(ctx context.Context, id string) (*model.Order, error) {
	return u.orders.Get(ctx, id)
}

// List returns orders for a customer email, newest first. An empty filter
// returns every order.
func (u *OrderUseCase) List(ctx context.Context, customerEmail string) ([]model.Order, error) {
	return u.orders.List(ctx, customerEmail)
}

// AttachPaymentSession stores the gateway session and moves the order to
// processing.
func (u *OrderUseCase) AttachPaymentSession(ctx context.Context, id, sessionID string) (*model.Order, error) {
	return u.orders.AttachPaymentSession(ctx, id, sessionID)
}

// UpdateStatus overwrites the order status after checking the target against
// the caller's allow-list. Transitions are not sequenced: any allowed target
// is accepted regardless of the current status.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, id string, update repository.StatusUpdate, admin bool) (*model.Order, error) {
	if !StatusAllowed(update.Status, admin) {
		return nil, domainErrors.ErrInvalidStatus
	}
	return u.orders.SetStatus(ctx, id, update)
}

// RecordPaymentOutcome resolves a verified gateway callback into the order
// status: completed on success, failed otherwise.
func (u *OrderUseCase) RecordPaymentOutcome(ctx context.Context, event model.WebhookEvent) (*model.Order, error) {
	update := repository.StatusUpdate{Status: model.OrderStatusFailed}
	if event.Succeeded {
		update.Status = model.OrderStatusCompleted
		update.TransactionID = event.TransactionID
	}
	return u.orders.SetStatus(ctx, event.OrderID, update)
}
