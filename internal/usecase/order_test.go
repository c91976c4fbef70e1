package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/olepukh/storefront/internal/domain/errors"
	"github.com/olepukh/storefront/internal/domain/model"
	"github.com/olepukh/storefront/internal/domain/repository"
)

type stubOrderRepository struct {
	createFn    func(context.Context, repository.NewOrder) (*model.Order, error)
	setStatusFn func(context.Context, string, repository.StatusUpdate) (*model.Order, error)
}

func (s stubOrderRepository) Create(ctx context.Context, req repository.NewOrder) (*model.Order, error) {
	return s.createFn(ctx, req)
}

func (stubOrderRepository) Get(context.Context, string) (*model.Order, error) {
	panic("not implemented")
}

func (stubOrderRepository) List(context.Context, string) ([]model.Order, error) {
	panic("not implemented")
}

func (stubOrderRepository) AttachPaymentSession(context.Context, string, string) (*model.Order, error) {
	panic("not implemented")
}

func (s stubOrderRepository) SetStatus(ctx context.Context, id string, update repository.StatusUpdate) (*model.Order, error) {
	return s.setStatusFn(ctx, id, update)
}

func validNewOrder() repository.NewOrder {
	return repository.NewOrder{
		Items:         []model.OrderItem{{ProductID: "p1", Name: "Mug", Price: 1250, Quantity: 2}},
		Total:         2500,
		CustomerName:  "Ann",
		CustomerEmail: "ann@example.com",
	}
}

func TestOrderUseCaseCreateRejectsEmptyOrder(t *testing.T) {
	uc := NewOrderUseCase(stubOrderRepository{createFn: func(context.Context, repository.NewOrder) (*model.Order, error) {
		t.Fatal("create should not be called for empty order")
		return nil, nil
	}})

	req := validNewOrder()
	req.Items = nil
	if _, err := uc.Create(context.Background(), req); !errors.Is(err, domainErrors.ErrEmptyOrder) {
		t.Fatalf("expected empty order error, got %v", err)
	}
}

func TestOrderUseCaseCreateValidatesFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*repository.NewOrder)
	}{
		{"zero quantity", func(r *repository.NewOrder) { r.Items[0].Quantity = 0 }},
		{"negative quantity", func(r *repository.NewOrder) { r.Items[0].Quantity = -1 }},
		{"unnamed item", func(r *repository.NewOrder) { r.Items[0].Name = "" }},
		{"blank customer name", func(r *repository.NewOrder) { r.CustomerName = "  " }},
		{"blank customer email", func(r *repository.NewOrder) { r.CustomerEmail = "" }},
		{"negative total", func(r *repository.NewOrder) { r.Total = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := NewOrderUseCase(stubOrderRepository{createFn: func(context.Context, repository.NewOrder) (*model.Order, error) {
				t.Fatal("create should not be called for invalid request")
				return nil, nil
			}})
			req := validNewOrder()
			tc.mutate(&req)
			if _, err := uc.Create(context.Background(), req); !domainErrors.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestOrderUseCaseCreateStoresTotalVerbatim(t *testing.T) {
	uc := NewOrderUseCase(stubOrderRepository{createFn: func(_ context.Context, req repository.NewOrder) (*model.Order, error) {
		// Items sum to 2500 but the caller said 999; the claim wins.
		if req.Total != 999 {
			t.Fatalf("total rewritten to %d", req.Total)
		}
		return &model.Order{ID: "ord_1", Total: req.Total, Status: model.OrderStatusPending}, nil
	}})

	req := validNewOrder()
	req.Total = 999
	order, err := uc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Total != 999 {
		t.Fatalf("unexpected total %d", order.Total)
	}
}

func TestOrderUseCaseUpdateStatusAllowLists(t *testing.T) {
	cases := []struct {
		name    string
		target  model.OrderStatus
		admin   bool
		allowed bool
	}{
		{"public completed", model.OrderStatusCompleted, false, true},
		{"public cancelled", model.OrderStatusCancelled, false, true},
		{"public shipped rejected", model.OrderStatusShipped, false, false},
		{"public delivered rejected", model.OrderStatusDelivered, false, false},
		{"admin shipped", model.OrderStatusShipped, true, true},
		{"admin delivered", model.OrderStatusDelivered, true, true},
		{"admin completed rejected", model.OrderStatusCompleted, true, false},
		{"admin failed rejected", model.OrderStatusFailed, true, false},
		{"unknown status rejected", model.OrderStatus("archived"), true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := NewOrderUseCase(stubOrderRepository{setStatusFn: func(_ context.Context, id string, update repository.StatusUpdate) (*model.Order, error) {
				if !tc.allowed {
					t.Fatal("repository should not be reached for disallowed status")
				}
				return &model.Order{ID: id, Status: update.Status}, nil
			}})

			_, err := uc.UpdateStatus(context.Background(), "ord_1", repository.StatusUpdate{Status: tc.target}, tc.admin)
			if tc.allowed && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.allowed && !errors.Is(err, domainErrors.ErrInvalidStatus) {
				t.Fatalf("expected invalid status error, got %v", err)
			}
		})
	}
}

func TestOrderUseCaseUpdateStatusIgnoresCurrentState(t *testing.T) {
	// delivered back to pending is accepted; the ledger does not sequence.
	uc := NewOrderUseCase(stubOrderRepository{setStatusFn: func(_ context.Context, id string, update repository.StatusUpdate) (*model.Order, error) {
		return &model.Order{ID: id, Status: update.Status}, nil
	}})

	order, err := uc.UpdateStatus(context.Background(), "ord_1", repository.StatusUpdate{Status: model.OrderStatusPending}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != model.OrderStatusPending {
		t.Fatalf("unexpected status %s", order.Status)
	}
}

func TestOrderUseCaseRecordPaymentOutcome(t *testing.T) {
	cases := []struct {
		name       string
		event      model.WebhookEvent
		wantStatus model.OrderStatus
		wantTx     string
	}{
		{"success", model.WebhookEvent{OrderID: "ord_1", Succeeded: true, TransactionID: "tx_42"}, model.OrderStatusCompleted, "tx_42"},
		{"failure", model.WebhookEvent{OrderID: "ord_1", Succeeded: false, TransactionID: "tx_42"}, model.OrderStatusFailed, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := NewOrderUseCase(stubOrderRepository{setStatusFn: func(_ context.Context, id string, update repository.StatusUpdate) (*model.Order, error) {
				if update.Status != tc.wantStatus {
					t.Fatalf("unexpected status %s", update.Status)
				}
				if update.TransactionID != tc.wantTx {
					t.Fatalf("unexpected transaction id %q", update.TransactionID)
				}
				return &model.Order{ID: id, Status: update.Status, TransactionID: update.TransactionID}, nil
			}})

			if _, err := uc.RecordPaymentOutcome(context.Background(), tc.event); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
