package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/olepukh/storefront/internal/config"
	"github.com/olepukh/storefront/internal/domain/model"
	"github.com/olepukh/storefront/internal/domain/repository"
	"github.com/olepukh/storefront/internal/gateway"
	"github.com/olepukh/storefront/internal/sideeffect"
	"github.com/olepukh/storefront/internal/usecase"
)

// ErrSignatureInvalid reports an inbound webhook that failed authentication.
// Callers acknowledge the gateway anyway; the rejection stays internal.
var ErrSignatureInvalid = errors.New("webhook signature mismatch")

// Webhook payload fields produced by the payment gateway.
const (
	webhookFieldOrderID       = "order_id"
	webhookFieldStatus        = "status"
	webhookFieldTransactionID = "transaction_id"

	webhookStatusSuccess = "success"
)

// StorefrontFacade composes the use cases, the payment gateway and the
// side-effect queue behind a single surface for the HTTP layer.
type StorefrontFacade struct {
	orders        *usecase.OrderUseCase
	notifications *usecase.NotificationUseCase
	accounts      *usecase.AccountUseCase
	gateway       gateway.Gateway
	dispatcher    *sideeffect.Dispatcher
	cfg           *config.Config
}

// NewStorefrontFacade constructs StorefrontFacade.
func NewStorefrontFacade(
	orders *usecase.OrderUseCase,
	notifications *usecase.NotificationUseCase,
	accounts *usecase.AccountUseCase,
	gw gateway.Gateway,
	dispatcher *sideeffect.Dispatcher,
	cfg *config.Config,
) *StorefrontFacade {
	return &StorefrontFacade{
		orders:        orders,
		notifications: notifications,
		accounts:      accounts,
		gateway:       gw,
		dispatcher:    dispatcher,
		cfg:           cfg,
	}
}

// CreateOrder records the order, opens a payment session, attaches it and
// enqueues the confirmation side effects. Side effects never block or fail
// the response.
func (f *StorefrontFacade) CreateOrder(ctx context.Context, req repository.NewOrder) (*model.Order, *model.PaymentSession, error) {
	order, err := f.orders.Create(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	session, err := f.gateway.CreateSession(ctx, gateway.SessionRequest{
		OrderID:       order.ID,
		Amount:        float64(order.Total) / 100,
		Description:   fmt.Sprintf("Order %s", order.Number),
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		SuccessURL:    fmt.Sprintf("%s/orders/%s?payment=success", f.cfg.PublicBaseURL, order.ID),
		CancelURL:     fmt.Sprintf("%s/orders/%s?payment=cancelled", f.cfg.PublicBaseURL, order.ID),
	})
	if err != nil {
		return nil, nil, err
	}

	order, err = f.orders.AttachPaymentSession(ctx, order.ID, session.ID)
	if err != nil {
		return nil, nil, err
	}

	f.enqueue(usecase.PlanCreation(*order))
	return order, session, nil
}

// GetOrder fetches an order by id.
func (f *StorefrontFacade) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	return f.orders.Get(ctx, id)
}

// ListOrders returns orders filtered by customer email, newest first.
func (f *StorefrontFacade) ListOrders(ctx context.Context, customerEmail string) ([]model.Order, error) {
	return f.orders.List(ctx, customerEmail)
}

// SetOrderStatus applies a customer-path status change and enqueues its side
// effects.
func (f *StorefrontFacade) SetOrderStatus(ctx context.Context, id string, status model.OrderStatus, transactionID string) (*model.Order, error) {
	order, err := f.orders.UpdateStatus(ctx, id, repository.StatusUpdate{
		Status:        status,
		TransactionID: transactionID,
	}, false)
	if err != nil {
		return nil, err
	}
	f.enqueue(usecase.PlanTransition(*order, status))
	return order, nil
}

// AdminSetOrderStatus applies a fulfilment-console status change, optionally
// recording a tracking number, and enqueues its side effects.
func (f *StorefrontFacade) AdminSetOrderStatus(ctx context.Context, id string, status model.OrderStatus, transactionID, trackingNumber string) (*model.Order, error) {
	order, err := f.orders.UpdateStatus(ctx, id, repository.StatusUpdate{
		Status:         status,
		TransactionID:  transactionID,
		TrackingNumber: trackingNumber,
	}, true)
	if err != nil {
		return nil, err
	}
	f.enqueue(usecase.PlanTransition(*order, status))
	return order, nil
}

// ApplyWebhook authenticates a gateway callback and resolves it into the
// order status. Rejections are internal; the HTTP layer acknowledges the
// gateway either way.
func (f *StorefrontFacade) ApplyWebhook(ctx context.Context, payload map[string]string, signature string) (*model.Order, error) {
	if !gateway.VerifyWebhookSignature(payload, signature, f.cfg.Gateway.Secret) {
		return nil, ErrSignatureInvalid
	}

	event := model.WebhookEvent{
		OrderID:       payload[webhookFieldOrderID],
		Succeeded:     payload[webhookFieldStatus] == webhookStatusSuccess,
		TransactionID: payload[webhookFieldTransactionID],
	}
	if event.OrderID == "" {
		return nil, ErrSignatureInvalid
	}

	order, err := f.orders.RecordPaymentOutcome(ctx, event)
	if err != nil {
		return nil, err
	}
	f.enqueue(usecase.PlanTransition(*order, order.Status))
	return order, nil
}

// Register creates an account and returns an auth token.
func (f *StorefrontFacade) Register(ctx context.Context, email, name, password string) (string, error) {
	_, token, err := f.accounts.Register(ctx, email, name, password)
	return token, err
}

// Authenticate checks credentials and returns an auth token.
func (f *StorefrontFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.accounts.Authenticate(ctx, email, password)
	return token, err
}

// ParseToken extracts the user id from an auth token.
func (f *StorefrontFacade) ParseToken(token string) (int64, error) {
	return f.accounts.ParseToken(token)
}

// GetUser fetches an account by id.
func (f *StorefrontFacade) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return f.accounts.GetByID(ctx, id)
}

// Notifications returns the user's most recent notifications.
func (f *StorefrontFacade) Notifications(ctx context.Context, userID int64, limit int) ([]model.Notification, error) {
	return f.notifications.ListByUser(ctx, userID, limit)
}

// UnreadCount returns the user's unread notification count.
func (f *StorefrontFacade) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return f.notifications.UnreadCount(ctx, userID)
}

// MarkNotificationRead flips a notification to read.
func (f *StorefrontFacade) MarkNotificationRead(ctx context.Context, id string) (*model.Notification, error) {
	return f.notifications.MarkRead(ctx, id)
}

// MarkAllNotificationsRead flips every unread notification for the user.
func (f *StorefrontFacade) MarkAllNotificationsRead(ctx context.Context, userID int64) (int, error) {
	return f.notifications.MarkAllRead(ctx, userID)
}

// DeleteNotification removes a notification.
func (f *StorefrontFacade) DeleteNotification(ctx context.Context, id string) (bool, error) {
	return f.notifications.Delete(ctx, id)
}

func (f *StorefrontFacade) enqueue(tasks []sideeffect.Task) {
	for _, task := range tasks {
		f.dispatcher.Enqueue(task)
	}
}
