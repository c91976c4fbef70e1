package test

import (
	"context"
	"sync"
	"time"

	"github.com/olepukh/storefront/internal/domain/model"
	"github.com/olepukh/storefront/internal/domain/repository"
	"github.com/olepukh/storefront/internal/gateway"
	"github.com/olepukh/storefront/internal/mailer"
)

// AccountFacadeStub simulates authentication facade interactions.
type AccountFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (int64, error)
	GetUserFn      func(context.Context, int64) (*model.User, error)
}

// Register returns a token for successful registration scenarios.
func (s AccountFacadeStub) Register(ctx context.Context, email, name, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, name, password)
	}
	return "token", nil
}

// Authenticate returns a token for successful login scenarios.
func (s AccountFacadeStub) Authenticate(ctx context.Context, email, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return "token", nil
}

// ParseToken returns the stored identifier for the authenticated user.
func (s AccountFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// GetUser returns the configured account.
func (s AccountFacadeStub) GetUser(ctx context.Context, id int64) (*model.User, error) {
	if s.GetUserFn != nil {
		return s.GetUserFn(ctx, id)
	}
	return &model.User{ID: id, Email: "user@example.com"}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn         func(context.Context, repository.NewOrder) (*model.Order, *model.PaymentSession, error)
	GetFn            func(context.Context, string) (*model.Order, error)
	ListFn           func(context.Context, string) ([]model.Order, error)
	SetStatusFn      func(context.Context, string, model.OrderStatus, string) (*model.Order, error)
	AdminSetStatusFn func(context.Context, string, model.OrderStatus, string, string) (*model.Order, error)
}

// CreateOrder delegates to the override or returns a default order/session.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, req repository.NewOrder) (*model.Order, *model.PaymentSession, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req)
	}
	order := &model.Order{
		ID:            "ord_1",
		Number:        "ORD-1",
		Items:         req.Items,
		Total:         req.Total,
		Status:        model.OrderStatusProcessing,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CreatedAt:     time.Unix(0, 0),
	}
	session := &model.PaymentSession{ID: "mock_sess_1", URL: "mock://payment", Mock: true}
	return order, session, nil
}

// GetOrder returns the configured order.
func (s OrderFacadeStub) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.Order{ID: id, Status: model.OrderStatusPending}, nil
}

// ListOrders returns the configured listing.
func (s OrderFacadeStub) ListOrders(ctx context.Context, customerEmail string) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, customerEmail)
	}
	return []model.Order{{ID: "ord_1", Number: "ORD-1"}}, nil
}

// SetOrderStatus delegates to the override or echoes the change.
func (s OrderFacadeStub) SetOrderStatus(ctx context.Context, id string, status model.OrderStatus, transactionID string) (*model.Order, error) {
	if s.SetStatusFn != nil {
		return s.SetStatusFn(ctx, id, status, transactionID)
	}
	return &model.Order{ID: id, Status: status, TransactionID: transactionID}, nil
}

// AdminSetOrderStatus delegates to the override or echoes the change.
func (s OrderFacadeStub) AdminSetOrderStatus(ctx context.Context, id string, status model.OrderStatus, transactionID, trackingNumber string) (*model.Order, error) {
	if s.AdminSetStatusFn != nil {
		return s.AdminSetStatusFn(ctx, id, status, transactionID, trackingNumber)
	}
	return &model.Order{ID: id, Status: status, TransactionID: transactionID, TrackingNumber: trackingNumber}, nil
}

// WebhookFacadeStub controls webhook resolution in handler tests.
type WebhookFacadeStub struct {
	ApplyFn func(context.Context, map[string]string, string) (*model.Order, error)
}

// ApplyWebhook delegates to the override or completes the order.
func (s WebhookFacadeStub) ApplyWebhook(ctx context.Context, payload map[string]string, signature string) (*model.Order, error) {
	if s.ApplyFn != nil {
		return s.ApplyFn(ctx, payload, signature)
	}
	return &model.Order{ID: payload["order_id"], Status: model.OrderStatusCompleted}, nil
}

// NotificationFacadeStub simulates notification operations.
type NotificationFacadeStub struct {
	ListFn        func(context.Context, int64, int) ([]model.Notification, error)
	UnreadFn      func(context.Context, int64) (int, error)
	MarkReadFn    func(context.Context, string) (*model.Notification, error)
	MarkAllReadFn func(context.Context, int64) (int, error)
	DeleteFn      func(context.Context, string) (bool, error)
}

// Notifications returns the configured listing.
func (s NotificationFacadeStub) Notifications(ctx context.Context, userID int64, limit int) ([]model.Notification, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID, limit)
	}
	return []model.Notification{{ID: "ntf_1", UserID: userID, Type: model.NotificationOrderConfirmed}}, nil
}

// UnreadCount returns the configured count.
func (s NotificationFacadeStub) UnreadCount(ctx context.Context, userID int64) (int, error) {
	if s.UnreadFn != nil {
		return s.UnreadFn(ctx, userID)
	}
	return 1, nil
}

// MarkNotificationRead flips the notification via override or default.
func (s NotificationFacadeStub) MarkNotificationRead(ctx context.Context, id string) (*model.Notification, error) {
	if s.MarkReadFn != nil {
		return s.MarkReadFn(ctx, id)
	}
	return &model.Notification{ID: id, Read: true}, nil
}

// MarkAllNotificationsRead reports the configured flip count.
func (s NotificationFacadeStub) MarkAllNotificationsRead(ctx context.Context, userID int64) (int, error) {
	if s.MarkAllReadFn != nil {
		return s.MarkAllReadFn(ctx, userID)
	}
	return 0, nil
}

// DeleteNotification reports whether the notification existed.
func (s NotificationFacadeStub) DeleteNotification(ctx context.Context, id string) (bool, error) {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return true, nil
}

// StorefrontFacadeStub aggregates facade dependencies for HTTP layer tests.
type StorefrontFacadeStub struct {
	AccountFacadeStub
	OrderFacadeStub
	WebhookFacadeStub
	NotificationFacadeStub
}

// GatewayStub records session creation requests.
type GatewayStub struct {
	CreateFn func(context.Context, gateway.SessionRequest) (*model.PaymentSession, error)
	Requests []gateway.SessionRequest
}

// CreateSession records the request and returns a mock-shaped session.
func (s *GatewayStub) CreateSession(ctx context.Context, req gateway.SessionRequest) (*model.PaymentSession, error) {
	s.Requests = append(s.Requests, req)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req)
	}
	return &model.PaymentSession{ID: "mock_sess_1", URL: "mock://payment", Mock: true}, nil
}

// PublisherStub records published order events.
type PublisherStub struct {
	PublishFn func(context.Context, string, model.Order) error

	mu     sync.Mutex
	Events []PublishedEvent
}

// PublishedEvent records one broker publication.
type PublishedEvent struct {
	RoutingKey string
	Order      model.Order
}

// PublishOrderEvent records the event or delegates to the override.
func (s *PublisherStub) PublishOrderEvent(ctx context.Context, routingKey string, order model.Order) error {
	if s.PublishFn != nil {
		return s.PublishFn(ctx, routingKey, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, PublishedEvent{RoutingKey: routingKey, Order: order})
	return nil
}

// Close satisfies the publisher contract.
func (s *PublisherStub) Close() error { return nil }

// Published returns a snapshot of recorded events.
func (s *PublisherStub) Published() []PublishedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PublishedEvent, len(s.Events))
	copy(out, s.Events)
	return out
}

// SenderStub captures rendered emails.
type SenderStub struct {
	SendFn func(context.Context, mailer.Email) error

	mu     sync.Mutex
	Emails []mailer.Email
}

// Send records the email or delegates to the override.
func (s *SenderStub) Send(ctx context.Context, email mailer.Email) error {
	if s.SendFn != nil {
		return s.SendFn(ctx, email)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Emails = append(s.Emails, email)
	return nil
}

// Sent returns a snapshot of captured emails.
func (s *SenderStub) Sent() []mailer.Email {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]mailer.Email, len(s.Emails))
	copy(out, s.Emails)
	return out
}
