package handlers

import (
	"context"

	"github.com/olepukh/storefront/internal/domain/model"
	"github.com/olepukh/storefront/internal/domain/repository"
)

// AccountFacade describes authentication capabilities required by handlers.
type AccountFacade interface {
	Register(ctx context.Context, email, name, password string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (int64, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, req repository.NewOrder) (*model.Order, *model.PaymentSession, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	ListOrders(ctx context.Context, customerEmail string) ([]model.Order, error)
	SetOrderStatus(ctx context.Context, id string, status model.OrderStatus, transactionID string) (*model.Order, error)
	AdminSetOrderStatus(ctx context.Context, id string, status model.OrderStatus, transactionID, trackingNumber string) (*model.Order, error)
}

// WebhookFacade resolves gateway callbacks.
type WebhookFacade interface {
	ApplyWebhook(ctx context.Context, payload map[string]string, signature string) (*model.Order, error)
}

// NotificationFacade provides in-app notification operations.
type NotificationFacade interface {
	Notifications(ctx context.Context, userID int64, limit int) ([]model.Notification, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	MarkNotificationRead(ctx context.Context, id string) (*model.Notification, error)
	MarkAllNotificationsRead(ctx context.Context, userID int64) (int, error)
	DeleteNotification(ctx context.Context, id string) (bool, error)
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AccountFacade
	OrderFacade
	WebhookFacade
	NotificationFacade
}
