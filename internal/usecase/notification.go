package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainErrors "github.com/olepukh/storefront/internal/domain/errors"
	"github.com/olepukh/storefront/internal/domain/model"
	"github.com/olepukh/storefront/internal/domain/repository"
)

// NotificationUseCase manages in-app notifications.
type NotificationUseCase struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	logger        *slog.Logger
}

// NewNotificationUseCase constructs NotificationUseCase.
func NewNotificationUseCase(notifications repository.NotificationRepository, users repository.UserRepository, logger *slog.Logger) *NotificationUseCase {
	return &NotificationUseCase{notifications: notifications, users: users, logger: logger}
}

// Notify records a notification for the user.
func (u *NotificationUseCase) Notify(ctx context.Context, userID int64, typ model.NotificationType, title, message string, data map[string]string) (*model.Notification, error) {
	return u.notifications.Create(ctx, &model.Notification{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
		Data:    data,
	})
}

// NotifyOrderEvent records the in-app notification for an order event,
// resolving the target account from the order's customer email. Orders placed
// by guests without an account are skipped silently.
func (u *NotificationUseCase) NotifyOrderEvent(ctx context.Context, event model.NotificationType, order model.Order) error {
	usr, err := u.users.GetByEmail(ctx, order.CustomerEmail)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			u.logger.Debug("no account for order event, skipping notification",
				slog.String("order", order.ID),
				slog.String("event", string(event)),
			)
			return nil
		}
		return err
	}
	title, message := ComposeNotification(event, order)
	_, err = u.Notify(ctx, usr.ID, event, title, message, map[string]string{
		"order_id":     order.ID,
		"order_number": order.Number,
	})
	return err
}

// ListByUser returns the most recent notifications for the user.
func (u *NotificationUseCase) ListByUser(ctx context.Context, userID int64, limit int) ([]model.Notification, error) {
	return u.notifications.ListByUser(ctx, userID, limit)
}

// UnreadCount returns the number of unread notifications for the user.
func (u *NotificationUseCase) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return u.notifications.UnreadCount(ctx, userID)
}

// MarkRead flips a single notification to read.
func (u *NotificationUseCase) MarkRead(ctx context.Context, id string) (*model.Notification, error) {
	return u.notifications.MarkRead(ctx, id)
}

// MarkAllRead flips every unread notification for the user and returns how
// many changed.
func (u *NotificationUseCase) MarkAllRead(ctx context.Context, userID int64) (int, error) {
	return u.notifications.MarkAllRead(ctx, userID)
}

// Delete removes a notification. The boolean reports whether it existed.
func (u *NotificationUseCase) Delete(ctx context.Context, id string) (bool, error) {
	return u.notifications.Delete(ctx, id)
}

// ComposeNotification renders the in-app title and message for an order
// event. Events without a dedicated template fall back to a generic order
// update.
func ComposeNotification(event model.NotificationType, order model.Order) (string, string) {
	switch event {
	case model.NotificationOrderConfirmed:
		return "Order confirmed",
			fmt.Sprintf("Your order %s has been received and is awaiting payment.", order.Number)
	case model.NotificationOrderShipped:
		if order.TrackingNumber != "" {
			return "Order shipped",
				fmt.Sprintf("Order %s is on its way. Tracking number: %s.", order.Number, order.TrackingNumber)
		}
		return "Order shipped", fmt.Sprintf("Order %s is on its way.", order.Number)
	case model.NotificationOrderDelivered:
		return "Order delivered", fmt.Sprintf("Order %s has been delivered. Enjoy!", order.Number)
	case model.NotificationOrderCancelled:
		return "Order cancelled", fmt.Sprintf("Order %s has been cancelled.", order.Number)
	case model.NotificationPaymentFailed:
		return "Payment failed", fmt.Sprintf("Payment for order %s did not go through.", order.Number)
	default:
		return "Order update", fmt.Sprintf("Order %s has been updated.", order.Number)
	}
}
