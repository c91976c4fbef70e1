package repository

import (
	"context"

	"github.com/olepukh/storefront/internal/domain/model"
)

// NotificationRepository stores per-user in-app notifications ordered most
// recent first.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]model.Notification, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	MarkRead(ctx context.Context, id string) (*model.Notification, error)
	// MarkAllRead returns the number of notifications flipped from unread to read.
	MarkAllRead(ctx context.Context, userID int64) (int, error)
	Delete(ctx context.Context, id string) (bool, error)
}
