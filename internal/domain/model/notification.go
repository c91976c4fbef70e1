package model

import "time"

// NotificationType enumerates business events surfaced to customers.
type NotificationType string

const (
	NotificationOrderConfirmed NotificationType = "order_confirmed"
	NotificationOrderShipped   NotificationType = "order_shipped"
	NotificationOrderDelivered NotificationType = "order_delivered"
	NotificationOrderCancelled NotificationType = "order_cancelled"
	NotificationPaymentFailed  NotificationType = "payment_failed"
	NotificationPriceDrop      NotificationType = "price_drop"
	NotificationBackInStock    NotificationType = "back_in_stock"
	NotificationGroupInvite    NotificationType = "group_invite"
	NotificationPromo          NotificationType = "promo"
)

// Notification is an in-app message owned by a single user.
type Notification struct {
	ID        string
	UserID    int64
	Type      NotificationType
	Title     string
	Message   string
	Data      map[string]string
	Read      bool
	CreatedAt time.Time
}
