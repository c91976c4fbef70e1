package dto

import "time"

// NotificationResponse is the wire representation of an in-app notification.
type NotificationResponse struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Data      map[string]string `json:"data,omitempty"`
	Read      bool              `json:"read"`
	CreatedAt time.Time         `json:"createdAt"`
}

// NotificationListResponse wraps a user's notification listing.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

// UnreadCountResponse reports the unread notification count.
type UnreadCountResponse struct {
	Unread int `json:"unread"`
}

// MarkAllReadResponse reports how many notifications were flipped to read.
type MarkAllReadResponse struct {
	Updated int `json:"updated"`
}
