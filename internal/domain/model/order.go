package model

import "time"

// OrderStatus describes the order lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusFailed     OrderStatus = "failed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderItem is a purchased line item. Price is per unit in minor currency units.
type OrderItem struct {
	ProductID string
	Name      string
	Price     int64
	Quantity  int
}

// Order describes a customer purchase tracked by the ledger. Total is in
// minor currency units and is stored exactly as submitted by the client.
type Order struct {
	ID               string
	Number           string
	Items            []OrderItem
	Total            int64
	Status           OrderStatus
	CustomerName     string
	CustomerEmail    string
	PaymentSessionID string
	TransactionID    string
	TrackingNumber   string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
