package dto

import "time"

// OrderItemPayload is a single line item on the wire. Price is per unit in
// minor currency units.
type OrderItemPayload struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest describes the order placement payload. Total is in
// minor currency units and is stored as submitted.
type CreateOrderRequest struct {
	Items         []OrderItemPayload `json:"items"`
	Total         int64              `json:"total"`
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail"`
}

// StatusUpdateRequest describes a customer-path status change.
type StatusUpdateRequest struct {
	Status        string `json:"status"`
	TransactionID string `json:"transactionId,omitempty"`
}

// AdminStatusUpdateRequest describes a fulfilment-console status change.
type AdminStatusUpdateRequest struct {
	Status         string `json:"status"`
	TransactionID  string `json:"transactionId,omitempty"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
}

// OrderResponse is the wire representation of an order.
type OrderResponse struct {
	ID             string             `json:"id"`
	OrderNumber    string             `json:"orderNumber"`
	Items          []OrderItemPayload `json:"items"`
	Total          int64              `json:"total"`
	Status         string             `json:"status"`
	CustomerName   string             `json:"customerName"`
	CustomerEmail  string             `json:"customerEmail"`
	TransactionID  string             `json:"transactionId,omitempty"`
	TrackingNumber string             `json:"trackingNumber,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

// PaymentSessionResponse describes the payment session opened for an order.
type PaymentSessionResponse struct {
	SessionID string            `json:"sessionId"`
	URL       string            `json:"url"`
	Payload   map[string]string `json:"payload"`
	IsMock    bool              `json:"isMock"`
}

// CreateOrderResponse couples the stored order with its payment session.
type CreateOrderResponse struct {
	Order   OrderResponse          `json:"order"`
	Payment PaymentSessionResponse `json:"payment"`
}

// OrderListResponse wraps a filtered order listing.
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}

// SingleOrderResponse wraps one order.
type SingleOrderResponse struct {
	Order OrderResponse `json:"order"`
}
