package model

// PaymentSession describes how the client completes payment for an order.
// It is built locally at order creation time and never persisted beyond the
// session id echoed into the order.
type PaymentSession struct {
	ID      string
	URL     string
	Payload map[string]string
	Mock    bool
}

// WebhookEvent is a verified payment gateway callback. It exists only for
// the duration of processing a single callback.
type WebhookEvent struct {
	OrderID       string
	Succeeded     bool
	TransactionID string
}
