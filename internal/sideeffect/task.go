package sideeffect

import "github.com/olepukh/storefront/internal/domain/model"

// Task describes one outbound side effect triggered by an order event. The
// request path only enqueues tasks; delivery, retries and failures belong to
// the dispatcher.
type Task struct {
	// Event names the business event; empty when the task only publishes
	// a broker message.
	Event model.NotificationType
	Order model.Order
	// InApp creates an in-app notification for the account resolved from
	// the order's customer email.
	InApp bool
	// Email sends the customer-facing email for the event.
	Email bool
	// RoutingKey publishes the order to the event broker when non-empty.
	RoutingKey string
}
