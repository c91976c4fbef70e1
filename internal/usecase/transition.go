package usecase

import (
	"github.com/olepukh/storefront/internal/domain/model"
	"github.com/olepukh/storefront/internal/events"
	"github.com/olepukh/storefront/internal/sideeffect"
)

// PlanCreation returns the side effects of a freshly placed order: the
// confirmation notification, the confirmation email and the broker event.
func PlanCreation(order model.Order) []sideeffect.Task {
	return []sideeffect.Task{{
		Event:      model.NotificationOrderConfirmed,
		Order:      order,
		InApp:      true,
		Email:      true,
		RoutingKey: events.RoutingKeyOrderCreated,
	}}
}

// PlanTransition maps a status change to its side effects. Every change is
// published to the broker; shipped and delivered additionally notify the
// customer in-app and by email, cancelled notifies in-app only. The plan
// depends solely on the target status, so replaying the same change replays
// the same effects.
func PlanTransition(order model.Order, target model.OrderStatus) []sideeffect.Task {
	task := sideeffect.Task{Order: order, RoutingKey: events.RoutingKeyOrderStatusChanged}
	switch target {
	case model.OrderStatusShipped:
		task.Event = model.NotificationOrderShipped
		task.InApp = true
		task.Email = true
	case model.OrderStatusDelivered:
		task.Event = model.NotificationOrderDelivered
		task.InApp = true
		task.Email = true
	case model.OrderStatusCancelled:
		task.Event = model.NotificationOrderCancelled
		task.InApp = true
	}
	return []sideeffect.Task{task}
}
