package usecase

import "github.com/olepukh/storefront/internal/domain/model"

// publicStatuses are the targets a customer-facing status update may request.
var publicStatuses = map[model.OrderStatus]bool{
	model.OrderStatusPending:    true,
	model.OrderStatusProcessing: true,
	model.OrderStatusCompleted:  true,
	model.OrderStatusFailed:     true,
	model.OrderStatusCancelled:  true,
}

// adminStatuses are the targets the fulfilment console may request.
var adminStatuses = map[model.OrderStatus]bool{
	model.OrderStatusPending:    true,
	model.OrderStatusProcessing: true,
	model.OrderStatusShipped:    true,
	model.OrderStatusDelivered:  true,
	model.OrderStatusCancelled:  true,
}

// StatusAllowed reports whether the target status is acceptable for the
// given caller class. The ledger itself never rejects a status; this is the
// only gate.
func StatusAllowed(target model.OrderStatus, admin bool) bool {
	if admin {
		return adminStatuses[target]
	}
	return publicStatuses[target]
}
