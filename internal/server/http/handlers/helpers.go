package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/olepukh/storefront/internal/domain/model"
	"github.com/olepukh/storefront/internal/server/http/dto"
	"github.com/olepukh/storefront/internal/server/http/middleware"
)

// CurrentUserID extracts the authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemPayload, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemPayload{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return dto.OrderResponse{
		ID:             order.ID,
		OrderNumber:    order.Number,
		Items:          items,
		Total:          order.Total,
		Status:         string(order.Status),
		CustomerName:   order.CustomerName,
		CustomerEmail:  order.CustomerEmail,
		TransactionID:  order.TransactionID,
		TrackingNumber: order.TrackingNumber,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
}

func toNotificationResponse(n model.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
