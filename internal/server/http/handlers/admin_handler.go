package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/olepukh/storefront/internal/domain/errors"
	"github.com/olepukh/storefront/internal/domain/model"
	"github.com/olepukh/storefront/internal/server/http/dto"
)

// AdminHandler exposes the fulfilment-console order operations.
type AdminHandler struct {
	facade OrderFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade OrderFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// SetStatus handles PATCH /admin/orders/:id/status.
func (h *AdminHandler) SetStatus(c *gin.Context) {
	var req dto.AdminStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	order, err := h.facade.AdminSetOrderStatus(
		c.Request.Context(),
		c.Param("id"),
		model.OrderStatus(req.Status),
		req.TransactionID,
		req.TrackingNumber,
	)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status: " + req.Status})
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, dto.SingleOrderResponse{Order: toOrderResponse(*order)})
}
