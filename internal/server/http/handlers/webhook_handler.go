package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SignatureHeader carries the gateway's HMAC signature over the payload.
const SignatureHeader = "X-Gateway-Signature"

// WebhookHandler accepts asynchronous payment-gateway callbacks.
type WebhookHandler struct {
	facade WebhookFacade
	logger *slog.Logger
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(facade WebhookFacade, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{facade: facade, logger: logger}
}

// Receive handles POST /webhooks/payment. The gateway is acknowledged with
// 200 regardless of the internal outcome to avoid retry storms; rejected
// callbacks are logged, not surfaced.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var payload map[string]string
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("webhook with unreadable payload", slog.String("error", err.Error()))
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	order, err := h.facade.ApplyWebhook(c.Request.Context(), payload, c.GetHeader(SignatureHeader))
	if err != nil {
		h.logger.Warn("webhook rejected",
			slog.String("order", payload["order_id"]),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	h.logger.Info("webhook applied",
		slog.String("order", order.ID),
		slog.String("status", string(order.Status)),
	)
	c.JSON(http.StatusOK, gin.H{"received": true})
}
