package gateway

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/olepukh/storefront/internal/config"
	"github.com/olepukh/storefront/internal/domain/model"
)

const iframeBaseURL = "https://checkout.gateway.example/iframe"

// RealGateway builds sessions for the production payment counterparty.
// It performs no network I/O at session creation time.
type RealGateway struct {
	creds config.GatewayCredentials
}

// NewRealGateway constructs the adapter for the configured merchant account.
func NewRealGateway(creds config.GatewayCredentials) *RealGateway {
	return &RealGateway{creds: creds}
}

// CreateSession converts the amount to the gateway's minor unit (round
// half-up) and assembles the iframe payload for the supplier/terminal pair.
func (g *RealGateway) CreateSession(_ context.Context, req SessionRequest) (*model.PaymentSession, error) {
	id := sessionID("sess")
	minor := int64(math.Round(req.Amount * 100))

	payload := map[string]string{
		"supplier":       g.creds.SupplierID,
		"terminal":       g.creds.TerminalID,
		"amount":         fmt.Sprintf("%d", minor),
		"currency":       g.creds.Currency,
		"order_id":       req.OrderID,
		"description":    req.Description,
		"customer_name":  req.CustomerName,
		"customer_email": req.CustomerEmail,
		"good_url":       req.SuccessURL,
		"error_url":      req.CancelURL,
		"session":        id,
	}

	return &model.PaymentSession{
		ID:      id,
		URL:     fmt.Sprintf("%s/%s/%s?session=%s", iframeBaseURL, g.creds.SupplierID, g.creds.TerminalID, id),
		Payload: payload,
	}, nil
}

// CredentialsConfigured reports whether the credential set is complete and
// free of placeholder values. Configuration completeness alone decides the
// gateway variant; there is no separate test-mode flag.
func CredentialsConfigured(creds config.GatewayCredentials) bool {
	for _, v := range []string{creds.SupplierID, creds.TerminalID, creds.Secret} {
		if isPlaceholder(v) {
			return false
		}
	}
	return true
}

func isPlaceholder(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return true
	}
	return strings.Contains(v, "changeme") || strings.Contains(v, "placeholder") || strings.HasPrefix(v, "your-")
}
