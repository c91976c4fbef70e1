package gateway

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/olepukh/storefront/internal/domain/model"
)

// SessionRequest carries the fields needed to open a payment session.
// Amount is in major currency units; conversion to the gateway's minor unit
// happens inside the adapter.
type SessionRequest struct {
	OrderID       string
	Amount        float64
	Description   string
	CustomerName  string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

// Gateway builds a payment session descriptor for an order. Session creation
// is purely local payload construction; confirmation arrives asynchronously
// via webhook.
type Gateway interface {
	CreateSession(ctx context.Context, req SessionRequest) (*model.PaymentSession, error)
}

func sessionID(prefix string) string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), hex.EncodeToString(buf))
}
