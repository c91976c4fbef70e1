package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/olepukh/storefront/internal/domain/model"
)

// Email is a rendered outbound message.
type Email struct {
	To      string `json:"to"`
	ToName  string `json:"to_name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Sender delivers rendered emails. Delivery is best-effort; callers log and
// swallow failures.
type Sender interface {
	Send(ctx context.Context, email Email) error
}

// Mailer renders order emails and hands them to the configured sender.
type Mailer struct {
	sender Sender
}

// New constructs a Mailer over the given sender.
func New(sender Sender) *Mailer {
	return &Mailer{sender: sender}
}

// SendOrderEmail renders and sends the email for an order event. Events
// without an email template are a no-op.
func (m *Mailer) SendOrderEmail(ctx context.Context, event model.NotificationType, order model.Order) error {
	subject, body, ok := Compose(event, order)
	if !ok {
		return nil
	}
	return m.sender.Send(ctx, Email{
		To:      order.CustomerEmail,
		ToName:  order.CustomerName,
		Subject: subject,
		Body:    body,
	})
}

// Compose renders the subject and body for an order event. The boolean is
// false for events that do not produce email.
func Compose(event model.NotificationType, order model.Order) (string, string, bool) {
	amount := fmt.Sprintf("%.2f", float64(order.Total)/100)
	switch event {
	case model.NotificationOrderConfirmed:
		return fmt.Sprintf("Order %s confirmed", order.Number),
			fmt.Sprintf("Hi %s,\n\nWe received your order %s for %s. We'll let you know as soon as it ships.",
				order.CustomerName, order.Number, amount),
			true
	case model.NotificationOrderShipped:
		body := fmt.Sprintf("Hi %s,\n\nYour order %s is on its way.", order.CustomerName, order.Number)
		if order.TrackingNumber != "" {
			body += fmt.Sprintf("\nTracking number: %s", order.TrackingNumber)
		}
		return fmt.Sprintf("Order %s shipped", order.Number), body, true
	case model.NotificationOrderDelivered:
		return fmt.Sprintf("Order %s delivered", order.Number),
			fmt.Sprintf("Hi %s,\n\nYour order %s has been delivered. Enjoy!", order.CustomerName, order.Number),
			true
	default:
		return "", "", false
	}
}

// LogSender writes emails to the log instead of delivering them. It is the
// fallback when no mail relay is configured.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender constructs the logging sender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, email Email) error {
	s.logger.Info("email (not delivered, no relay configured)",
		slog.String("to", email.To),
		slog.String("subject", email.Subject),
	)
	return nil
}
