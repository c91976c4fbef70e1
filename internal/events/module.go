package events

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/olepukh/storefront/internal/config"
)

func newPublisher(cfg *config.Config, logger *slog.Logger) (Publisher, error) {
	if cfg.AMQPURL == "" {
		return NewNopPublisher(logger), nil
	}
	pub, err := NewAMQPPublisher(cfg.AMQPURL, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("event broker connected")
	return pub, nil
}

// Module wires the event publisher.
var Module = fx.Module("events",
	fx.Provide(newPublisher),
)
