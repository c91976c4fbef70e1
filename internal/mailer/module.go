package mailer

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/olepukh/storefront/internal/config"
)

// Module wires the mailer. Without a configured relay address emails are
// logged instead of delivered.
var Module = fx.Options(
	fx.Provide(newSender),
	fx.Provide(New),
)

type senderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newSender(p senderParams) (Sender, error) {
	if p.Config.MailRelayAddress == "" {
		return NewLogSender(p.Logger), nil
	}
	return NewRelaySender(p.Config.MailRelayAddress, p.Logger)
}
