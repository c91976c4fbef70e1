package gateway

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/olepukh/storefront/internal/config"
)

// Module exposes the gateway variant to the fx graph. The real adapter is
// selected once at startup when a complete credential set is configured;
// otherwise the mock adapter is injected.
var Module = fx.Provide(newGateway)

type gatewayParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newGateway(p gatewayParams) Gateway {
	if CredentialsConfigured(p.Config.Gateway) {
		p.Logger.Info("payment gateway configured",
			slog.String("supplier", p.Config.Gateway.SupplierID),
			slog.String("terminal", p.Config.Gateway.TerminalID),
		)
		return NewRealGateway(p.Config.Gateway)
	}
	p.Logger.Warn("payment gateway credentials incomplete, using mock gateway")
	return NewMockGateway()
}
