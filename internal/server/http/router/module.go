package router

import (
	"go.uber.org/fx"

	"github.com/olepukh/storefront/internal/app"
	"github.com/olepukh/storefront/internal/server/http/handlers"
)

// Module registers HTTP router construction for the fx runtime.
var Module = fx.Options(
	fx.Provide(func(f *app.StorefrontFacade) handlers.StorefrontFacade { return f }),
	fx.Provide(Setup),
)
