package di

import (
	"go.uber.org/fx"

	"github.com/olepukh/storefront/internal/app"
	"github.com/olepukh/storefront/internal/config"
	"github.com/olepukh/storefront/internal/events"
	"github.com/olepukh/storefront/internal/gateway"
	"github.com/olepukh/storefront/internal/logger"
	"github.com/olepukh/storefront/internal/mailer"
	"github.com/olepukh/storefront/internal/pkg/auth"
	"github.com/olepukh/storefront/internal/server/http/router"
	"github.com/olepukh/storefront/internal/storage"
	"github.com/olepukh/storefront/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		storage.Module,
		gateway.Module,
		mailer.Module,
		events.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
