package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/olepukh/storefront/internal/config"
	"github.com/olepukh/storefront/internal/events"
	"github.com/olepukh/storefront/internal/mailer"
	"github.com/olepukh/storefront/internal/sideeffect"
	"github.com/olepukh/storefront/internal/usecase"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewStorefrontFacade,
		newHTTPServer,
		newDispatcher,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type dispatcherParams struct {
	fx.In

	Notifications *usecase.NotificationUseCase
	Mailer        *mailer.Mailer
	Publisher     events.Publisher
	Config        *config.Config
	Logger        *slog.Logger
}

func newDispatcher(p dispatcherParams) *sideeffect.Dispatcher {
	return sideeffect.NewDispatcher(
		p.Notifications,
		p.Mailer,
		p.Publisher,
		p.Config.SideEffectQueueSize,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Dispatcher *sideeffect.Dispatcher
	Publisher  events.Publisher
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting storefront", slog.String("addr", p.Server.Addr))
			p.Dispatcher.Start(context.Background())
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			// Workers finish their in-flight tasks before the broker
			// link goes away.
			p.Dispatcher.Stop()
			if err := p.Publisher.Close(); err != nil {
				p.Logger.Error("closing event publisher", slog.String("error", err.Error()))
			}

			p.Logger.Info("storefront stopped")
			return nil
		},
	})
}
