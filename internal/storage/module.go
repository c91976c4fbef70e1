package storage

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/olepukh/storefront/internal/config"
	"github.com/olepukh/storefront/internal/domain/repository"
	"github.com/olepukh/storefront/internal/storage/memory"
	"github.com/olepukh/storefront/internal/storage/postgres"
)

func newFactory(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (repository.Factory, error) {
	if cfg.DatabaseURI == "" {
		logger.Info("database not configured, using in-memory storage")
		return memory.New(), nil
	}
	st, err := postgres.New(context.Background(), cfg.DatabaseURI, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			st.Close()
			return nil
		},
	})
	logger.Info("postgres storage ready")
	return st, nil
}

func newOrderRepository(f repository.Factory) repository.OrderRepository { return f.Orders() }

func newNotificationRepository(f repository.Factory) repository.NotificationRepository {
	return f.Notifications()
}

func newUserRepository(f repository.Factory) repository.UserRepository { return f.Users() }

// Module selects the storage backend and exposes the repositories.
var Module = fx.Module("storage",
	fx.Provide(
		newFactory,
		newOrderRepository,
		newNotificationRepository,
		newUserRepository,
	),
)
