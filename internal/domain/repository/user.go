package repository

import (
	"context"

	"github.com/olepukh/storefront/internal/domain/model"
)

// UserRepository describes persistence operations for customer accounts.
type UserRepository interface {
	Create(ctx context.Context, email, name, passwordHash string, admin bool) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}
