package output

import (
	"context"

	"openmic/internal/domain/entities"
)

type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id uint) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}
