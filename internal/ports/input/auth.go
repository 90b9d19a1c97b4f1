package input

import (
	"context"

	"openmic/internal/domain/entities"
)

// Identity is the caller resolved from an access token.
type Identity struct {
	UserID    uint
	SessionID string
}

type AuthUseCase interface {
	Register(ctx context.Context, email, displayName, password string) (*entities.User, error)
	Login(ctx context.Context, email, password string) (string, *entities.User, error)
	Logout(ctx context.Context, sessionID string) error
	Authenticate(ctx context.Context, token string) (Identity, error)
	Me(ctx context.Context, userID uint) (*entities.User, error)
	ForgotPassword(ctx context.Context, email, locale string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}
