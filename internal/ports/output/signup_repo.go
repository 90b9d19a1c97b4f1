package output

import (
	"context"

	"openmic/internal/domain/entities"
)

// SignupRepository persists signups. Lookups of a missing row return
// domain.ErrSignupNotFound.
type SignupRepository interface {
	Create(ctx context.Context, signup *entities.Signup) error
	FindByID(ctx context.Context, id uint) (*entities.Signup, error)
	FindByEventID(ctx context.Context, eventID uint) ([]entities.Signup, error)
	FindByUserID(ctx context.Context, userID uint) ([]entities.Signup, error)
	FindByEventIDAndUserID(ctx context.Context, eventID, userID uint) (*entities.Signup, error)
	FindByEventIDAndStatus(ctx context.Context, eventID uint, status string) ([]entities.Signup, error)
	CountByEventIDAndStatus(ctx context.Context, eventID uint, status string) (int64, error)
	MaxPerformanceOrder(ctx context.Context, eventID uint) (int, error)
	// SetPerformanceOrder updates the order of signupID only if it belongs to
	// eventID. It reports whether a row was updated.
	SetPerformanceOrder(ctx context.Context, eventID, signupID uint, order int) (bool, error)
	Update(ctx context.Context, signup *entities.Signup) error
	Delete(ctx context.Context, id uint) error
}

// Transactor runs fn against a signup repository bound to a single
// all-or-nothing transaction. Any error returned by fn rolls back every write.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, signups SignupRepository) error) error
}
