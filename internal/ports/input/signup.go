package input

import (
	"context"

	"openmic/internal/domain/entities"
)

// RegisterSignup is a performer registering themself for an event.
type RegisterSignup struct {
	EventID         uint
	UserID          uint
	PerformanceName string
	PerformanceType string
	Notes           string
}

// ManualPerformer is a performer added by the host, without a user account.
type ManualPerformer struct {
	EventID         uint
	PerformerName   string
	PerformanceName string
	PerformanceType string
	Notes           string
}

type SignupUseCase interface {
	Register(ctx context.Context, cmd RegisterSignup) (*entities.Signup, error)
	Cancel(ctx context.Context, eventID, userID uint) error
	CancelByID(ctx context.Context, callerID, signupID uint) error
	GetSignup(ctx context.Context, id uint) (*entities.Signup, error)
	ListOrdered(ctx context.Context, eventID uint) ([]entities.Signup, error)
	ListForUser(ctx context.Context, userID uint) ([]entities.Signup, error)
	Reorder(ctx context.Context, callerID, eventID uint, signupIDs []uint) ([]entities.Signup, error)
	MarkFinished(ctx context.Context, callerID, signupID uint) (*entities.Signup, error)
	UnmarkFinished(ctx context.Context, callerID, signupID uint) (*entities.Signup, error)
	SetCurrentPerformer(ctx context.Context, callerID, signupID uint, current bool) (*entities.Signup, error)
	AddManual(ctx context.Context, callerID uint, cmd ManualPerformer) (*entities.Signup, error)
}
