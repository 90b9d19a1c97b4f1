package input

import (
	"context"
	"time"

	"openmic/internal/domain/entities"
)

// EventInput carries the fields of a new event.
type EventInput struct {
	VenueID        uint
	Title          string
	Description    string
	StartsAt       time.Time
	MaxPerformers  int
	SignupOpens    time.Time
	SignupDeadline time.Time
	Status         string
}

// EventUpdate carries the fields to change; nil fields are left untouched.
type EventUpdate struct {
	Title          *string
	Description    *string
	StartsAt       *time.Time
	MaxPerformers  *int
	SignupOpens    *time.Time
	SignupDeadline *time.Time
	Status         *string
}

type EventUseCase interface {
	CreateEvent(ctx context.Context, hostID uint, in EventInput) (*entities.Event, error)
	GetEvent(ctx context.Context, id uint) (*entities.Event, error)
	ListEvents(ctx context.Context) ([]entities.Event, error)
	ListEventsByHost(ctx context.Context, hostID uint) ([]entities.Event, error)
	UpdateEvent(ctx context.Context, callerID, eventID uint, in EventUpdate) (*entities.Event, error)
	SendInvitations(ctx context.Context, callerID, eventID uint, emails []string, message, locale string) error
	SendReminders(ctx context.Context, callerID, eventID uint, locale string) (int, error)
}
