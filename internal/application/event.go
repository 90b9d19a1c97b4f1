package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"openmic/internal/domain"
	"openmic/internal/domain/entities"
	"openmic/internal/ports/input"
	"openmic/internal/ports/output"
)

var _ input.EventUseCase = (*EventService)(nil)

type EventService struct {
	eventRepo  output.EventRepository
	venueRepo  output.VenueRepository
	signupRepo output.SignupRepository
	userRepo   output.UserRepository
	notifier   output.Notifier
	now        func() time.Time
}

func NewEventService(
	eventRepo output.EventRepository,
	venueRepo output.VenueRepository,
	signupRepo output.SignupRepository,
	userRepo output.UserRepository,
	notifier output.Notifier,
) *EventService {
	return &EventService{
		eventRepo:  eventRepo,
		venueRepo:  venueRepo,
		signupRepo: signupRepo,
		userRepo:   userRepo,
		notifier:   notifier,
		now:        time.Now,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, hostID uint, in input.EventInput) (*entities.Event, error) {
	if _, err := s.venueRepo.FindByID(ctx, in.VenueID); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = domain.EventDraft
	}
	now := s.now()
	event := &entities.Event{
		HostID:         hostID,
		VenueID:        in.VenueID,
		Title:          strings.TrimSpace(in.Title),
		Description:    strings.TrimSpace(in.Description),
		StartsAt:       in.StartsAt,
		MaxPerformers:  in.MaxPerformers,
		SignupOpens:    in.SignupOpens,
		SignupDeadline: in.SignupDeadline,
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := validateEvent(event); err != nil {
		return nil, err
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (*entities.Event, error) {
	return s.eventRepo.FindByID(ctx, id)
}

func (s *EventService) ListEvents(ctx context.Context) ([]entities.Event, error) {
	return s.eventRepo.FindAll(ctx)
}

func (s *EventService) ListEventsByHost(ctx context.Context, hostID uint) ([]entities.Event, error) {
	return s.eventRepo.FindByHostID(ctx, hostID)
}

// UpdateEvent applies the non-nil fields of in. Capacity cannot go below the
// number of confirmed signups.
func (s *EventService) UpdateEvent(ctx context.Context, callerID, eventID uint, in input.EventUpdate) (*entities.Event, error) {
	event, err := s.authorizeHost(ctx, eventID, callerID)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		event.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		event.Description = strings.TrimSpace(*in.Description)
	}
	if in.StartsAt != nil {
		event.StartsAt = *in.StartsAt
	}
	if in.SignupOpens != nil {
		event.SignupOpens = *in.SignupOpens
	}
	if in.SignupDeadline != nil {
		event.SignupDeadline = *in.SignupDeadline
	}
	if in.Status != nil {
		event.Status = *in.Status
	}
	if in.MaxPerformers != nil {
		confirmedCount, err := s.signupRepo.CountByEventIDAndStatus(ctx, event.ID, domain.StatusConfirmed)
		if err != nil {
			return nil, fmt.Errorf("count confirmed: %w", err)
		}
		if *in.MaxPerformers > 0 && int(confirmedCount) > *in.MaxPerformers {
			return nil, domain.ErrCannotReduceSlots
		}
		event.MaxPerformers = *in.MaxPerformers
	}
	if err := validateEvent(event); err != nil {
		return nil, err
	}
	event.UpdatedAt = s.now()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

// SendInvitations emails an invitation to perform to each address.
func (s *EventService) SendInvitations(ctx context.Context, callerID, eventID uint, emails []string, message, locale string) error {
	event, err := s.authorizeHost(ctx, eventID, callerID)
	if err != nil {
		return err
	}
	if len(emails) == 0 {
		return fmt.Errorf("%w: at least one email is required", domain.ErrValidation)
	}
	venue, err := s.venueRepo.FindByID(ctx, event.VenueID)
	if err != nil {
		return err
	}
	s.notify(ctx, output.Notification{
		Kind:       output.NotifyInvitation,
		Locale:     locale,
		Recipients: emails,
		Event:      event,
		Venue:      venue,
		Message:    strings.TrimSpace(message),
	})
	return nil
}

// SendReminders emails every confirmed performer with an account. Manually
// added performers have no address and are skipped. It returns the number of
// recipients.
func (s *EventService) SendReminders(ctx context.Context, callerID, eventID uint, locale string) (int, error) {
	event, err := s.authorizeHost(ctx, eventID, callerID)
	if err != nil {
		return 0, err
	}
	venue, err := s.venueRepo.FindByID(ctx, event.VenueID)
	if err != nil {
		return 0, err
	}
	signups, err := s.signupRepo.FindByEventIDAndStatus(ctx, event.ID, domain.StatusConfirmed)
	if err != nil {
		return 0, fmt.Errorf("find confirmed signups: %w", err)
	}
	var recipients []string
	for _, signup := range signups {
		if signup.IsManual() {
			continue
		}
		user, err := s.userRepo.FindByID(ctx, signup.UserID)
		if err != nil {
			slog.Warn("reminder recipient lookup failed", "signup_id", signup.ID, "error", err)
			continue
		}
		recipients = append(recipients, user.Email)
	}
	if len(recipients) == 0 {
		return 0, nil
	}
	s.notify(ctx, output.Notification{
		Kind:       output.NotifyReminder,
		Locale:     locale,
		Recipients: recipients,
		Event:      event,
		Venue:      venue,
	})
	return len(recipients), nil
}

func (s *EventService) authorizeHost(ctx context.Context, eventID, callerID uint) (*entities.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsHost(callerID) {
		return nil, domain.ErrNotEventHost
	}
	return event, nil
}

func (s *EventService) notify(ctx context.Context, n output.Notification) {
	if err := s.notifier.Notify(ctx, n); err != nil {
		slog.Warn("event notification failed", "kind", n.Kind, "event_id", n.Event.ID, "error", err)
	}
}

func validateEvent(e *entities.Event) error {
	if e.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if e.MaxPerformers < 0 || e.MaxPerformers > domain.MaxCapacity {
		return fmt.Errorf("%w: max performers must be between 0 and %d", domain.ErrValidation, domain.MaxCapacity)
	}
	if !domain.ValidEventStatus(e.Status) {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, e.Status)
	}
	if !e.SignupOpens.IsZero() && !e.SignupDeadline.IsZero() && e.SignupDeadline.Before(e.SignupOpens) {
		return domain.ErrInvalidSignupDates
	}
	return nil
}
