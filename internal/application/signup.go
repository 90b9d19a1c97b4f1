package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"openmic/internal/domain"
	"openmic/internal/domain/entities"
	"openmic/internal/ports/input"
	"openmic/internal/ports/output"
)

var _ input.SignupUseCase = (*SignupService)(nil)

type SignupService struct {
	signupRepo output.SignupRepository
	eventRepo  output.EventRepository
	userRepo   output.UserRepository
	tx         output.Transactor
	notifier   output.Notifier
	now        func() time.Time
}

func NewSignupService(
	signupRepo output.SignupRepository,
	eventRepo output.EventRepository,
	userRepo output.UserRepository,
	tx output.Transactor,
	notifier output.Notifier,
) *SignupService {
	return &SignupService{
		signupRepo: signupRepo,
		eventRepo:  eventRepo,
		userRepo:   userRepo,
		tx:         tx,
		notifier:   notifier,
		now:        time.Now,
	}
}

// Register signs a user up to perform at an event. The duplicate check and
// the capacity check are a plain read-then-write; the store's unique index on
// (event, user) is what ultimately rejects a concurrent duplicate.
func (s *SignupService) Register(ctx context.Context, cmd input.RegisterSignup) (*entities.Signup, error) {
	existing, err := s.signupRepo.FindByEventIDAndUserID(ctx, cmd.EventID, cmd.UserID)
	if err != nil && !errors.Is(err, domain.ErrSignupNotFound) {
		return nil, fmt.Errorf("find existing signup: %w", err)
	}
	if existing != nil && existing.Status != domain.StatusCancelled {
		return nil, domain.ErrDuplicateSignup
	}
	event, err := s.eventRepo.FindByID(ctx, cmd.EventID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := event.CheckSignupWindow(now); err != nil {
		return nil, err
	}
	confirmedCount, err := s.signupRepo.CountByEventIDAndStatus(ctx, event.ID, domain.StatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("count confirmed: %w", err)
	}
	if event.IsFull(int(confirmedCount)) {
		return nil, domain.ErrEventFull
	}
	user, err := s.userRepo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("find performer: %w", err)
	}
	signup := &entities.Signup{
		EventID:         event.ID,
		UserID:          cmd.UserID,
		PerformerName:   user.DisplayName,
		PerformanceName: strings.TrimSpace(cmd.PerformanceName),
		PerformanceType: strings.TrimSpace(cmd.PerformanceType),
		Notes:           strings.TrimSpace(cmd.Notes),
		Status:          domain.StatusConfirmed,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.signupRepo.Create(ctx, signup); err != nil {
		if errors.Is(err, domain.ErrDuplicateSignup) {
			return nil, domain.ErrDuplicateSignup
		}
		return nil, fmt.Errorf("create signup: %w", err)
	}
	s.notifyHost(ctx, output.NotifySignupCreated, event, signup)
	return signup, nil
}

// Cancel removes the user's own signup for an event.
func (s *SignupService) Cancel(ctx context.Context, eventID, userID uint) error {
	signup, err := s.signupRepo.FindByEventIDAndUserID(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if err := s.signupRepo.Delete(ctx, signup.ID); err != nil {
		return fmt.Errorf("delete signup: %w", err)
	}
	if event, err := s.eventRepo.FindByID(ctx, eventID); err == nil {
		s.notifyHost(ctx, output.NotifySignupCancelled, event, signup)
	}
	return nil
}

// CancelByID removes a signup. Allowed for the performer and for the event host.
func (s *SignupService) CancelByID(ctx context.Context, callerID, signupID uint) error {
	signup, err := s.signupRepo.FindByID(ctx, signupID)
	if err != nil {
		return err
	}
	event, err := s.eventRepo.FindByID(ctx, signup.EventID)
	if err != nil {
		return err
	}
	if signup.UserID != callerID && !event.IsHost(callerID) {
		return domain.ErrNotSignupOwner
	}
	if err := s.signupRepo.Delete(ctx, signup.ID); err != nil {
		return fmt.Errorf("delete signup: %w", err)
	}
	s.notifyHost(ctx, output.NotifySignupCancelled, event, signup)
	return nil
}

func (s *SignupService) GetSignup(ctx context.Context, id uint) (*entities.Signup, error) {
	return s.signupRepo.FindByID(ctx, id)
}

// ListOrdered returns the confirmed signups of an event in performance order.
func (s *SignupService) ListOrdered(ctx context.Context, eventID uint) ([]entities.Signup, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.listOrdered(ctx, eventID)
}

func (s *SignupService) listOrdered(ctx context.Context, eventID uint) ([]entities.Signup, error) {
	signups, err := s.signupRepo.FindByEventIDAndStatus(ctx, eventID, domain.StatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("find confirmed signups: %w", err)
	}
	entities.SortByPerformanceOrder(signups)
	return signups, nil
}

func (s *SignupService) ListForUser(ctx context.Context, userID uint) ([]entities.Signup, error) {
	signups, err := s.signupRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user signups: %w", err)
	}
	return signups, nil
}

// Reorder assigns orders 1..N to signupIDs in the given sequence inside one
// transaction. Signups left out of the list keep their previous order, so
// they may collide with the new numbers.
func (s *SignupService) Reorder(ctx context.Context, callerID, eventID uint, signupIDs []uint) ([]entities.Signup, error) {
	if len(signupIDs) == 0 {
		return nil, fmt.Errorf("%w: signupIds must not be empty", domain.ErrValidation)
	}
	seen := make(map[uint]struct{}, len(signupIDs))
	for _, id := range signupIDs {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: signup %d listed twice", domain.ErrValidation, id)
		}
		seen[id] = struct{}{}
	}
	if _, err := s.authorizeHost(ctx, eventID, callerID); err != nil {
		return nil, err
	}
	err := s.tx.WithinTx(ctx, func(ctx context.Context, signups output.SignupRepository) error {
		for i, id := range signupIDs {
			if _, err := signups.SetPerformanceOrder(ctx, eventID, id, i+1); err != nil {
				return fmt.Errorf("set order of signup %d: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reorder signups: %w", err)
	}
	return s.listOrdered(ctx, eventID)
}

func (s *SignupService) MarkFinished(ctx context.Context, callerID, signupID uint) (*entities.Signup, error) {
	return s.updateAsHost(ctx, callerID, signupID, func(signup *entities.Signup, now time.Time) {
		signup.IsFinished = true
		signup.FinishedAt = now
	})
}

func (s *SignupService) UnmarkFinished(ctx context.Context, callerID, signupID uint) (*entities.Signup, error) {
	return s.updateAsHost(ctx, callerID, signupID, func(signup *entities.Signup, _ time.Time) {
		signup.IsFinished = false
		signup.FinishedAt = time.Time{}
	})
}

// SetCurrentPerformer flags or unflags a signup as performing now. Several
// signups of the same event may be flagged at once; hosts toggle them manually.
func (s *SignupService) SetCurrentPerformer(ctx context.Context, callerID, signupID uint, current bool) (*entities.Signup, error) {
	return s.updateAsHost(ctx, callerID, signupID, func(signup *entities.Signup, _ time.Time) {
		signup.IsCurrentPerformer = current
	})
}

func (s *SignupService) updateAsHost(ctx context.Context, callerID, signupID uint, apply func(*entities.Signup, time.Time)) (*entities.Signup, error) {
	signup, err := s.signupRepo.FindByID(ctx, signupID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizeHost(ctx, signup.EventID, callerID); err != nil {
		return nil, err
	}
	now := s.now()
	apply(signup, now)
	signup.UpdatedAt = now
	if err := s.signupRepo.Update(ctx, signup); err != nil {
		return nil, fmt.Errorf("update signup: %w", err)
	}
	return signup, nil
}

// AddManual adds a performer without an account at the end of the running
// order. Not serialized against concurrent adds: two calls may get the same order.
func (s *SignupService) AddManual(ctx context.Context, callerID uint, cmd input.ManualPerformer) (*entities.Signup, error) {
	name := strings.TrimSpace(cmd.PerformerName)
	if name == "" {
		return nil, fmt.Errorf("%w: performer name is required", domain.ErrValidation)
	}
	event, err := s.authorizeHost(ctx, cmd.EventID, callerID)
	if err != nil {
		return nil, err
	}
	highest, err := s.signupRepo.MaxPerformanceOrder(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("max performance order: %w", err)
	}
	now := s.now()
	signup := &entities.Signup{
		EventID:          event.ID,
		PerformerName:    name,
		PerformanceName:  strings.TrimSpace(cmd.PerformanceName),
		PerformanceType:  strings.TrimSpace(cmd.PerformanceType),
		Notes:            strings.TrimSpace(cmd.Notes),
		Status:           domain.StatusConfirmed,
		PerformanceOrder: highest + 1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.signupRepo.Create(ctx, signup); err != nil {
		return nil, fmt.Errorf("create signup: %w", err)
	}
	return signup, nil
}

func (s *SignupService) authorizeHost(ctx context.Context, eventID, callerID uint) (*entities.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsHost(callerID) {
		return nil, domain.ErrNotEventHost
	}
	return event, nil
}

func (s *SignupService) notifyHost(ctx context.Context, kind string, event *entities.Event, signup *entities.Signup) {
	n := output.Notification{Kind: kind, Event: event, Signup: signup}
	if host, err := s.userRepo.FindByID(ctx, event.HostID); err == nil {
		n.Recipients = []string{host.Email}
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		slog.Warn("signup notification failed", "kind", kind, "event_id", event.ID, "error", err)
	}
}
