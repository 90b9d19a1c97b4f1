package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"openmic/internal/domain"
	"openmic/internal/domain/entities"
	"openmic/internal/ports/output"
)

var (
	_ output.EventRepository = (*EventRepository)(nil)
	_ output.VenueRepository = (*VenueRepository)(nil)
	_ output.UserRepository  = (*UserRepository)(nil)
)

type EventRepository struct{ s *Store }

func (r *EventRepository) Create(_ context.Context, event *entities.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextEventID++
	event.ID = r.s.nextEventID
	r.s.events[event.ID] = *event
	return nil
}

func (r *EventRepository) FindByID(_ context.Context, id uint) (*entities.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return &e, nil
}

func (r *EventRepository) FindAll(_ context.Context) ([]entities.Event, error) {
	return r.list(func(entities.Event) bool { return true }), nil
}

func (r *EventRepository) FindByHostID(_ context.Context, hostID uint) ([]entities.Event, error) {
	return r.list(func(e entities.Event) bool { return e.HostID == hostID }), nil
}

func (r *EventRepository) list(keep func(entities.Event) bool) []entities.Event {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []entities.Event{}
	for _, e := range r.s.events {
		if keep(e) {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b entities.Event) int {
		if c := a.StartsAt.Compare(b.StartsAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

func (r *EventRepository) Update(_ context.Context, event *entities.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[event.ID]; !ok {
		return domain.ErrEventNotFound
	}
	r.s.events[event.ID] = *event
	return nil
}

type VenueRepository struct{ s *Store }

func (r *VenueRepository) Create(_ context.Context, venue *entities.Venue) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextVenueID++
	venue.ID = r.s.nextVenueID
	r.s.venues[venue.ID] = *venue
	return nil
}

func (r *VenueRepository) FindByID(_ context.Context, id uint) (*entities.Venue, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.venues[id]
	if !ok {
		return nil, domain.ErrVenueNotFound
	}
	return &v, nil
}

func (r *VenueRepository) FindAll(_ context.Context) ([]entities.Venue, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []entities.Venue{}
	for _, v := range r.s.venues {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b entities.Venue) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, user *entities.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	r.s.nextUserID++
	user.ID = r.s.nextUserID
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id uint) (*entities.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) UpdatePassword(_ context.Context, id uint, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	r.s.users[id] = u
	return nil
}
