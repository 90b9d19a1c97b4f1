// Package memory implements the repository ports on process memory. It backs
// STORE_DRIVER=memory for local runs and the application tests. Data is lost
// on restart.
package memory

import (
	"context"
	"maps"
	"sync"

	"openmic/internal/domain/entities"
	"openmic/internal/ports/output"
)

var _ output.Transactor = (*Store)(nil)

// Store holds every table behind one lock.
type Store struct {
	mu      sync.RWMutex
	events  map[uint]entities.Event
	venues  map[uint]entities.Venue
	users   map[uint]entities.User
	signups *signupTable

	nextEventID uint
	nextVenueID uint
	nextUserID  uint
}

type signupTable struct {
	rows   map[uint]entities.Signup
	nextID uint
}

func (t *signupTable) clone() *signupTable {
	return &signupTable{rows: maps.Clone(t.rows), nextID: t.nextID}
}

func NewStore() *Store {
	return &Store{
		events:  make(map[uint]entities.Event),
		venues:  make(map[uint]entities.Venue),
		users:   make(map[uint]entities.User),
		signups: &signupTable{rows: make(map[uint]entities.Signup)},
	}
}

func (s *Store) Events() *EventRepository   { return &EventRepository{s: s} }
func (s *Store) Venues() *VenueRepository   { return &VenueRepository{s: s} }
func (s *Store) Users() *UserRepository     { return &UserRepository{s: s} }
func (s *Store) Signups() *SignupRepository { return &SignupRepository{s: s} }

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// WithinTx runs fn against a private copy of the signup table and swaps it in
// only when fn succeeds. The store lock is held for the whole call, so
// transactions and plain writes are serialized.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, signups output.SignupRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.signups.clone()
	if err := fn(ctx, &SignupRepository{s: s, tx: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.signups = work
	return nil
}
