package entities

import (
	"time"

	"openmic/internal/domain"
)

// Event is an open mic night hosted at a venue.
type Event struct {
	ID             uint
	HostID         uint
	VenueID        uint
	Title          string
	Description    string
	StartsAt       time.Time
	MaxPerformers  int       // 0 = unlimited
	SignupOpens    time.Time // zero = open immediately
	SignupDeadline time.Time // zero = no deadline
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsHost reports whether userID hosts the event.
func (e *Event) IsHost(userID uint) bool {
	return userID != 0 && e.HostID == userID
}

// CheckSignupWindow returns the rule violated by a registration at now, if any.
func (e *Event) CheckSignupWindow(now time.Time) error {
	if !e.SignupOpens.IsZero() && now.Before(e.SignupOpens) {
		return domain.ErrSignupsNotOpen
	}
	if !e.SignupDeadline.IsZero() && now.After(e.SignupDeadline) {
		return domain.ErrSignupsClosed
	}
	return nil
}

// IsFull reports whether confirmed signups have reached capacity.
func (e *Event) IsFull(confirmedCount int) bool {
	return e.MaxPerformers > 0 && confirmedCount >= e.MaxPerformers
}
