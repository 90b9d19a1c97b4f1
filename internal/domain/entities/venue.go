package entities

import "time"

// Venue is a place hosting events.
type Venue struct {
	ID          uint
	OwnerID     uint
	Name        string
	Address     string
	City        string
	Description string
	Capacity    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
