package input

import (
	"context"

	"openmic/internal/domain/entities"
)

type VenueInput struct {
	Name        string
	Address     string
	City        string
	Description string
	Capacity    int
}

type VenueUseCase interface {
	CreateVenue(ctx context.Context, ownerID uint, in VenueInput) (*entities.Venue, error)
	GetVenue(ctx context.Context, id uint) (*entities.Venue, error)
	ListVenues(ctx context.Context) ([]entities.Venue, error)
}
