package output

import (
	"context"

	"openmic/internal/domain/entities"
)

type VenueRepository interface {
	Create(ctx context.Context, venue *entities.Venue) error
	FindByID(ctx context.Context, id uint) (*entities.Venue, error)
	FindAll(ctx context.Context) ([]entities.Venue, error)
}
