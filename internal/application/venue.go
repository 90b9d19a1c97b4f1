package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"openmic/internal/domain"
	"openmic/internal/domain/entities"
	"openmic/internal/ports/input"
	"openmic/internal/ports/output"
)

var _ input.VenueUseCase = (*VenueService)(nil)

type VenueService struct {
	venueRepo output.VenueRepository
}

func NewVenueService(venueRepo output.VenueRepository) *VenueService {
	return &VenueService{venueRepo: venueRepo}
}

func (s *VenueService) CreateVenue(ctx context.Context, ownerID uint, in input.VenueInput) (*entities.Venue, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: venue name is required", domain.ErrValidation)
	}
	if in.Capacity < 0 || in.Capacity > domain.MaxCapacity {
		return nil, fmt.Errorf("%w: capacity must be between 0 and %d", domain.ErrValidation, domain.MaxCapacity)
	}
	now := time.Now()
	venue := &entities.Venue{
		OwnerID:     ownerID,
		Name:        name,
		Address:     strings.TrimSpace(in.Address),
		City:        strings.TrimSpace(in.City),
		Description: strings.TrimSpace(in.Description),
		Capacity:    in.Capacity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.venueRepo.Create(ctx, venue); err != nil {
		return nil, fmt.Errorf("create venue: %w", err)
	}
	return venue, nil
}

func (s *VenueService) GetVenue(ctx context.Context, id uint) (*entities.Venue, error) {
	return s.venueRepo.FindByID(ctx, id)
}

func (s *VenueService) ListVenues(ctx context.Context) ([]entities.Venue, error) {
	return s.venueRepo.FindAll(ctx)
}
