package output

import (
	"context"

	"openmic/internal/domain/entities"
)

type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	FindByID(ctx context.Context, id uint) (*entities.Event, error)
	FindAll(ctx context.Context) ([]entities.Event, error)
	FindByHostID(ctx context.Context, hostID uint) ([]entities.Event, error)
	Update(ctx context.Context, event *entities.Event) error
}
