package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"openmic/internal/domain"
	"openmic/internal/domain/entities"
	"openmic/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

const eventColumns = `id, host_id, venue_id, title, description, starts_at, max_performers,
	signup_opens, signup_deadline, status, created_at, updated_at`

type EventRepository struct {
	db DBTX
}

func NewEventRepository(db DBTX) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	rows, err := r.db.Query(ctx, `
		INSERT INTO events (host_id, venue_id, title, description, starts_at, max_performers,
			signup_opens, signup_deadline, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+eventColumns,
		int64(event.HostID),
		int64(event.VenueID),
		event.Title,
		event.Description,
		timeToPgtype(event.StartsAt),
		int32(event.MaxPerformers),
		timeToPgtype(event.SignupOpens),
		timeToPgtype(event.SignupDeadline),
		event.Status,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[eventRow])
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	*event = eventToDomain(row)
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (*entities.Event, error) {
	rows, err := r.db.Query(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, int64(id))
	if err != nil {
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[eventRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	e := eventToDomain(row)
	return &e, nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]entities.Event, error) {
	out, err := r.findMany(ctx, `SELECT `+eventColumns+` FROM events ORDER BY starts_at ASC NULLS LAST, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("get events: %w", err)
	}
	return out, nil
}

func (r *EventRepository) FindByHostID(ctx context.Context, hostID uint) ([]entities.Event, error) {
	out, err := r.findMany(ctx, `SELECT `+eventColumns+` FROM events WHERE host_id = $1 ORDER BY starts_at ASC NULLS LAST, id ASC`, int64(hostID))
	if err != nil {
		return nil, fmt.Errorf("get events by host id: %w", err)
	}
	return out, nil
}

func (r *EventRepository) findMany(ctx context.Context, query string, args ...any) ([]entities.Event, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[eventRow])
	if err != nil {
		return nil, err
	}
	out := make([]entities.Event, len(found))
	for i := range found {
		out[i] = eventToDomain(found[i])
	}
	return out, nil
}

func (r *EventRepository) Update(ctx context.Context, event *entities.Event) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE events SET
			title = $2, description = $3, starts_at = $4, max_performers = $5,
			signup_opens = $6, signup_deadline = $7, status = $8, updated_at = $9
		WHERE id = $1`,
		int64(event.ID),
		event.Title,
		event.Description,
		timeToPgtype(event.StartsAt),
		int32(event.MaxPerformers),
		timeToPgtype(event.SignupOpens),
		timeToPgtype(event.SignupDeadline),
		event.Status,
		event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}
