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

var (
	_ output.VenueRepository = (*VenueRepository)(nil)
	_ output.UserRepository  = (*UserRepository)(nil)
)

const (
	venueColumns = `id, owner_id, name, address, city, description, capacity, created_at, updated_at`
	userColumns  = `id, email, display_name, password_hash, created_at, updated_at`
)

type VenueRepository struct {
	db DBTX
}

func NewVenueRepository(db DBTX) *VenueRepository {
	return &VenueRepository{db: db}
}

func (r *VenueRepository) Create(ctx context.Context, venue *entities.Venue) error {
	rows, err := r.db.Query(ctx, `
		INSERT INTO venues (owner_id, name, address, city, description, capacity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+venueColumns,
		int64(venue.OwnerID), venue.Name, venue.Address, venue.City, venue.Description,
		int32(venue.Capacity), venue.CreatedAt, venue.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create venue: %w", err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[venueRow])
	if err != nil {
		return fmt.Errorf("create venue: %w", err)
	}
	*venue = venueToDomain(row)
	return nil
}

func (r *VenueRepository) FindByID(ctx context.Context, id uint) (*entities.Venue, error) {
	rows, err := r.db.Query(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = $1`, int64(id))
	if err != nil {
		return nil, fmt.Errorf("get venue by id: %w", err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[venueRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVenueNotFound
		}
		return nil, fmt.Errorf("get venue by id: %w", err)
	}
	v := venueToDomain(row)
	return &v, nil
}

func (r *VenueRepository) FindAll(ctx context.Context) ([]entities.Venue, error) {
	rows, err := r.db.Query(ctx, `SELECT `+venueColumns+` FROM venues ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("get venues: %w", err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[venueRow])
	if err != nil {
		return nil, fmt.Errorf("get venues: %w", err)
	}
	out := make([]entities.Venue, len(found))
	for i := range found {
		out[i] = venueToDomain(found[i])
	}
	return out, nil
}

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	rows, err := r.db.Query(ctx, `
		INSERT INTO users (email, display_name, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		user.Email, user.DisplayName, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[userRow])
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	*user = userToDomain(row)
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*entities.User, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[userRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	u := userToDomain(row)
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*entities.User, error) {
	u, err := r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, int64(id))
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	u, err := r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`,
		int64(id), passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
