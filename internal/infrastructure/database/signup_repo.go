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

var _ output.SignupRepository = (*SignupRepository)(nil)

const signupColumns = `id, event_id, user_id, performer_name, performance_name, performance_type, notes,
	status, performance_order, is_current_performer, is_finished, finished_at, created_at, updated_at`

// SignupRepository implements output.SignupRepository using pgx.
type SignupRepository struct {
	db DBTX
}

// NewSignupRepository creates a SignupRepository over a pool or a transaction.
func NewSignupRepository(db DBTX) *SignupRepository {
	return &SignupRepository{db: db}
}

func (r *SignupRepository) Create(ctx context.Context, signup *entities.Signup) error {
	rows, err := r.db.Query(ctx, `
		INSERT INTO signups (event_id, user_id, performer_name, performance_name, performance_type, notes,
			status, performance_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+signupColumns,
		int64(signup.EventID),
		idToPgtype(signup.UserID),
		signup.PerformerName,
		signup.PerformanceName,
		signup.PerformanceType,
		signup.Notes,
		signup.Status,
		orderToPgtype(signup.PerformanceOrder),
		signup.CreatedAt,
		signup.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSignup
		}
		return fmt.Errorf("create signup: %w", err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[signupRow])
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSignup
		}
		return fmt.Errorf("create signup: %w", err)
	}
	*signup = signupToDomain(row)
	return nil
}

func (r *SignupRepository) findOne(ctx context.Context, query string, args ...any) (*entities.Signup, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[signupRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSignupNotFound
		}
		return nil, err
	}
	s := signupToDomain(row)
	return &s, nil
}

func (r *SignupRepository) findMany(ctx context.Context, query string, args ...any) ([]entities.Signup, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[signupRow])
	if err != nil {
		return nil, err
	}
	out := make([]entities.Signup, len(found))
	for i := range found {
		out[i] = signupToDomain(found[i])
	}
	return out, nil
}

func (r *SignupRepository) FindByID(ctx context.Context, id uint) (*entities.Signup, error) {
	s, err := r.findOne(ctx, `SELECT `+signupColumns+` FROM signups WHERE id = $1`, int64(id))
	if err != nil && !errors.Is(err, domain.ErrSignupNotFound) {
		return nil, fmt.Errorf("get signup by id: %w", err)
	}
	return s, err
}

func (r *SignupRepository) FindByEventID(ctx context.Context, eventID uint) ([]entities.Signup, error) {
	out, err := r.findMany(ctx, `SELECT `+signupColumns+` FROM signups WHERE event_id = $1 ORDER BY id`, int64(eventID))
	if err != nil {
		return nil, fmt.Errorf("get signups by event id: %w", err)
	}
	return out, nil
}

func (r *SignupRepository) FindByUserID(ctx context.Context, userID uint) ([]entities.Signup, error) {
	out, err := r.findMany(ctx, `SELECT `+signupColumns+` FROM signups WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, int64(userID))
	if err != nil {
		return nil, fmt.Errorf("get signups by user id: %w", err)
	}
	return out, nil
}

func (r *SignupRepository) FindByEventIDAndUserID(ctx context.Context, eventID, userID uint) (*entities.Signup, error) {
	s, err := r.findOne(ctx, `
		SELECT `+signupColumns+` FROM signups
		WHERE event_id = $1 AND user_id = $2 AND status <> $3
		ORDER BY id LIMIT 1`,
		int64(eventID), int64(userID), domain.StatusCancelled)
	if err != nil && !errors.Is(err, domain.ErrSignupNotFound) {
		return nil, fmt.Errorf("get signup by event id and user id: %w", err)
	}
	return s, err
}

func (r *SignupRepository) FindByEventIDAndStatus(ctx context.Context, eventID uint, status string) ([]entities.Signup, error) {
	out, err := r.findMany(ctx, `
		SELECT `+signupColumns+` FROM signups
		WHERE event_id = $1 AND status = $2
		ORDER BY performance_order ASC NULLS LAST, created_at ASC, id ASC`,
		int64(eventID), status)
	if err != nil {
		return nil, fmt.Errorf("get signups by event id and status: %w", err)
	}
	return out, nil
}

func (r *SignupRepository) CountByEventIDAndStatus(ctx context.Context, eventID uint, status string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM signups WHERE event_id = $1 AND status = $2`,
		int64(eventID), status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count signups: %w", err)
	}
	return count, nil
}

func (r *SignupRepository) MaxPerformanceOrder(ctx context.Context, eventID uint) (int, error) {
	var highest int32
	err := r.db.QueryRow(ctx, `SELECT COALESCE(MAX(performance_order), 0) FROM signups WHERE event_id = $1`,
		int64(eventID)).Scan(&highest)
	if err != nil {
		return 0, fmt.Errorf("max performance order: %w", err)
	}
	return int(highest), nil
}

func (r *SignupRepository) SetPerformanceOrder(ctx context.Context, eventID, signupID uint, order int) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE signups SET performance_order = $1, updated_at = now()
		WHERE id = $2 AND event_id = $3`,
		orderToPgtype(order), int64(signupID), int64(eventID))
	if err != nil {
		return false, fmt.Errorf("set performance order: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *SignupRepository) Update(ctx context.Context, signup *entities.Signup) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE signups SET
			performer_name = $2, performance_name = $3, performance_type = $4, notes = $5, status = $6,
			performance_order = $7, is_current_performer = $8, is_finished = $9, finished_at = $10, updated_at = $11
		WHERE id = $1`,
		int64(signup.ID),
		signup.PerformerName,
		signup.PerformanceName,
		signup.PerformanceType,
		signup.Notes,
		signup.Status,
		orderToPgtype(signup.PerformanceOrder),
		signup.IsCurrentPerformer,
		signup.IsFinished,
		timeToPgtype(signup.FinishedAt),
		signup.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update signup: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSignupNotFound
	}
	return nil
}

func (r *SignupRepository) Delete(ctx context.Context, id uint) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM signups WHERE id = $1`, int64(id))
	if err != nil {
		return fmt.Errorf("delete signup: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSignupNotFound
	}
	return nil
}
