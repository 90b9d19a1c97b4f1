package database

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"openmic/internal/domain/entities"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

// timeToPgtype maps the zero time to NULL.
func timeToPgtype(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

// idToPgtype maps the zero id to NULL.
func idToPgtype(id uint) pgtype.Int8 {
	if id == 0 {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: int64(id), Valid: true}
}

func orderToPgtype(order int) pgtype.Int4 {
	if order <= 0 {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: int32(order), Valid: true}
}

type userRow struct {
	ID           int64              `db:"id"`
	Email        string             `db:"email"`
	DisplayName  string             `db:"display_name"`
	PasswordHash string             `db:"password_hash"`
	CreatedAt    pgtype.Timestamptz `db:"created_at"`
	UpdatedAt    pgtype.Timestamptz `db:"updated_at"`
}

type venueRow struct {
	ID          int64              `db:"id"`
	OwnerID     int64              `db:"owner_id"`
	Name        string             `db:"name"`
	Address     string             `db:"address"`
	City        string             `db:"city"`
	Description string             `db:"description"`
	Capacity    int32              `db:"capacity"`
	CreatedAt   pgtype.Timestamptz `db:"created_at"`
	UpdatedAt   pgtype.Timestamptz `db:"updated_at"`
}

type eventRow struct {
	ID             int64              `db:"id"`
	HostID         int64              `db:"host_id"`
	VenueID        int64              `db:"venue_id"`
	Title          string             `db:"title"`
	Description    string             `db:"description"`
	StartsAt       pgtype.Timestamptz `db:"starts_at"`
	MaxPerformers  int32              `db:"max_performers"`
	SignupOpens    pgtype.Timestamptz `db:"signup_opens"`
	SignupDeadline pgtype.Timestamptz `db:"signup_deadline"`
	Status         string             `db:"status"`
	CreatedAt      pgtype.Timestamptz `db:"created_at"`
	UpdatedAt      pgtype.Timestamptz `db:"updated_at"`
}

type signupRow struct {
	ID                 int64              `db:"id"`
	EventID            int64              `db:"event_id"`
	UserID             pgtype.Int8        `db:"user_id"`
	PerformerName      string             `db:"performer_name"`
	PerformanceName    string             `db:"performance_name"`
	PerformanceType    string             `db:"performance_type"`
	Notes              string             `db:"notes"`
	Status             string             `db:"status"`
	PerformanceOrder   pgtype.Int4        `db:"performance_order"`
	IsCurrentPerformer bool               `db:"is_current_performer"`
	IsFinished         bool               `db:"is_finished"`
	FinishedAt         pgtype.Timestamptz `db:"finished_at"`
	CreatedAt          pgtype.Timestamptz `db:"created_at"`
	UpdatedAt          pgtype.Timestamptz `db:"updated_at"`
}

func userToDomain(u userRow) entities.User {
	return entities.User{
		ID:           uint(u.ID),
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		PasswordHash: u.PasswordHash,
		CreatedAt:    pgtypeTimestamptzToTime(u.CreatedAt),
		UpdatedAt:    pgtypeTimestamptzToTime(u.UpdatedAt),
	}
}

func venueToDomain(v venueRow) entities.Venue {
	return entities.Venue{
		ID:          uint(v.ID),
		OwnerID:     uint(v.OwnerID),
		Name:        v.Name,
		Address:     v.Address,
		City:        v.City,
		Description: v.Description,
		Capacity:    int(v.Capacity),
		CreatedAt:   pgtypeTimestamptzToTime(v.CreatedAt),
		UpdatedAt:   pgtypeTimestamptzToTime(v.UpdatedAt),
	}
}

func eventToDomain(e eventRow) entities.Event {
	return entities.Event{
		ID:             uint(e.ID),
		HostID:         uint(e.HostID),
		VenueID:        uint(e.VenueID),
		Title:          e.Title,
		Description:    e.Description,
		StartsAt:       pgtypeTimestamptzToTime(e.StartsAt),
		MaxPerformers:  int(e.MaxPerformers),
		SignupOpens:    pgtypeTimestamptzToTime(e.SignupOpens),
		SignupDeadline: pgtypeTimestamptzToTime(e.SignupDeadline),
		Status:         e.Status,
		CreatedAt:      pgtypeTimestamptzToTime(e.CreatedAt),
		UpdatedAt:      pgtypeTimestamptzToTime(e.UpdatedAt),
	}
}

func signupToDomain(s signupRow) entities.Signup {
	signup := entities.Signup{
		ID:                 uint(s.ID),
		EventID:            uint(s.EventID),
		PerformerName:      s.PerformerName,
		PerformanceName:    s.PerformanceName,
		PerformanceType:    s.PerformanceType,
		Notes:              s.Notes,
		Status:             s.Status,
		IsCurrentPerformer: s.IsCurrentPerformer,
		IsFinished:         s.IsFinished,
		FinishedAt:         pgtypeTimestamptzToTime(s.FinishedAt),
		CreatedAt:          pgtypeTimestamptzToTime(s.CreatedAt),
		UpdatedAt:          pgtypeTimestamptzToTime(s.UpdatedAt),
	}
	if s.UserID.Valid {
		signup.UserID = uint(s.UserID.Int64)
	}
	if s.PerformanceOrder.Valid {
		signup.PerformanceOrder = int(s.PerformanceOrder.Int32)
	}
	return signup
}
