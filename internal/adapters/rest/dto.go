package rest

import (
	"time"

	"openmic/internal/domain/entities"
)

type registerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"displayName" validate:"required,max=100"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type venueRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Address     string `json:"address" validate:"max=300"`
	City        string `json:"city" validate:"max=100"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity" validate:"gte=0,lte=100000"`
}

type createEventRequest struct {
	VenueID        uint       `json:"venueId" validate:"required"`
	Title          string     `json:"title" validate:"required,max=200"`
	Description    string     `json:"description"`
	StartsAt       time.Time  `json:"startsAt" validate:"required"`
	MaxPerformers  int        `json:"maxPerformers" validate:"gte=0,lte=100000"`
	SignupOpens    *time.Time `json:"signupOpens"`
	SignupDeadline *time.Time `json:"signupDeadline"`
	Status         string     `json:"status" validate:"omitempty,oneof=draft published cancelled completed"`
}

type updateEventRequest struct {
	Title          *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description    *string    `json:"description"`
	StartsAt       *time.Time `json:"startsAt"`
	MaxPerformers  *int       `json:"maxPerformers" validate:"omitempty,gte=0,lte=100000"`
	SignupOpens    *time.Time `json:"signupOpens"`
	SignupDeadline *time.Time `json:"signupDeadline"`
	Status         *string    `json:"status" validate:"omitempty,oneof=draft published cancelled completed"`
}

type invitationsRequest struct {
	Emails  []string `json:"emails" validate:"required,min=1,dive,required,email"`
	Message string   `json:"message" validate:"max=2000"`
}

type signupRequest struct {
	EventID         uint   `json:"eventId" validate:"required"`
	PerformanceName string `json:"performanceName" validate:"max=200"`
	PerformanceType string `json:"performanceType" validate:"max=100"`
	Notes           string `json:"notes" validate:"max=2000"`
}

type manualPerformerRequest struct {
	PerformerName   string `json:"performerName" validate:"required,max=100"`
	PerformanceName string `json:"performanceName" validate:"max=200"`
	PerformanceType string `json:"performanceType" validate:"max=100"`
	Notes           string `json:"notes" validate:"max=2000"`
}

type reorderRequest struct {
	SignupIDs []uint `json:"signupIds" validate:"required,min=1"`
}

type currentPerformerRequest struct {
	Current *bool `json:"current" validate:"required"`
}

type userResponse struct {
	ID          uint      `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type venueResponse struct {
	ID          uint      `json:"id"`
	OwnerID     uint      `json:"ownerId"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Description string    `json:"description"`
	Capacity    int       `json:"capacity"`
	CreatedAt   time.Time `json:"createdAt"`
}

type eventResponse struct {
	ID             uint       `json:"id"`
	HostID         uint       `json:"hostId"`
	VenueID        uint       `json:"venueId"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	StartsAt       *time.Time `json:"startsAt"`
	MaxPerformers  int        `json:"maxPerformers"`
	SignupOpens    *time.Time `json:"signupOpens"`
	SignupDeadline *time.Time `json:"signupDeadline"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type signupResponse struct {
	ID                 uint       `json:"id"`
	EventID            uint       `json:"eventId"`
	UserID             *uint      `json:"userId"`
	PerformerName      string     `json:"performerName"`
	PerformanceName    string     `json:"performanceName"`
	PerformanceType    string     `json:"performanceType"`
	Notes              string     `json:"notes"`
	Status             string     `json:"status"`
	PerformanceOrder   *int       `json:"performanceOrder"`
	IsCurrentPerformer bool       `json:"isCurrentPerformer"`
	IsFinished         bool       `json:"isFinished"`
	FinishedAt         *time.Time `json:"finishedAt"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

type remindersResponse struct {
	Sent int `json:"sent"`
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func toUserResponse(u *entities.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName, CreatedAt: u.CreatedAt}
}

func toVenueResponse(v *entities.Venue) venueResponse {
	return venueResponse{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		Name:        v.Name,
		Address:     v.Address,
		City:        v.City,
		Description: v.Description,
		Capacity:    v.Capacity,
		CreatedAt:   v.CreatedAt,
	}
}

func toEventResponse(e *entities.Event) eventResponse {
	return eventResponse{
		ID:             e.ID,
		HostID:         e.HostID,
		VenueID:        e.VenueID,
		Title:          e.Title,
		Description:    e.Description,
		StartsAt:       optionalTime(e.StartsAt),
		MaxPerformers:  e.MaxPerformers,
		SignupOpens:    optionalTime(e.SignupOpens),
		SignupDeadline: optionalTime(e.SignupDeadline),
		Status:         e.Status,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func toSignupResponse(s *entities.Signup) signupResponse {
	out := signupResponse{
		ID:                 s.ID,
		EventID:            s.EventID,
		PerformerName:      s.PerformerName,
		PerformanceName:    s.PerformanceName,
		PerformanceType:    s.PerformanceType,
		Notes:              s.Notes,
		Status:             s.Status,
		IsCurrentPerformer: s.IsCurrentPerformer,
		IsFinished:         s.IsFinished,
		FinishedAt:         optionalTime(s.FinishedAt),
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
	if !s.IsManual() {
		id := s.UserID
		out.UserID = &id
	}
	if s.HasOrder() {
		order := s.PerformanceOrder
		out.PerformanceOrder = &order
	}
	return out
}

func mapSlice[T any, R any](in []T, fn func(*T) R) []R {
	out := make([]R, len(in))
	for i := range in {
		out[i] = fn(&in[i])
	}
	return out
}
