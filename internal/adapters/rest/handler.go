package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"openmic/internal/domain"
	"openmic/internal/ports/input"
	"openmic/internal/ports/output"
)

const maxBodyBytes = 1 << 20

// Handler holds the use cases served over HTTP.
type Handler struct {
	auth       input.AuthUseCase
	events     input.EventUseCase
	venues     input.VenueUseCase
	signups    input.SignupUseCase
	translator output.T
	validate   *validator.Validate
	ping       func(context.Context) error
}

// Deps groups what NewHandler needs. Ping backs /healthz and may be nil.
type Deps struct {
	Auth       input.AuthUseCase
	Events     input.EventUseCase
	Venues     input.VenueUseCase
	Signups    input.SignupUseCase
	Translator output.T
	Ping       func(context.Context) error
}

func NewHandler(d Deps) *Handler {
	ping := d.Ping
	if ping == nil {
		ping = func(context.Context) error { return nil }
	}
	return &Handler{
		auth:       d.Auth,
		events:     d.Events,
		venues:     d.Venues,
		signups:    d.Signups,
		translator: d.Translator,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		ping:       ping,
	}
}

// decode reads a JSON body into dst and validates it.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := h.validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return nil
}

func pathID(r *http.Request, name string) (uint, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", domain.ErrValidation, name, raw)
	}
	return uint(id), nil
}

type identityKey struct{}

func withIdentity(ctx context.Context, id input.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// identityFrom returns the caller set by requireAuth.
func identityFrom(ctx context.Context) (input.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(input.Identity)
	return id, ok
}

func callerID(r *http.Request) uint {
	id, _ := identityFrom(r.Context())
	return id.UserID
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
