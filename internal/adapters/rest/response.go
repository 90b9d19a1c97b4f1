package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"openmic/internal/domain"
)

const internalErrorCode = "internal"

type errorBody struct {
	Error errorPayload `json:"error"`
}

type errorPayload struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("rest: encode response", "error", err)
	}
}

// statusFor maps a domain error kind to its HTTP status.
func statusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation, domain.KindRule:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err with a message localized from the request's
// Accept-Language. Unknown errors are logged and answered with a generic 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := domain.Code(err)
	if status == http.StatusInternalServerError {
		slog.Error("rest: request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		code = internalErrorCode
	}
	payload := errorPayload{
		Code:    code,
		Message: h.translator.T(r.Header.Get("Accept-Language"), "error."+code, nil),
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			payload.Fields = append(payload.Fields, fieldError{Field: fe.Field(), Rule: fe.Tag()})
		}
	}
	writeJSON(w, status, errorBody{Error: payload})
}
