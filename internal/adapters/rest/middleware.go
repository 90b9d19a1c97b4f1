package rest

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"openmic/internal/domain"
	"openmic/internal/monitoring"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

// observe logs every request and records its latency.
func observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)

		route := routeTemplate(r)
		monitoring.TrackRequest(route, r.Method, rec.status, elapsed)
		slog.Info("http request",
			"method", r.Method,
			"route", route,
			"status", rec.status,
			"duration_ms", elapsed.Milliseconds(),
		)
	})
}

// recoverPanics turns a handler panic into a 500.
func (h *Handler) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				slog.Error("rest: panic", "path", r.URL.Path, "panic", v)
				h.writeError(w, r, domain.ErrInternal)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// requireAuth resolves the bearer token into the caller identity.
func (h *Handler) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			h.writeError(w, r, domain.ErrUnauthorized)
			return
		}
		id, err := h.auth.Authenticate(r.Context(), strings.TrimSpace(token))
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		next(w, r.WithContext(withIdentity(r.Context(), id)))
	}
}
