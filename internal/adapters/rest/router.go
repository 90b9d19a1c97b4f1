package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"openmic/internal/monitoring"
)

// NewRouter registers every API route on a gorilla/mux router.
func NewRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	router.Use(observe, h.recoverPanics)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: errorPayload{Code: "route_not_found", Message: "route not found"}})
	})

	router.HandleFunc("/healthz", h.healthz).Methods(http.MethodGet)
	router.Handle("/metrics", monitoring.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", h.register).Methods(http.MethodPost)
	auth.HandleFunc("/login", h.login).Methods(http.MethodPost)
	auth.HandleFunc("/logout", h.requireAuth(h.logout)).Methods(http.MethodPost)
	auth.HandleFunc("/forgot-password", h.forgotPassword).Methods(http.MethodPost)
	auth.HandleFunc("/reset-password", h.resetPassword).Methods(http.MethodPost)
	auth.HandleFunc("/me", h.requireAuth(h.me)).Methods(http.MethodGet)

	api.HandleFunc("/venues", h.requireAuth(h.createVenue)).Methods(http.MethodPost)
	api.HandleFunc("/venues", h.listVenues).Methods(http.MethodGet)
	api.HandleFunc("/venues/{id:[0-9]+}", h.getVenue).Methods(http.MethodGet)

	api.HandleFunc("/events", h.requireAuth(h.createEvent)).Methods(http.MethodPost)
	api.HandleFunc("/events", h.listEvents).Methods(http.MethodGet)
	api.HandleFunc("/events/{id:[0-9]+}", h.getEvent).Methods(http.MethodGet)
	api.HandleFunc("/events/{id:[0-9]+}", h.requireAuth(h.updateEvent)).Methods(http.MethodPut)
	api.HandleFunc("/events/{id:[0-9]+}/invitations", h.requireAuth(h.sendInvitations)).Methods(http.MethodPost)
	api.HandleFunc("/events/{id:[0-9]+}/reminders", h.requireAuth(h.sendReminders)).Methods(http.MethodPost)

	signups := api.PathPrefix("/signups").Subrouter()
	signups.HandleFunc("", h.requireAuth(h.createSignup)).Methods(http.MethodPost)
	signups.HandleFunc("/mine", h.requireAuth(h.mySignups)).Methods(http.MethodGet)
	signups.HandleFunc("/event/{eventId:[0-9]+}", h.eventSignups).Methods(http.MethodGet)
	signups.HandleFunc("/event/{eventId:[0-9]+}", h.requireAuth(h.cancelOwnSignup)).Methods(http.MethodDelete)
	signups.HandleFunc("/event/{eventId:[0-9]+}/order", h.requireAuth(h.reorderSignups)).Methods(http.MethodPut)
	signups.HandleFunc("/event/{eventId:[0-9]+}/add-performer", h.requireAuth(h.addPerformer)).Methods(http.MethodPost)
	signups.HandleFunc("/{id:[0-9]+}", h.requireAuth(h.cancelSignup)).Methods(http.MethodDelete)
	signups.HandleFunc("/{id:[0-9]+}/finish", h.requireAuth(h.signupAction("finish", h.finishSignup))).Methods(http.MethodPut)
	signups.HandleFunc("/{id:[0-9]+}/unfinish", h.requireAuth(h.signupAction("unfinish", h.unfinishSignup))).Methods(http.MethodPut)
	signups.HandleFunc("/{id:[0-9]+}/current", h.requireAuth(h.setCurrentPerformer)).Methods(http.MethodPut)

	return router
}
