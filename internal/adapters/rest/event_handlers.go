package rest

import (
	"net/http"

	"openmic/internal/ports/input"
)

func (h *Handler) createVenue(w http.ResponseWriter, r *http.Request) {
	var req venueRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	venue, err := h.venues.CreateVenue(r.Context(), callerID(r), input.VenueInput{
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		Description: req.Description,
		Capacity:    req.Capacity,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toVenueResponse(venue))
}

func (h *Handler) listVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := h.venues.ListVenues(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(venues, toVenueResponse))
}

func (h *Handler) getVenue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	venue, err := h.venues.GetVenue(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toVenueResponse(venue))
}

func (h *Handler) createEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	event, err := h.events.CreateEvent(r.Context(), callerID(r), input.EventInput{
		VenueID:        req.VenueID,
		Title:          req.Title,
		Description:    req.Description,
		StartsAt:       req.StartsAt,
		MaxPerformers:  req.MaxPerformers,
		SignupOpens:    timeOrZero(req.SignupOpens),
		SignupDeadline: timeOrZero(req.SignupDeadline),
		Status:         req.Status,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEventResponse(event))
}

// listEvents serves GET /api/events; ?host=me restricts to the caller's events
// and requires a valid token.
func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("host") == "me" {
		h.requireAuth(h.listMyEvents)(w, r)
		return
	}
	events, err := h.events.ListEvents(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(events, toEventResponse))
}

func (h *Handler) listMyEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.ListEventsByHost(r.Context(), callerID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(events, toEventResponse))
}

func (h *Handler) getEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	event, err := h.events.GetEvent(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(event))
}

func (h *Handler) updateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req updateEventRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	event, err := h.events.UpdateEvent(r.Context(), callerID(r), id, input.EventUpdate{
		Title:          req.Title,
		Description:    req.Description,
		StartsAt:       req.StartsAt,
		MaxPerformers:  req.MaxPerformers,
		SignupOpens:    req.SignupOpens,
		SignupDeadline: req.SignupDeadline,
		Status:         req.Status,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(event))
}

func (h *Handler) sendInvitations(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req invitationsRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	err = h.events.SendInvitations(r.Context(), callerID(r), id, req.Emails, req.Message, r.Header.Get("Accept-Language"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) sendReminders(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	sent, err := h.events.SendReminders(r.Context(), callerID(r), id, r.Header.Get("Accept-Language"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, remindersResponse{Sent: sent})
}
