package rest

import (
	"net/http"

	"openmic/internal/domain"
	"openmic/internal/domain/entities"
	"openmic/internal/monitoring"
	"openmic/internal/ports/input"
)

func trackSignup(op string, err error) {
	result := "ok"
	if err != nil {
		result = domain.Code(err)
		if result == "" {
			result = "error"
		}
	}
	monitoring.TrackSignupOperation(op, result)
}

func (h *Handler) createSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	signup, err := h.signups.Register(r.Context(), input.RegisterSignup{
		EventID:         req.EventID,
		UserID:          callerID(r),
		PerformanceName: req.PerformanceName,
		PerformanceType: req.PerformanceType,
		Notes:           req.Notes,
	})
	trackSignup("register", err)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSignupResponse(signup))
}

func (h *Handler) mySignups(w http.ResponseWriter, r *http.Request) {
	signups, err := h.signups.ListForUser(r.Context(), callerID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(signups, toSignupResponse))
}

func (h *Handler) eventSignups(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "eventId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	signups, err := h.signups.ListOrdered(r.Context(), eventID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(signups, toSignupResponse))
}

func (h *Handler) reorderSignups(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "eventId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req reorderRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	signups, err := h.signups.Reorder(r.Context(), callerID(r), eventID, req.SignupIDs)
	trackSignup("reorder", err)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(signups, toSignupResponse))
}

func (h *Handler) addPerformer(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "eventId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req manualPerformerRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	signup, err := h.signups.AddManual(r.Context(), callerID(r), input.ManualPerformer{
		EventID:         eventID,
		PerformerName:   req.PerformerName,
		PerformanceName: req.PerformanceName,
		PerformanceType: req.PerformanceType,
		Notes:           req.Notes,
	})
	trackSignup("add_manual", err)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSignupResponse(signup))
}

func (h *Handler) cancelOwnSignup(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "eventId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	err = h.signups.Cancel(r.Context(), eventID, callerID(r))
	trackSignup("cancel", err)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) cancelSignup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	err = h.signups.CancelByID(r.Context(), callerID(r), id)
	trackSignup("cancel", err)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// signupAction adapts a host operation on a single signup to a handler.
func (h *Handler) signupAction(op string, fn func(r *http.Request, callerID, signupID uint) (*entities.Signup, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		signup, err := fn(r, callerID(r), id)
		trackSignup(op, err)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toSignupResponse(signup))
	}
}

func (h *Handler) finishSignup(r *http.Request, callerID, signupID uint) (*entities.Signup, error) {
	return h.signups.MarkFinished(r.Context(), callerID, signupID)
}

func (h *Handler) unfinishSignup(r *http.Request, callerID, signupID uint) (*entities.Signup, error) {
	return h.signups.UnmarkFinished(r.Context(), callerID, signupID)
}

func (h *Handler) setCurrentPerformer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req currentPerformerRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	signup, err := h.signups.SetCurrentPerformer(r.Context(), callerID(r), id, *req.Current)
	trackSignup("set_current", err)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSignupResponse(signup))
}
