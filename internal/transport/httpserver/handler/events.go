package handler

import (
	"errors"
	"net/http"
	"time"

	eventdomain "tenf-admin-go/internal/domain/event"
	memberdomain "tenf-admin-go/internal/domain/member"
	"github.com/go-chi/chi/v5"
)

type createEventRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"max=4000"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	CreatedBy   string    `json:"created_by" validate:"required,max=64"`
}

type updateEventRequest struct {
	Title       *string    `json:"title" validate:"omitempty,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=4000"`
	StartsAt    *time.Time `json:"starts_at"`
	Published   *bool      `json:"published"`
}

type registrationRequest struct {
	TwitchLogin string `json:"twitch_login" validate:"required,max=64"`
}

type presenceRequest struct {
	TwitchLogin string `json:"twitch_login" validate:"required,max=64"`
	Present     bool   `json:"present"`
}

func (h *Handlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var events []eventdomain.Event
	if r.URL.Query().Get("published") == "true" {
		events, err = h.Events.ListPublished(r.Context(), limit, offset)
	} else {
		events, err = h.Events.ListAll(r.Context(), limit, offset)
	}
	if err != nil {
		h.log.InternalError("events.list: query failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, events)
}

func (h *Handlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	e, err := h.Events.Get(r.Context(), id)
	if err != nil {
		h.writeEventError(w, "events.get", id, err)
		return
	}

	writeJSON(w, http.StatusOK, e)
}

func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	e, err := h.Events.Create(r.Context(), eventdomain.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		h.log.InternalError("events.create: create failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, e)
}

func (h *Handlers) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	e, err := h.Events.Update(r.Context(), id, eventdomain.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		Published:   req.Published,
	})
	if err != nil {
		h.writeEventError(w, "events.update", id, err)
		return
	}

	writeJSON(w, http.StatusOK, e)
}

func (h *Handlers) PublishEvent(w http.ResponseWriter, r *http.Request) {
	h.setEventPublished(w, r, true)
}

func (h *Handlers) UnpublishEvent(w http.ResponseWriter, r *http.Request) {
	h.setEventPublished(w, r, false)
}

func (h *Handlers) setEventPublished(w http.ResponseWriter, r *http.Request, published bool) {
	id := chi.URLParam(r, "id")

	e, err := h.Events.SetPublished(r.Context(), id, published)
	if err != nil {
		h.writeEventError(w, "events.publish", id, err)
		return
	}

	writeJSON(w, http.StatusOK, e)
}

func (h *Handlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Events.Delete(r.Context(), id); err != nil {
		h.writeEventError(w, "events.delete", id, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListEventRegistrations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	regs, err := h.Events.Registrations(r.Context(), id)
	if err != nil {
		h.writeEventError(w, "events.registrations", id, err)
		return
	}

	writeJSON(w, http.StatusOK, regs)
}

func (h *Handlers) RegisterForEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req registrationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	reg, err := h.Events.Register(r.Context(), id, req.TwitchLogin)
	if err != nil {
		switch {
		case errors.Is(err, eventdomain.ErrAlreadyRegistered):
			writeError(w, http.StatusConflict, "already_registered", "already registered")
		case errors.Is(err, eventdomain.ErrNotPublished):
			writeError(w, http.StatusConflict, "event_not_published", "event not published")
		default:
			h.writeEventError(w, "events.register", id, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, reg)
}

func (h *Handlers) UnregisterFromEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	login := chi.URLParam(r, "login")

	if err := h.Events.Unregister(r.Context(), id, login); err != nil {
		if errors.Is(err, eventdomain.ErrRegistrationNotFound) {
			writeError(w, http.StatusNotFound, "registration_not_found", "registration not found")
			return
		}
		h.writeEventError(w, "events.unregister", id, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListEventPresences(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	presences, err := h.Events.Presences(r.Context(), id)
	if err != nil {
		h.writeEventError(w, "events.presences", id, err)
		return
	}

	writeJSON(w, http.StatusOK, presences)
}

func (h *Handlers) SetEventPresence(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req presenceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	p, err := h.Events.SetPresence(r.Context(), id, req.TwitchLogin, req.Present)
	if err != nil {
		h.writeEventError(w, "events.set_presence", id, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) writeEventError(w http.ResponseWriter, op, id string, err error) {
	switch {
	case errors.Is(err, eventdomain.ErrEventNotFound):
		h.log.BusinessError(op+": event not found", err, "event_id", id)
		writeError(w, http.StatusNotFound, "event_not_found", "event not found")
	case errors.Is(err, memberdomain.ErrInvalidLogin):
		writeError(w, http.StatusBadRequest, "invalid_login", "invalid twitch login")
	default:
		h.log.InternalError(op+": failed", err, "event_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
