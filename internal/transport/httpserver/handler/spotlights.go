package handler

import (
	"errors"
	"net/http"

	memberdomain "tenf-admin-go/internal/domain/member"
	spotlightdomain "tenf-admin-go/internal/domain/spotlight"
	"github.com/go-chi/chi/v5"
)

type createSpotlightRequest struct {
	TwitchLogin string `json:"twitch_login" validate:"required,max=64"`
	Title       string `json:"title" validate:"required,max=200"`
	CreatedBy   string `json:"created_by" validate:"required,max=64"`
}

type spotlightEvaluationRequest struct {
	Evaluator string `json:"evaluator" validate:"required,max=64"`
	Score     int    `json:"score" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"max=2000"`
}

func (h *Handlers) GetActiveSpotlight(w http.ResponseWriter, r *http.Request) {
	sp, err := h.Spotlights.Active(r.Context())
	if err != nil {
		if errors.Is(err, spotlightdomain.ErrSpotlightNotFound) {
			writeError(w, http.StatusNotFound, "no_active_spotlight", "no active spotlight")
			return
		}
		h.log.InternalError("spotlights.active: query failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, sp)
}

func (h *Handlers) ListSpotlights(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	spotlights, err := h.Spotlights.List(r.Context(), limit, offset)
	if err != nil {
		h.log.InternalError("spotlights.list: query failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, spotlights)
}

func (h *Handlers) CreateSpotlight(w http.ResponseWriter, r *http.Request) {
	var req createSpotlightRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	sp, err := h.Spotlights.Create(r.Context(), spotlightdomain.CreateInput{
		TwitchLogin: req.TwitchLogin,
		Title:       req.Title,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		switch {
		case errors.Is(err, spotlightdomain.ErrSpotlightActive):
			h.log.BusinessError("spotlights.create: overlap rejected", err, "login", req.TwitchLogin)
			writeError(w, http.StatusConflict, "spotlight_active", "a spotlight is already active")
		case errors.Is(err, memberdomain.ErrInvalidLogin):
			writeError(w, http.StatusBadRequest, "invalid_login", "invalid twitch login")
		default:
			h.log.InternalError("spotlights.create: create failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, sp)
}

func (h *Handlers) CloseSpotlight(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sp, err := h.Spotlights.Close(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, spotlightdomain.ErrSpotlightNotFound):
			writeError(w, http.StatusNotFound, "spotlight_not_found", "spotlight not found")
		case errors.Is(err, spotlightdomain.ErrSpotlightClosed):
			writeError(w, http.StatusConflict, "spotlight_closed", "spotlight already closed")
		default:
			h.log.InternalError("spotlights.close: close failed", err, "spotlight_id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, sp)
}

func (h *Handlers) ListSpotlightEvaluations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	evaluations, err := h.Spotlights.Evaluations(r.Context(), id)
	if err != nil {
		h.writeSpotlightError(w, "spotlights.evaluations", id, err)
		return
	}

	writeJSON(w, http.StatusOK, evaluations)
}

func (h *Handlers) EvaluateSpotlight(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req spotlightEvaluationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	e, err := h.Spotlights.Evaluate(r.Context(), id, req.Evaluator, req.Score, req.Comment)
	if err != nil {
		if errors.Is(err, spotlightdomain.ErrInvalidScore) {
			writeError(w, http.StatusBadRequest, "invalid_score", err.Error())
			return
		}
		h.writeSpotlightError(w, "spotlights.evaluate", id, err)
		return
	}

	writeJSON(w, http.StatusCreated, e)
}

func (h *Handlers) writeSpotlightError(w http.ResponseWriter, op, id string, err error) {
	switch {
	case errors.Is(err, spotlightdomain.ErrSpotlightNotFound):
		writeError(w, http.StatusNotFound, "spotlight_not_found", "spotlight not found")
	case errors.Is(err, memberdomain.ErrInvalidLogin):
		writeError(w, http.StatusBadRequest, "invalid_login", "invalid twitch login")
	default:
		h.log.InternalError(op+": failed", err, "spotlight_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
