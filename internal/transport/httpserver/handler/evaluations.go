package handler

import (
	"errors"
	"net/http"

	evaluationdomain "tenf-admin-go/internal/domain/evaluation"
	memberdomain "tenf-admin-go/internal/domain/member"
	"github.com/go-chi/chi/v5"
)

type scoreRequest struct {
	Score int    `json:"score" validate:"min=0,max=100"`
	Notes string `json:"notes" validate:"max=2000"`
}

func (h *Handlers) ListEvaluations(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")

	limit, offset, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	evaluations, err := h.Evaluations.History(r.Context(), login, limit, offset)
	if err != nil {
		h.writeEvaluationError(w, "evaluations.list", login, err)
		return
	}

	writeJSON(w, http.StatusOK, evaluations)
}

func (h *Handlers) GetEvaluationAverage(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")

	average, count, err := h.Evaluations.Average(r.Context(), login)
	if err != nil {
		h.writeEvaluationError(w, "evaluations.average", login, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"twitch_login": memberdomain.NormalizeLogin(login),
		"average":      average,
		"count":        count,
	})
}

func (h *Handlers) ScoreEvaluation(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")
	month := chi.URLParam(r, "month")

	var req scoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	e, err := h.Evaluations.Score(r.Context(), login, month, req.Score, req.Notes)
	if err != nil {
		h.writeEvaluationError(w, "evaluations.score", login, err)
		return
	}

	writeJSON(w, http.StatusOK, e)
}

func (h *Handlers) DeleteEvaluation(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")
	month := chi.URLParam(r, "month")

	if err := h.Evaluations.Delete(r.Context(), login, month); err != nil {
		if errors.Is(err, evaluationdomain.ErrEvaluationNotFound) {
			writeError(w, http.StatusNotFound, "evaluation_not_found", "evaluation not found")
			return
		}
		h.writeEvaluationError(w, "evaluations.delete", login, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) writeEvaluationError(w http.ResponseWriter, op, login string, err error) {
	switch {
	case errors.Is(err, evaluationdomain.ErrInvalidMonth),
		errors.Is(err, evaluationdomain.ErrInvalidScore),
		errors.Is(err, memberdomain.ErrInvalidLogin):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		h.log.InternalError(op+": failed", err, "login", login)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
