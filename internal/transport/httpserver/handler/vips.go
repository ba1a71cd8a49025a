package handler

import (
	"errors"
	"net/http"

	memberdomain "tenf-admin-go/internal/domain/member"
	vipdomain "tenf-admin-go/internal/domain/vip"
	"github.com/go-chi/chi/v5"
)

type vipActionRequest struct {
	Reason string `json:"reason" validate:"max=2000"`
}

func (h *Handlers) GrantVip(w http.ResponseWriter, r *http.Request) {
	h.recordVip(w, r, true)
}

func (h *Handlers) RevokeVip(w http.ResponseWriter, r *http.Request) {
	h.recordVip(w, r, false)
}

func (h *Handlers) recordVip(w http.ResponseWriter, r *http.Request, grant bool) {
	login := chi.URLParam(r, "login")

	var req vipActionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var entry *vipdomain.HistoryEntry
	var err error
	if grant {
		entry, err = h.Vips.Grant(r.Context(), login, req.Reason)
	} else {
		entry, err = h.Vips.Revoke(r.Context(), login, req.Reason)
	}
	if err != nil {
		switch {
		case errors.Is(err, memberdomain.ErrMemberNotFound):
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
		case errors.Is(err, vipdomain.ErrAlreadyVip):
			writeError(w, http.StatusConflict, "already_vip", "member is already vip")
		case errors.Is(err, vipdomain.ErrNotVip):
			writeError(w, http.StatusConflict, "not_vip", "member is not vip")
		case errors.Is(err, memberdomain.ErrInvalidLogin):
			writeError(w, http.StatusBadRequest, "invalid_login", "invalid twitch login")
		default:
			h.log.InternalError("vips.record: failed", err, "login", login)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (h *Handlers) ListVipHistory(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")

	limit, offset, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	history, err := h.Vips.History(r.Context(), login, limit, offset)
	if err != nil {
		if errors.Is(err, memberdomain.ErrInvalidLogin) {
			writeError(w, http.StatusBadRequest, "invalid_login", "invalid twitch login")
			return
		}
		h.log.InternalError("vips.history: query failed", err, "login", login)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, history)
}
