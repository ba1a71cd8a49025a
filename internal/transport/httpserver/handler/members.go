package handler

import (
	"errors"
	"net/http"
	"time"

	memberdomain "tenf-admin-go/internal/domain/member"
	"github.com/go-chi/chi/v5"
)

type createMemberRequest struct {
	TwitchLogin string `json:"twitch_login" validate:"required,min=2,max=64"`
	DisplayName string `json:"display_name" validate:"max=128"`
	Role        string `json:"role" validate:"omitempty,oneof=member moderator admin"`
	JoinedAt    string `json:"joined_at" validate:"omitempty,datetime=2006-01-02"`
}

type updateMemberRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,max=128"`
	Role        *string `json:"role" validate:"omitempty,oneof=member moderator admin"`
	IsVip       *bool   `json:"is_vip"`
	IsActive    *bool   `json:"is_active"`
}

type matchLoginsRequest struct {
	Logins []string `json:"logins" validate:"required,min=1,max=500"`
}

type addBadgeRequest struct {
	Badge string `json:"badge" validate:"required,max=64"`
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	filter := memberdomain.ListFilter(r.URL.Query().Get("filter"))
	members, err := h.Members.List(r.Context(), filter, limit, offset)
	if err != nil {
		h.log.InternalError("members.list: query failed", err, "filter", string(filter))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, members)
}

func (h *Handlers) GetMember(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")

	m, err := h.Members.GetByLogin(r.Context(), login)
	if err != nil {
		switch {
		case errors.Is(err, memberdomain.ErrMemberNotFound):
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
		case errors.Is(err, memberdomain.ErrInvalidLogin):
			writeError(w, http.StatusBadRequest, "invalid_login", "invalid twitch login")
		default:
			h.log.InternalError("members.get: query failed", err, "login", login)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, m)
}

func (h *Handlers) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	input := memberdomain.CreateInput{
		TwitchLogin: req.TwitchLogin,
		DisplayName: req.DisplayName,
		Role:        req.Role,
	}
	if req.JoinedAt != "" {
		joined, err := time.Parse("2006-01-02", req.JoinedAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid joined_at")
			return
		}
		input.JoinedAt = joined
	}

	m, err := h.Members.Create(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, memberdomain.ErrLoginTaken):
			h.log.BusinessError("members.create: login taken", err, "login", req.TwitchLogin)
			writeError(w, http.StatusConflict, "login_taken", "twitch login already registered")
		case errors.Is(err, memberdomain.ErrInvalidLogin), errors.Is(err, memberdomain.ErrInvalidRole):
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		default:
			h.log.InternalError("members.create: create failed", err, "login", req.TwitchLogin)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, m)
}

func (h *Handlers) UpdateMember(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")

	var req updateMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	m, err := h.Members.Update(r.Context(), login, memberdomain.UpdateInput{
		DisplayName: req.DisplayName,
		Role:        req.Role,
		IsVip:       req.IsVip,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.writeMemberError(w, "members.update", login, err)
		return
	}

	writeJSON(w, http.StatusOK, m)
}

func (h *Handlers) DeactivateMember(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")

	m, err := h.Members.Deactivate(r.Context(), login)
	if err != nil {
		h.writeMemberError(w, "members.deactivate", login, err)
		return
	}

	writeJSON(w, http.StatusOK, m)
}

func (h *Handlers) MatchMemberLogins(w http.ResponseWriter, r *http.Request) {
	var req matchLoginsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	report, err := h.Members.MatchLogins(r.Context(), req.Logins)
	if err != nil {
		h.log.InternalError("members.match: query failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (h *Handlers) AddMemberBadge(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")

	var req addBadgeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	m, err := h.Members.AddBadge(r.Context(), login, req.Badge)
	if err != nil {
		h.writeMemberError(w, "members.add_badge", login, err)
		return
	}

	writeJSON(w, http.StatusOK, m)
}

func (h *Handlers) RemoveMemberBadge(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")
	badge := chi.URLParam(r, "badge")

	m, err := h.Members.RemoveBadge(r.Context(), login, badge)
	if err != nil {
		h.writeMemberError(w, "members.remove_badge", login, err)
		return
	}

	writeJSON(w, http.StatusOK, m)
}

func (h *Handlers) writeMemberError(w http.ResponseWriter, op, login string, err error) {
	switch {
	case errors.Is(err, memberdomain.ErrMemberNotFound):
		h.log.BusinessError(op+": member not found", err, "login", login)
		writeError(w, http.StatusNotFound, "member_not_found", "member not found")
	case errors.Is(err, memberdomain.ErrInvalidLogin), errors.Is(err, memberdomain.ErrInvalidRole):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		h.log.InternalError(op+": failed", err, "login", login)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
