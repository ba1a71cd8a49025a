package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	twitchdomain "tenf-admin-go/internal/domain/twitch"
)

const (
	headerMessageID   = "Twitch-Eventsub-Message-Id"
	headerTimestamp   = "Twitch-Eventsub-Message-Timestamp"
	headerSignature   = "Twitch-Eventsub-Message-Signature"
	headerMessageType = "Twitch-Eventsub-Message-Type"

	maxWebhookBody = 1 << 20
)

// TwitchEventSub receives EventSub deliveries: verifies the HMAC
// signature, answers verification challenges, stores notifications.
func (h *Handlers) TwitchEventSub(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "cannot read body")
		return
	}

	messageID := r.Header.Get(headerMessageID)
	timestamp := r.Header.Get(headerTimestamp)
	signature := r.Header.Get(headerSignature)
	messageType := r.Header.Get(headerMessageType)

	var payload struct {
		Challenge    string `json:"challenge"`
		Subscription struct {
			Type string `json:"type"`
		} `json:"subscription"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid json body")
		return
	}

	eventType := payload.Subscription.Type
	if eventType == "" {
		eventType = messageType
	}

	_, err = h.Twitch.Ingest(r.Context(), messageID, timestamp, eventType, body, signature)
	if err != nil {
		switch {
		case errors.Is(err, twitchdomain.ErrBadSignature):
			h.log.Warn("webhooks.twitch: signature mismatch", "message_id", messageID)
			writeError(w, http.StatusForbidden, "bad_signature", "signature mismatch")
		case errors.Is(err, twitchdomain.ErrNoSecret):
			h.log.Error("webhooks.twitch: secret not configured")
			writeError(w, http.StatusInternalServerError, "webhook_not_configured", "webhook not configured")
		default:
			h.log.InternalError("webhooks.twitch: ingest failed", err, "message_id", messageID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	if messageType == twitchdomain.MessageTypeVerification {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(payload.Challenge))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListWebhookEvents(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	events, err := h.Twitch.Recent(r.Context(), limit, offset)
	if err != nil {
		h.log.InternalError("webhooks.list: query failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, events)
}
