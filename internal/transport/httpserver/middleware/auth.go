package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"tenf-admin-go/internal/config"
	"tenf-admin-go/pkg/logger"
)

// AdminAuth gates the back-office routes behind a static bearer token.
type AdminAuth struct {
	token string
	log   logger.Logger
}

func NewAdminAuth(cfg config.AuthConfig, log logger.Logger) *AdminAuth {
	return &AdminAuth{token: strings.TrimSpace(cfg.AdminToken), log: log}
}

func (a *AdminAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.token == "" {
			writeError(w, http.StatusInternalServerError, "auth_not_configured", "admin token not configured")
			return
		}

		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			a.log.Warn("auth: rejected request", "path", r.URL.Path)
			unauthorized(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]map[string]string{
		"error": {"code": code, "message": message},
	})
}
