package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

func parsePage(r *http.Request) (limit, offset int, err error) {
	limit, err = parseIntParam(r.URL.Query().Get("limit"), 0)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid limit")
	}
	offset, err = parseIntParam(r.URL.Query().Get("offset"), 0)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid offset")
	}
	return limit, offset, nil
}

func parseIntParam(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("invalid int")
	}
	return parsed, nil
}
