package member

import "errors"

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrLoginTaken     = errors.New("twitch login already registered")
	ErrInvalidLogin   = errors.New("invalid twitch login")
	ErrInvalidRole    = errors.New("invalid role")
)
