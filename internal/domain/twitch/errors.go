package twitch

import "errors"

var (
	ErrBadSignature = errors.New("eventsub signature mismatch")
	ErrNoSecret     = errors.New("eventsub secret not configured")
)
