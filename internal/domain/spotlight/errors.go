package spotlight

import "errors"

var (
	ErrSpotlightNotFound = errors.New("spotlight not found")
	ErrSpotlightActive   = errors.New("a spotlight is already active")
	ErrSpotlightClosed   = errors.New("spotlight already closed")
	ErrInvalidScore      = errors.New("score must be between 1 and 5")
)
