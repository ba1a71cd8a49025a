package evaluation

import "errors"

var (
	ErrEvaluationNotFound = errors.New("evaluation not found")
	ErrInvalidMonth       = errors.New("invalid month key")
	ErrInvalidScore       = errors.New("score must be between 0 and 100")
)
