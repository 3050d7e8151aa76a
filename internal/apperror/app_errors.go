package apperror

import "errors"

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrSessionRequired = errors.New("session id is required")
	ErrOutOfBounds     = errors.New("cell is out of bounds")
)
