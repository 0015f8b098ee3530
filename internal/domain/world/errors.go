package world

import "errors"

var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrInvalidOperation    = errors.New("invalid operation")
	ErrMissingCapability   = errors.New("missing capability")
	ErrInvalidDirection    = errors.New("invalid direction")
	ErrUnsupportedAction   = errors.New("unsupported action")
	ErrTooManyActions      = errors.New("too many actions")
	ErrNoObservations      = errors.New("at least one observation required")
	ErrTooManyObservations = errors.New("too many observations")
)
