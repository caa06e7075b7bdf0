package models

import "errors"

// Custom errors
var (
	ErrInvalidPrice          = errors.New("invalid decimal price")
	ErrInvalidProbability    = errors.New("model probability must be within [0, 1]")
	ErrMissingProbability    = errors.New("model probability is missing")
	ErrEmptyTicket           = errors.New("ticket has no legs")
	ErrDuplicateLeg          = errors.New("duplicate leg in ticket")
	ErrEmptyPool             = errors.New("no legs pass the edge ratio filter")
	ErrDuplicateLegID        = errors.New("leg id already on slate")
	ErrConstraintUnreachable = errors.New("no ticket meets the builder constraint within max legs")
)
