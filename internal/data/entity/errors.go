package entity

import "errors"

// Business rule violations surfaced to callers as 4xx. Messages are the
// exact strings shown to API clients.
var (
	ErrDuplicateSession  = errors.New("Session with the same attributes already exists.")
	ErrSessionConflict   = errors.New("This session conflicts with an existing session.")
	ErrSessionLocked     = errors.New("Cannot update session with purchased tickets.")
	ErrHallLocked        = errors.New("Cannot update hall with purchased tickets.")
	ErrInvalidAmount     = errors.New("Amount must be greater than 0.")
	ErrInsufficientSeats = errors.New("Rest of seats must be greater than amount.")
	ErrTimeOrder         = errors.New("Start time must be less than end time.")
	ErrDateOrder         = errors.New("Start date must be less than end date.")
)

// BusinessErrors lists every rule violation that maps to a 400 response.
var BusinessErrors = []error{
	ErrDuplicateSession,
	ErrSessionConflict,
	ErrSessionLocked,
	ErrHallLocked,
	ErrInvalidAmount,
	ErrInsufficientSeats,
	ErrTimeOrder,
	ErrDateOrder,
}
