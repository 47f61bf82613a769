package models

import (
	"errors"
	"fmt"
)

// Scheduling error taxonomy. Every failure is recoverable at the call
// boundary: state is left untouched and the caller gets the specific reason.
var (
	ErrInvalidRange      = errors.New("interval end must be after its start")
	ErrPastSlot          = errors.New("slot start has already elapsed")
	ErrNotOwner          = errors.New("action is restricted to the schedule owner")
	ErrNotFound          = errors.New("appointment not found")
	ErrNoMatchingSlot    = errors.New("no open slot matches the suggestion")
	ErrOracleUnavailable = errors.New("suggestion oracle unavailable")
	ErrOracleUnparseable = errors.New("suggestion text could not be interpreted")
)

// ConflictError reports a collision with an already stored appointment.
type ConflictError struct {
	ConflictID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("requested range overlaps appointment %s", e.ConflictID)
}
