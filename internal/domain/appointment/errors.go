package appointment

import "errors"

var (
	ErrNotFound                = errors.New("appointment not found")
	ErrConflict                = errors.New("appointment time slot conflicts with an existing appointment for this doctor")
	ErrScheduledInPast         = errors.New("appointments must be scheduled for a future date and time")
	ErrInvalidStatusTransition = errors.New("invalid appointment status transition")
	ErrInvalidTimeFormat       = errors.New("appointment time must use HH:MM 24-hour format")
	ErrInvalidDateFormat       = errors.New("dates must use YYYY-MM-DD format")
)
