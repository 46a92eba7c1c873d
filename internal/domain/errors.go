package domain

import "errors"

var (
	// ErrInvalidDuration is returned when a session is started with a non-positive duration.
	ErrInvalidDuration = errors.New("duration must be greater than zero")

	// ErrSessionAlreadyActive is returned when the owner already has a processing session.
	ErrSessionAlreadyActive = errors.New("a sterilization session is already running")

	// ErrNotRunning signals a stop request for a session that is not processing.
	// Callers surface it as a warning; the session is left untouched.
	ErrNotRunning = errors.New("no sterilization session is running")

	// ErrMissingTimestamp marks an activity record without any usable timestamp.
	ErrMissingTimestamp = errors.New("activity record has no timestamp")
)
