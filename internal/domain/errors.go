package domain

import "errors"

var (
	// ErrUnknownActivity is returned when starting a match for an activity ID
	// that is not registered.
	ErrUnknownActivity = errors.New("unknown activity")
	// ErrNoActiveMatch is returned when a game command arrives with no match
	// in progress.
	ErrNoActiveMatch = errors.New("no active match")
	// ErrMatchInProgress is returned when starting a match while another one
	// is still running.
	ErrMatchInProgress = errors.New("match already in progress")
	// ErrContentNotFound indicates the question content could not be loaded.
	ErrContentNotFound = errors.New("content not found")
)
