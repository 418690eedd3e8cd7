package service

import "errors"

var (
	// ErrMalformedChange marks a change record that failed ingest validation.
	ErrMalformedChange = errors.New("malformed change record")

	// ErrSessionInProgress is returned when a sync session is requested for
	// a user who already holds the per-user session lock.
	ErrSessionInProgress = errors.New("sync session already in progress")

	// ErrApplyFailed is returned when the domain collaborator rejects a
	// clean record even after bounded retries.
	ErrApplyFailed = errors.New("failed to apply change to domain state")

	// ErrResolutionIncomplete is returned when a MANUAL resolution arrives
	// without the required winning payload.
	ErrResolutionIncomplete = errors.New("resolution is missing required data")

	// ErrAlreadyResolved is returned when a resolution targets a conflict
	// that is no longer pending.
	ErrAlreadyResolved = errors.New("conflict is already resolved")

	// ErrUnknownStrategy is returned when a resolution request names a
	// strategy outside the supported set.
	ErrUnknownStrategy = errors.New("unknown resolution strategy")

	// ErrNoUserID is returned when an operation reaches the service layer
	// without an authenticated user identifier.
	ErrNoUserID = errors.New("no user ID was given")
)
