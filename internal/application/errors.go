package application

import "errors"

var (
	// ErrInvalidCredential is returned by Login when no record matches.
	ErrInvalidCredential = errors.New("invalid username or password")

	// ErrExpiredCredential is returned by Login when the submitted pair
	// matched a record that had just aged out and was purged. Surfaced
	// distinctly so callers can prompt for a new credential instead of a
	// password retry.
	ErrExpiredCredential = errors.New("credential expired")

	// ErrSessionStale is returned by ValidateSession when the session's
	// credential is gone or expired. The session has already been destroyed.
	ErrSessionStale = errors.New("session credential missing or expired")

	// ErrSectionTimeout is returned by EnterVIPSection when the dwell window
	// has passed. The session has already been destroyed.
	ErrSectionTimeout = errors.New("vip section time exceeded")

	// ErrMissingFields is returned by the issuing flows when a required input
	// field is absent.
	ErrMissingFields = errors.New("missing required fields")
)
