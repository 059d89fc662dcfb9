package domain

import "errors"

// Sentinel errors for the request-level error taxonomy. Handlers map
// these to HTTP status codes in one place.
var (
	// ErrNotFound is returned when a record does not exist, or when the
	// requester may not know that it exists.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when an authenticated requester lacks
	// ownership or role for the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthenticated is returned when a gated operation is attempted
	// without valid credentials.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrInvalidPage is returned for page numbers below 1 or beyond the
	// last page of a non-empty result set.
	ErrInvalidPage = errors.New("invalid page")

	// ErrSlugConflict is returned when slug disambiguation exhausts its
	// retry budget.
	ErrSlugConflict = errors.New("slug conflict")

	// ErrUsernameTaken is returned when registering with an existing
	// username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials is returned on login with a wrong username
	// or password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
