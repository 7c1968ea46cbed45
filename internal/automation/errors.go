package automation

import "errors"

var (
	// ErrInvalidPayload wraps every payload validation failure.
	ErrInvalidPayload = errors.New("invalid form payload")

	// ErrSidecar means the sidecar could not be run or reported failure.
	ErrSidecar = errors.New("form automation failed")

	// ErrNoSidecar is returned when no sidecar executable is configured.
	ErrNoSidecar = errors.New("no form automation sidecar configured")
)
