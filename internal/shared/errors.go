package shared

import "errors"

var (
	// ErrNotFound indicates the resource does not exist on the service of record.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates malformed or missing input, detected before any remote call.
	ErrValidation = errors.New("validation failed")
	// ErrPrecondition indicates a required prior step was not completed.
	ErrPrecondition = errors.New("precondition not met")
	// ErrInvalidState indicates an operation attempted from a lifecycle state that forbids it.
	ErrInvalidState = errors.New("invalid state")
	// ErrRemote indicates the service of record rejected or failed to complete a request.
	ErrRemote = errors.New("remote service failure")
)
