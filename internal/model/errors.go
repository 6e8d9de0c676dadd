package model

import "errors"

// Engine error taxonomy. Services wrap these with context via
// fmt.Errorf("...: %w", ...); the transport layer matches with
// errors.Is to pick status codes.
var (
	// ErrNotFound signals an unknown session, question or result.
	ErrNotFound = errors.New("not found")

	// ErrSequence signals an answer submitted out of pointer order.
	ErrSequence = errors.New("answer out of sequence")

	// ErrConflict signals a duplicate active session without an
	// explicit replace.
	ErrConflict = errors.New("active session already exists")

	// ErrValidation signals a selection outside the declared options
	// or rating range.
	ErrValidation = errors.New("invalid selection")

	// ErrSessionClosed signals an operation against a completed or
	// abandoned session. Terminal states never transition back.
	ErrSessionClosed = errors.New("session is no longer active")

	// ErrConfiguration signals an invalid catalog/norms bundle.
	// Fatal at startup, never surfaced per-request.
	ErrConfiguration = errors.New("invalid engine configuration")
)
