package core

import "errors"

var (
	// ErrUnknownModule marks a module name with no registered handler.
	ErrUnknownModule = errors.New("unknown module")

	// ErrStorage marks a context store failure. Callers treat it as
	// best-effort: log and keep the computed response.
	ErrStorage = errors.New("storage unavailable")

	// ErrInvalidFeedback marks a feedback submission that violated the
	// canonical schema.
	ErrInvalidFeedback = errors.New("invalid feedback schema")
)
