package gateway

import "errors"

var (
	// ErrBackendUnavailable means the embedding/generation backend could not
	// be reached at all. Not retried here; retry policy belongs to the caller.
	ErrBackendUnavailable = errors.New("model backend unavailable")

	// ErrMalformedResponse means the backend answered but the payload was
	// unusable (empty embedding, empty refinement).
	ErrMalformedResponse = errors.New("model backend returned malformed response")

	// ErrStreamInterrupted means a generation stream opened successfully but
	// was cut off before the backend signalled completion.
	ErrStreamInterrupted = errors.New("generation stream interrupted")
)
