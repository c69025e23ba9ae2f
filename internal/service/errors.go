package service

import "errors"

// ErrIndexUnavailable wraps vector-store failures. At startup it prevents the
// service from declaring itself ready; at query time it aborts the request.
var ErrIndexUnavailable = errors.New("vector index unavailable")
