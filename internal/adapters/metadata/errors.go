package metadata

import (
	"errors"
	"fmt"
)

// Sentinel kinds for metadata lookups. None of them reach callers of
// Provider.Lookup; they drive caching and metrics.
var (
	ErrNoMatch     = errors.New("no matching track")
	ErrUpstream    = errors.New("metadata upstream failure")
	ErrRateLimited = errors.New("metadata rate limit wait failed")
	ErrCircuitOpen = errors.New("metadata circuit open")
)

// StatusError reports an unexpected HTTP status from the upstream API.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("metadata upstream status %d", e.Code)
}

func (e *StatusError) Unwrap() error { return ErrUpstream }
