package domain

import (
	"errors"
	"fmt"
)

// ErrNoActivity is the valid "nothing playing, nothing recent" outcome.
// It is not a failure; callers render the inactive card variant.
var ErrNoActivity = errors.New("no listening activity")

// ErrNotConfigured indicates that no provider has credentials set. It is
// a configuration error for the whole request, distinct from any
// provider-level failure.
var ErrNotConfigured = errors.New("no music provider configured")

// ErrNotFound indicates a missing record in the snapshot store.
var ErrNotFound = errors.New("not found")

// AuthError reports a failed credential refresh. The provider is treated
// as unavailable for the current request only; the next request retries
// the refresh from scratch.
type AuthError struct {
	Provider Provider
	Err      error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed with %s: %v", e.Provider, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// ProviderError reports a non-auth upstream failure, including timeouts.
// It must stay distinguishable from ErrNoActivity all the way up to the
// handler.
type ProviderError struct {
	Provider   Provider
	StatusCode int // 0 when the failure was transport-level
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s API error (HTTP %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s API error: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
