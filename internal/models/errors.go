package models

import "fmt"

// The error taxonomy surfaced by provider adapters and the session layer.
// The orchestrator converts all of these into "try next provider"; none of
// them reach the caller as a hard failure.

// AuthError means the provider rejected or failed our credentials.
type AuthError struct {
	Provider string
	Err      error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: authentication failed: %v", e.Provider, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// TimeoutError means an upstream call exceeded its deadline.
type TimeoutError struct {
	Provider string
	Err      error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: request timed out: %v", e.Provider, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// UpstreamServerError is a 5xx from the provider.
type UpstreamServerError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamServerError) Error() string {
	return fmt.Sprintf("%s: upstream server error (%d): %s", e.Provider, e.StatusCode, e.Body)
}

// UpstreamClientError is a 4xx from the provider other than 401/403.
type UpstreamClientError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamClientError) Error() string {
	return fmt.Sprintf("%s: upstream client error (%d): %s", e.Provider, e.StatusCode, e.Body)
}

// MalformedResponseError means a provider body could not be decoded.
type MalformedResponseError struct {
	Provider string
	Err      error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Provider, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// ResolutionError means a free-text airport query matched nothing.
type ResolutionError struct {
	Field string
	Query string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("could not resolve %s %q to an airport", e.Field, e.Query)
}
