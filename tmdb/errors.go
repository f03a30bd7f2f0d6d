package tmdb

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrMissingAPIKey indicates the client was built without an API key
	ErrMissingAPIKey = errors.New("tmdb API key is required")
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid tmdb configuration")
	// ErrUnauthorized indicates authentication failure
	ErrUnauthorized = errors.New("unauthorized: invalid API key")
	// ErrNotFound indicates resource not found
	ErrNotFound = errors.New("resource not found")
)

// APIError represents a TMDB API error
type APIError struct {
	StatusCode int
	// Code is TMDB's own status_code from the error body, 0 if absent
	Code    int
	Message string
	Body    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("tmdb API error: status %d (code %d): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("tmdb API error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// Unwrap maps the status onto the package sentinels.
func (e *APIError) Unwrap() error {
	switch {
	case e.IsNotFound():
		return ErrNotFound
	case e.IsUnauthorized():
		return ErrUnauthorized
	}
	return nil
}
