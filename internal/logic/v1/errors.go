// Package v1 provides the weather dashboard business logic for API version 1.
//
// Error Handling:
// This package defines sentinel errors for every failure a handler must map
// to a status code. They are wrapped with context using fmt.Errorf("%w") when
// returned from business logic methods.
//
// Example Usage:
//
//	if row == nil {
//	    return nil, fmt.Errorf("authenticate %q: %w", email, ErrInvalidCredentials)
//	}
//
// Error Checking (in handlers):
//
//	switch {
//	case errors.Is(err, logicv1.ErrInvalidCredentials):
//	    c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
//	case errors.Is(err, logicv1.ErrCityNotFound):
//	    c.JSON(http.StatusNotFound, gin.H{"error": "City not found"})
//	default:
//	    c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
//	}
package v1

import (
	"errors"
	"strings"
)

// Sentinel errors for business operations.
// These errors should be wrapped with context using fmt.Errorf("%w") when returned.
var (
	// ErrValidation indicates malformed or missing input.
	// HTTP Status: 400 Bad Request
	ErrValidation = errors.New("invalid input")

	// ErrInvalidCredentials indicates an unknown email or a wrong password.
	// Both cases use this one error so callers cannot tell them apart.
	// HTTP Status: 401 Unauthorized
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated indicates a missing, malformed, tampered or expired session token.
	// HTTP Status: 401 Unauthorized
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUserNotFound indicates the session subject no longer exists.
	// HTTP Status: 404 Not Found
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists indicates the email is already registered.
	// HTTP Status: 409 Conflict
	ErrUserExists = errors.New("user already exists")

	// ErrCityNotFound indicates no city with that id is owned by the caller.
	// Cities owned by other users produce the same error.
	// HTTP Status: 404 Not Found
	ErrCityNotFound = errors.New("city not found")

	// ErrCityExists indicates the caller already tracks that (name, country).
	// HTTP Status: 409 Conflict
	ErrCityExists = errors.New("city already exists")

	// ErrWeatherNotFound indicates the weather provider does not know the location.
	// HTTP Status: 404 Not Found
	ErrWeatherNotFound = errors.New("weather location not found")

	// ErrUpstreamAuth indicates the weather provider rejected our API key.
	// HTTP Status: 500 Internal Server Error
	ErrUpstreamAuth = errors.New("weather provider authentication failed")

	// ErrUpstream indicates any other weather provider failure.
	// HTTP Status: 500 Internal Server Error
	ErrUpstream = errors.New("weather provider error")
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries per-field details and matches ErrValidation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
