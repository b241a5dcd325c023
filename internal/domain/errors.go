package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingParameter is returned when a required request input is absent or blank
	ErrMissingParameter = errors.New("missing parameter")

	// ErrUnauthorized is returned when a request carries no valid credentials
	ErrUnauthorized = errors.New("unauthorized")

	// ErrLocationNotFound is returned when geocoding yields zero matches
	ErrLocationNotFound = errors.New("location not found")

	// ErrUserNotFound is returned by repositories when no user matches
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned on a failed login
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrPasswordTooLong is returned when a password exceeds the bcrypt input limit
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
)

// Upstream sources, used to tag UpstreamError
const (
	SourceGeocoding  = "geocoding"
	SourceCurrent    = "current"
	SourceForecast   = "forecast"
	SourceAirQuality = "air_quality"
)

// UpstreamError wraps a failed call to the weather provider and records
// which endpoint failed
type UpstreamError struct {
	Source string
	Status int // HTTP status, 0 when the request never got a response
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream %s: status %d: %v", e.Source, e.Status, e.Err)
	}
	return fmt.Sprintf("upstream %s: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// DuplicateFieldError is returned when a unique user field is already taken
type DuplicateFieldError struct {
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}
