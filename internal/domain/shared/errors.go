package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Geocoding errors

// GeocodeNotFoundError means a forward geocode produced no result for an
// input address. The request cannot proceed without all three locations.
type GeocodeNotFoundError struct {
	*DomainError
	Input string
}

func NewGeocodeNotFoundError(input string) *GeocodeNotFoundError {
	return &GeocodeNotFoundError{
		DomainError: &DomainError{Message: fmt.Sprintf("Could not find location: %s", input)},
		Input:       input,
	}
}

// Routing errors

// RouteUnavailableError means the router returned no usable route between
// the requested locations, or a route with fewer legs than waypoint pairs.
type RouteUnavailableError struct {
	*DomainError
}

func NewRouteUnavailableError() *RouteUnavailableError {
	return &RouteUnavailableError{
		DomainError: &DomainError{Message: "Could not calculate route between locations"},
	}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InvariantViolationError marks a bug: planner output or a generated log
// sheet broke a structural guarantee it is supposed to hold by construction.
type InvariantViolationError struct {
	*DomainError
}

func NewInvariantViolationError(message string) *InvariantViolationError {
	return &InvariantViolationError{DomainError: &DomainError{Message: message}}
}
