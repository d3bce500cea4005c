package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeAPI represents VK API request errors
	ErrorTypeAPI ErrorType = "api"
	// ErrorTypeShape represents unexpected response structure errors
	ErrorTypeShape ErrorType = "shape"
	// ErrorTypeGraph represents graph database errors
	ErrorTypeGraph ErrorType = "graph"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// API Errors

// ErrAPIRequestFailed is returned when a VK API method keeps failing
// after the retry budget is exhausted.
type ErrAPIRequestFailed struct {
	*BaseError
	Method   string
	Attempts int
}

func NewAPIRequestFailed(method string, attempts int, err error) *ErrAPIRequestFailed {
	return &ErrAPIRequestFailed{
		BaseError: NewBaseError(ErrorTypeAPI, fmt.Sprintf("%s failed after %d attempts", method, attempts), err),
		Method:    method,
		Attempts:  attempts,
	}
}

// ErrUnexpectedShape is returned when an API response does not match
// the structure the caller expected.
type ErrUnexpectedShape struct {
	*BaseError
	Method string
}

func NewUnexpectedShape(method, detail string, err error) *ErrUnexpectedShape {
	return &ErrUnexpectedShape{
		BaseError: NewBaseError(ErrorTypeShape, fmt.Sprintf("unexpected response shape for %s: %s", method, detail), err),
		Method:    method,
	}
}

// Graph Errors

// ErrGraphConnectionFailed is returned when the Neo4j connection fails
type ErrGraphConnectionFailed struct {
	*BaseError
	URI string
}

func NewGraphConnectionFailed(uri string, err error) *ErrGraphConnectionFailed {
	return &ErrGraphConnectionFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("failed to connect to Neo4j: %s", uri), err),
		URI:       uri,
	}
}

// ErrGraphQueryFailed is returned when a graph query fails
type ErrGraphQueryFailed struct {
	*BaseError
	Query string
}

func NewGraphQueryFailed(query string, err error) *ErrGraphQueryFailed {
	return &ErrGraphQueryFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("query failed: %s", query), err),
		Query:     query,
	}
}

// Config Errors

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// errType exposes the category; promoted to every error embedding
// *BaseError.
func (e *BaseError) errType() ErrorType {
	return e.Type
}

// Helper functions

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	if err == nil {
		return false
	}
	if typed, ok := err.(interface{ errType() ErrorType }); ok {
		return typed.errType() == errType
	}
	// Check wrapped errors
	if wrapped, ok := err.(interface{ Unwrap() error }); ok {
		return IsErrorType(wrapped.Unwrap(), errType)
	}
	return false
}
