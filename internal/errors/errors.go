// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrNotFound indicates a requested resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates user provided invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLLMUnavailable indicates every configured LLM provider failed.
	ErrLLMUnavailable = errors.New("no LLM provider available")

	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")
)

// GraphError represents graph-store failures with query context.
type GraphError struct {
	Query string
	Err   error
}

func (e *GraphError) Error() string {
	if e.Query != "" {
		return fmt.Sprintf("graph error (query=%s): %v", e.Query, e.Err)
	}
	return fmt.Sprintf("graph error: %v", e.Err)
}

func (e *GraphError) Unwrap() error {
	return e.Err
}

// NewGraphError creates a new graph error. query is a short query name,
// not the full Cypher text.
func NewGraphError(query string, err error) *GraphError {
	return &GraphError{
		Query: query,
		Err:   err,
	}
}
