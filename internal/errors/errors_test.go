package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelIdentity(t *testing.T) {
	wrapped := fmt.Errorf("fetching user: %w", ErrInvalidInput)

	if !errors.Is(wrapped, ErrInvalidInput) {
		t.Error("errors.Is should match ErrInvalidInput through wrapping")
	}
	if errors.Is(wrapped, ErrNotFound) {
		t.Error("errors.Is should not match unrelated sentinel")
	}
}

func TestGraphError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewGraphError("graduation_general", cause)

	if !errors.Is(err, cause) {
		t.Error("GraphError should unwrap to its cause")
	}

	var graphErr *GraphError
	if !errors.As(err, &graphErr) {
		t.Fatal("errors.As should find *GraphError")
	}
	if graphErr.Query != "graduation_general" {
		t.Errorf("Query = %q, want graduation_general", graphErr.Query)
	}
}

func TestGraphErrorWithoutQuery(t *testing.T) {
	err := NewGraphError("", errors.New("boom"))
	if err.Error() != "graph error: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
}
