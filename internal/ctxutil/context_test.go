package ctxutil

import (
	"context"
	"testing"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	if got := GetRequestID(ctx); got != "" {
		t.Errorf("GetRequestID on empty context = %q", got)
	}

	ctx = WithRequestID(ctx, "req-123")
	if got := GetRequestID(ctx); got != "req-123" {
		t.Errorf("GetRequestID = %q", got)
	}
}

func TestUserIDAndRole(t *testing.T) {
	ctx := context.Background()
	if got := GetUserID(ctx); got != 0 {
		t.Errorf("GetUserID on empty context = %d", got)
	}
	if got := GetRole(ctx); got != "" {
		t.Errorf("GetRole on empty context = %q", got)
	}

	ctx = WithRole(WithUserID(ctx, 42), "admin")
	if got := GetUserID(ctx); got != 42 {
		t.Errorf("GetUserID = %d", got)
	}
	if got := GetRole(ctx); got != "admin" {
		t.Errorf("GetRole = %q", got)
	}
}
