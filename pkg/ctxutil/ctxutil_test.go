package ctxutil

import (
	"context"
	"testing"
)

func TestWithRequestID_And_RequestIDFromCtx(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-123")

	if got := RequestIDFromCtx(ctx); got != "req-123" {
		t.Fatalf("expected %q, got %q", "req-123", got)
	}
}

func TestRequestIDFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestWithClientIP_And_ClientIPFromCtx(t *testing.T) {
	t.Parallel()

	ctx := WithClientIP(context.Background(), "203.0.113.7")

	got, ok := ClientIPFromCtx(ctx)
	if !ok {
		t.Fatal("expected ok=true for stored IP")
	}
	if got != "203.0.113.7" {
		t.Fatalf("expected %q, got %q", "203.0.113.7", got)
	}
}

func TestClientIPFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	if _, ok := ClientIPFromCtx(context.Background()); ok {
		t.Fatal("expected ok=false for empty context")
	}
}

func TestClientIPFromCtx_EmptyValue(t *testing.T) {
	t.Parallel()

	if _, ok := ClientIPFromCtx(WithClientIP(context.Background(), "")); ok {
		t.Fatal("expected ok=false for empty IP")
	}
}

func TestClientIPFromCtx_WrongType(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), clientIPKey, 42)
	if _, ok := ClientIPFromCtx(ctx); ok {
		t.Fatal("expected ok=false for wrong type")
	}
}
