package job

import (
	"context"
	"errors"
	"testing"
)

func TestNamed_NilGuard(t *testing.T) {
	t.Parallel()
	j := New("insights/week", nil)
	if err := j.Run(context.Background()); !errors.Is(err, ErrNilFunc) {
		t.Fatalf("expected ErrNilFunc, got %v", err)
	}
}

func TestNamed_RunsWithCallerContext(t *testing.T) {
	t.Parallel()
	type ctxKey string
	ctx := context.WithValue(context.Background(), ctxKey("k"), "v")

	called := false
	j := New("timecapsule", func(c context.Context) error {
		called = true
		if got, _ := c.Value(ctxKey("k")).(string); got != "v" {
			t.Errorf("context value mismatch: %q", got)
		}
		return nil
	})
	if err := j.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("wrapped function not called")
	}
	if j.Name() != "timecapsule" {
		t.Fatalf("unexpected name %q", j.Name())
	}
}

func TestNamed_ErrorPropagation(t *testing.T) {
	t.Parallel()
	sentinel := errors.New("boom")
	if err := New("x", func(context.Context) error { return sentinel }).Run(context.Background()); !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
}
