// Package job adapts closures into named executor jobs.
package job

import (
	"context"
	"errors"
	"fmt"
)

// ErrNilFunc is returned when a job has no function to run.
var ErrNilFunc = errors.New("nil job func")

// Named is a closure that shows up in executor logs under its name.
type Named struct {
	name string
	fn   func(context.Context) error
}

// New wraps fn as a job called name.
func New(name string, fn func(context.Context) error) Named {
	return Named{name: name, fn: fn}
}

// Name returns the label given to New.
func (n Named) Name() string { return n.name }

// Run calls the wrapped function.
func (n Named) Run(ctx context.Context) error {
	if n.fn == nil {
		return fmt.Errorf("job %q: %w", n.name, ErrNilFunc)
	}
	return n.fn(ctx)
}
