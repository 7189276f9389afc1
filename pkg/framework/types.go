package framework

import (
	"context"
)

// Named is an abstraction for things with a name.
type Named interface {
	Name() string
}

// Runnable defines a generic interface for background runners.
type Runnable interface {
	Run(context.Context) error
}

// RunFunc is the func form of Runnable.
type RunFunc func(context.Context) error

// Run implements Runnable.
func (f RunFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Suspender runs a blocking wait on behalf of the calling task,
// letting other tasks of the same execution context proceed meanwhile.
type Suspender interface {
	Suspend(ctx context.Context, wait func(context.Context) error) error
}

// Suspend runs wait through s, or directly if s is nil.
func Suspend(ctx context.Context, s Suspender, wait func(context.Context) error) error {
	if s == nil {
		return wait(ctx)
	}
	return s.Suspend(ctx, wait)
}
