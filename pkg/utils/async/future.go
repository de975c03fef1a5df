package async

import (
	"context"
	"fmt"
	"sync"
)

// Future is the result of a function started with Go. It settles exactly once.
type Future[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
	err   error
}

// Go runs fn in a new goroutine detached from ctx cancellation, like Dispatch, and
// returns a Future that settles when fn returns or panics. onSettle, if not nil, runs
// once after the result is recorded and before waiters are released.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error), onSettle func(T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	newCtx := newBackgroundContext(ctx)

	go func() {
		var (
			value T
			err   error
		)
		defer func() {
			f.settle(value, err, onSettle)
		}()
		defer recoverPanic(newCtx, func(r any) {
			err = fmt.Errorf("panic in async handler: %v", r)
		})

		value, err = fn(newCtx)
	}()

	return f
}

// Resolved returns a Future that is already settled.
func Resolved[T any](value T, err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	f.settle(value, err, nil)
	return f
}

func (f *Future[T]) settle(value T, err error, onSettle func(T, error)) {
	f.once.Do(func() {
		f.value, f.err = value, err
		if onSettle != nil {
			onSettle(value, err)
		}
		close(f.done)
	})
}

// Done is closed once the Future has settled.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the Future settles or ctx is done.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
