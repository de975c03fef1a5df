package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
)

// Dispatch runs handler in a new goroutine for work that must outlive the caller, such
// as a folder scan started by an HTTP request. The handler gets a background context
// carrying the caller's logger, so cancelling ctx does not stop it. A returned error is
// logged; a panic is recovered and logged with its stack.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	newCtx := newBackgroundContext(ctx)

	go func() {
		defer recoverPanic(newCtx, nil)

		if err := handler(newCtx); err != nil {
			logger := ctxlog.From(newCtx)
			logger.Error("error in async handler", "error", err)
		}
	}()
}

// recoverPanic logs a recovered panic and hands it to onPanic, if set
func recoverPanic(ctx context.Context, onPanic func(r any)) {
	if r := recover(); r != nil {
		stack := debug.Stack()
		logger := ctxlog.From(ctx)
		logger.Error("panic in async handler",
			"recover", r,
			"stack", string(stack))
		if onPanic != nil {
			onPanic(r)
		}
	}
}

// newBackgroundContext detaches from ctx, keeping only its ctxlog logger
func newBackgroundContext(ctx context.Context) context.Context {
	newCtx := context.Background()
	newCtx = ctxlog.With(newCtx, ctxlog.From(ctx))
	return newCtx
}
