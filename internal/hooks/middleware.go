package hooks

import (
	"context"
	"fmt"
	"time"

	"github.com/Youmanvi/dummygateway/internal/infrastructure/observability"
	errs "github.com/Youmanvi/dummygateway/internal/pkg/errors"
)

// Middleware wraps a Handler
type Middleware func(Handler) Handler

// Chain applies a chain of middleware to a handler
func Chain(handler Handler, middlewares ...Middleware) Handler {
	// Apply middleware in reverse order so they wrap correctly
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

// WithLogging returns a middleware that logs handler execution
func WithLogging(logger *observability.Logger, action string) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, payload any) error {
			start := time.Now()
			actionLogger := logger.WithAction(action)
			actionLogger.Debug().Msg("handler started")

			err := next(ctx, payload)
			duration := time.Since(start)

			if err != nil {
				actionLogger.WithError(err).Error().
					Dur("duration_ms", duration).
					Msg("handler failed")
				return err
			}

			actionLogger.Info().
				Dur("duration_ms", duration).
				Msg("handler completed")
			return nil
		}
	}
}

// WithMetrics returns a middleware that counts handler executions
func WithMetrics(metrics *observability.Metrics) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, payload any) error {
			err := next(ctx, payload)
			if metrics != nil {
				metrics.RecordHook(err)
			}
			return err
		}
	}
}

// WithTimeout returns a middleware that bounds handler execution time.
// The handler keeps running in its goroutine after the deadline; it only
// sees the cancellation through its context.
func WithTimeout(timeout time.Duration) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, payload any) error {
			timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			done := make(chan error, 1)
			go func() {
				done <- next(timeoutCtx, payload)
			}()

			select {
			case err := <-done:
				return err
			case <-timeoutCtx.Done():
				return errs.NewTimeoutError(errs.CodeHookTimeout, "handler execution exceeded timeout")
			}
		}
	}
}

// WithRecover returns a middleware that converts handler panics into
// errors so one misbehaving handler cannot take down the dispatch loop
func WithRecover() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, payload any) (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("handler panic: %v", r)
				}
			}()
			return next(ctx, payload)
		}
	}
}
