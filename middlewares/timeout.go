package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/folio/internal"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// Timeout returns middleware that puts a deadline on the request context.
// The handler runs on the request goroutine, so it never races the error
// handler for the response; it has to honour the context, which every
// outbound call in this module does. When the deadline passes and the
// handler fails without having written anything, the failure becomes a
// *TimeoutError.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), timeout)
			defer cancel()
			c.SetContext(ctx)

			err := next(c)
			if err == nil || c.Written() {
				return err
			}
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				c.LogWarn("request timeout", "timeout", timeout.String(), "error", err)
				return &TimeoutError{Duration: timeout, Err: err}
			}
			return err
		}
	}
}
