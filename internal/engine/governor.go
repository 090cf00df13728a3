package engine

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// RunWithDeadline runs fn with a context that expires after timeout.
//
// If the deadline passes first, RunWithDeadline returns ErrTimeout at once and
// abandons fn; fn observes the cancelled context at its next checkpoint and its
// result is discarded. Cancellation of the parent ctx is reported as the
// parent's own error, not as a timeout.
func RunWithDeadline[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if timeout <= 0 {
		return zero, fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidInput, timeout)
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		val T
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := fn(runCtx)
		done <- outcome{val: v, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil && errors.Is(out.err, context.DeadlineExceeded) && ctx.Err() == nil {
			return zero, fmt.Errorf("%w after %s", ErrTimeout, timeout)
		}
		if out.err != nil {
			return zero, out.err
		}
		return out.val, nil
	case <-runCtx.Done():
		// A result that landed together with the deadline still counts.
		select {
		case out := <-done:
			if out.err == nil {
				return out.val, nil
			}
		default:
		}
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		return zero, fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
}
