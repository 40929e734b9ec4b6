package dioverify

import (
	"context"
	"errors"
	log "log/slog"
	"syscall"
	"time"

	"github.com/sethvargo/go-retry"
)

// noDelay retries immediately and never gives up.
var noDelay = retry.BackoffFunc(func() (time.Duration, bool) {
	return 0, false
})

// IsInterrupted reports whether err is an interrupted system call.
func IsInterrupted(err error) bool {
	return errors.Is(err, syscall.EINTR)
}

// RetryOnInterrupt runs task until it returns something other than EINTR.
// Any other error, or success, ends the loop and is returned as is.
func RetryOnInterrupt(ctx context.Context, task func(ctx context.Context) error) error {
	return retry.Do(ctx, noDelay, func(ctx context.Context) error {
		err := task(ctx)
		if IsInterrupted(err) {
			log.Debug("interrupted system call, retrying")
			return retry.RetryableError(err)
		}
		return err
	})
}

// RetryN runs task with a constant 1ms backoff up to n retries. Only errors
// for which shouldRetry reports true are retried; any other error is returned
// right away.
func RetryN(ctx context.Context, n uint64, task func(ctx context.Context) error, shouldRetry func(error) bool) error {
	b := retry.NewConstant(time.Millisecond)
	retryable := false
	err := retry.Do(ctx, retry.WithMaxRetries(n, b), func(ctx context.Context) error {
		err := task(ctx)
		retryable = err != nil && shouldRetry(err)
		if retryable {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil && retryable {
		log.Warn(err.Error()+", gave up", "retries", n)
	}
	return err
}
