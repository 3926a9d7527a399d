package snapshot

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/hupe1980/osmcache/blobstore"
	"github.com/hupe1980/osmcache/memory"
)

// retry runs op once plus up to o.retries more times.
func (o options) retry(ctx context.Context, segment int, op func() error) error {
	if o.retries <= 0 {
		return op()
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 100 * time.Millisecond

	b := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(o.retries)), ctx)
	return backoff.RetryNotify(func() error {
		err := op()
		if err != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, b, func(err error, wait time.Duration) {
		o.logger.WarnContext(ctx, "retrying segment transfer",
			"segment", segment,
			"wait", wait,
			"error", err,
		)
	})
}

func retryable(err error) bool {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, blobstore.ErrNotFound), errors.Is(err, blobstore.ErrInvalidName):
		return false
	case errors.Is(err, memory.ErrClosed), errors.Is(err, ErrUnknownCompression):
		return false
	default:
		return true
	}
}
