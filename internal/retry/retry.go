// Package retry wraps external-storage and external-auth calls in a small
// bounded retry with exponential backoff. Transient failures get a handful
// of attempts; anything the predicate classifies as permanent surfaces
// immediately.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const defaultMaxAttempts = 3

// Always treats every error as transient. Suitable for plain reads where a
// repeated call is harmless.
func Always(error) bool { return true }

// Do runs op until it succeeds, the transient predicate rejects the error,
// the attempt limit is reached, or ctx is done.
func Do(ctx context.Context, op func() error, transient func(error) bool) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 2 * time.Second

	policy := backoff.WithContext(backoff.WithMaxRetries(b, defaultMaxAttempts-1), ctx)

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if !transient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
}
