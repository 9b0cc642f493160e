package retry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("connection reset")
		}
		return nil
	}, Always)

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoStopsAtAttemptLimit(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return errors.New("still down")
	}, Always)

	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoDoesNotRetryPermanentErrors(t *testing.T) {
	permanent := errors.New("document not found")
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return permanent
	}, func(err error) bool { return !errors.Is(err, permanent) })

	require.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestDoHonoursContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, func() error { return errors.New("down") }, Always)
	require.Error(t, err)
}
