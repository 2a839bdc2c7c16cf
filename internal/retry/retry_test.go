package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("transient")
var errFatal = errors.New("fatal")

func fastOpts(maxRetries int) Options {
	return Options{
		Config: Config{
			MaxRetries:      maxRetries,
			BaseDelay:       time.Millisecond,
			MaxDelay:        5 * time.Millisecond,
			BackoffMultiple: 2,
		},
		ErrorChecker: func(err error) bool { return errors.Is(err, errTransient) },
		Name:         "test",
	}
}

func TestDo_SucceedsFirstTry(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), fastOpts(3), func(attempt int) (string, error) {
		calls++
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesTransientThenSucceeds(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), fastOpts(3), func(attempt int) (int, error) {
		calls++
		if attempt < 2 {
			return 0, errTransient
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 3, calls)
}

func TestDo_StopsOnNonRetryable(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastOpts(5), func(attempt int) (int, error) {
		calls++
		return 0, errFatal
	})

	assert.ErrorIs(t, err, errFatal)
	assert.Equal(t, 1, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastOpts(2), func(attempt int) (int, error) {
		calls++
		return 0, errTransient
	})

	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 3, calls)
}

func TestDo_ZeroRetriesMeansOneAttempt(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastOpts(0), func(attempt int) (int, error) {
		calls++
		return 0, errTransient
	})

	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancelledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	opts := fastOpts(3)
	opts.Config.BaseDelay = time.Hour
	opts.Config.MaxDelay = time.Hour

	_, err := Do(ctx, opts, func(attempt int) (int, error) {
		cancel()
		return 0, errTransient
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculateDelay(t *testing.T) {
	c := Config{BaseDelay: 100 * time.Millisecond, MaxDelay: time.Second, BackoffMultiple: 2}

	assert.Equal(t, 100*time.Millisecond, c.calculateDelay(0))
	assert.Equal(t, 200*time.Millisecond, c.calculateDelay(1))
	assert.Equal(t, 400*time.Millisecond, c.calculateDelay(2))
	assert.Equal(t, time.Second, c.calculateDelay(10))
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig(2)
	assert.Equal(t, 2, c.MaxRetries)
	assert.Greater(t, c.BaseDelay, time.Duration(0))
}
