package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), Policy{Attempts: 5}, func(context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 1, calls, "no further attempts after a success")
}

func TestDoRecoversAfterTransientFailures(t *testing.T) {
	transient := errors.New("stale element reference")
	calls := 0
	got, err := Do(context.Background(), Policy{Attempts: 4}, func(context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, transient
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 3, calls)
}

func TestDoExhaustsBudgetAndReturnsLastError(t *testing.T) {
	first := errors.New("first failure")
	last := errors.New("last failure")
	calls := 0
	_, err := Do(context.Background(), Policy{Attempts: 3}, func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, first
		}
		return 0, last
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls, "exactly the attempt budget is spent")
	assert.ErrorIs(t, err, last)
	assert.NotErrorIs(t, err, first)
}

func TestDoTreatsZeroAttemptsAsOne(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), Policy{}, func(context.Context) (int, error) {
		calls++
		return 0, errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := Do(ctx, Policy{Attempts: 10, Interval: time.Hour}, func(context.Context) (int, error) {
		calls++
		cancel() // cancel during the first attempt; the delay must not block
		return 0, errors.New("boom")
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDoVoid(t *testing.T) {
	calls := 0
	err := DoVoid(context.Background(), Policy{Attempts: 2}, func(context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("not interactable yet")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
