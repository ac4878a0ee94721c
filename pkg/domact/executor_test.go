package domact

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaforge/domact/pkg/retry"
	"github.com/qaforge/domact/pkg/scripts"
)

var errStale = errors.New("stale element reference")

func testElement() *Element {
	return &Element{Name: "Login", Kind: "button", Ref: "obj-1"}
}

func TestExecutorBindsElementAsFirstArgument(t *testing.T) {
	session := &fakeSession{}
	exec := NewExecutor(session, retry.Policy{Attempts: 1})
	el := testElement()

	err := exec.ExecuteVoid(context.Background(), scripts.SetValue, el, "hello", 7)
	require.NoError(t, err)

	runs := session.runsFor(scripts.SetValue.Body)
	require.Len(t, runs, 1)
	require.Len(t, runs[0].Args, 3)
	assert.Same(t, el, runs[0].Args[0], "arguments[0] must be the element handle")
	assert.Equal(t, "hello", runs[0].Args[1])
	assert.Equal(t, 7, runs[0].Args[2])
}

func TestExecutorNilElementIsFatalAndNotRetried(t *testing.T) {
	session := &fakeSession{}
	exec := NewExecutor(session, retry.Policy{Attempts: 5})

	err := exec.ExecuteVoid(context.Background(), scripts.Click, nil)
	require.ErrorIs(t, err, ErrNilElement)
	assert.Zero(t, session.attemptsFor(scripts.Click.Body), "no script may run on a precondition violation")

	var actionErr *ActionError
	assert.False(t, errors.As(err, &actionErr), "precondition violations are not action failures")
}

func TestExecutorRetriesTransientFailures(t *testing.T) {
	session := &fakeSession{
		handler: func(call runCall, attempt int) (any, error) {
			if attempt < 3 {
				return nil, errStale
			}
			return "recovered", nil
		},
	}
	exec := NewExecutor(session, retry.Policy{Attempts: 5})

	got, err := exec.ExecuteString(context.Background(), scripts.GetText, testElement())
	require.NoError(t, err)
	assert.Equal(t, "recovered", got)
	assert.Equal(t, 3, session.attemptsFor(scripts.GetText.Body), "no further attempts after a success")
}

func TestExecutorEscalatesAfterBudgetExhaustion(t *testing.T) {
	session := &fakeSession{
		handler: func(runCall, int) (any, error) {
			return nil, errStale
		},
	}
	exec := NewExecutor(session, retry.Policy{Attempts: 4})
	el := testElement()

	err := exec.ExecuteVoid(context.Background(), scripts.Click, el)
	require.Error(t, err)
	assert.Equal(t, 4, session.attemptsFor(scripts.Click.Body), "exactly the attempt budget is spent")

	var actionErr *ActionError
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, scripts.Click.Name, actionErr.Script)
	assert.Equal(t, el.Name, actionErr.Element)
	assert.ErrorIs(t, err, errStale, "the last cause stays reachable")
}

func TestExecutorContextCancellationIsNotWrapped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session := &fakeSession{}
	exec := NewExecutor(session, retry.Policy{Attempts: 3})

	err := exec.ExecuteVoid(ctx, scripts.Click, testElement())
	require.ErrorIs(t, err, context.Canceled)

	var actionErr *ActionError
	assert.False(t, errors.As(err, &actionErr))
}

func TestExecutorTypedDecodes(t *testing.T) {
	t.Run("bool", func(t *testing.T) {
		session := &fakeSession{handler: func(runCall, int) (any, error) { return true, nil }}
		exec := NewExecutor(session, retry.Policy{Attempts: 1})
		got, err := exec.ExecuteBool(context.Background(), scripts.IsOnScreen, testElement())
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("bool with wrong shape fails fast", func(t *testing.T) {
		session := &fakeSession{handler: func(runCall, int) (any, error) { return "yes", nil }}
		exec := NewExecutor(session, retry.Policy{Attempts: 1})
		_, err := exec.ExecuteBool(context.Background(), scripts.IsOnScreen, testElement())
		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, scripts.IsOnScreen.Name, decodeErr.Script)
	})

	t.Run("nil string reads as empty", func(t *testing.T) {
		session := &fakeSession{handler: func(runCall, int) (any, error) { return nil, nil }}
		exec := NewExecutor(session, retry.Policy{Attempts: 1})
		got, err := exec.ExecuteString(context.Background(), scripts.GetText, testElement())
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("numbers tolerate stringly-typed values", func(t *testing.T) {
		session := &fakeSession{handler: func(runCall, int) (any, error) {
			return []any{"12.25", float64(7), 3}, nil
		}}
		exec := NewExecutor(session, retry.Policy{Attempts: 1})
		got, err := exec.ExecuteNumbers(context.Background(), scripts.GetViewportCoordinates, testElement())
		require.NoError(t, err)
		assert.Equal(t, []float64{12.25, 7, 3}, got)
	})

	t.Run("non-numeric sequence element is fatal", func(t *testing.T) {
		session := &fakeSession{handler: func(runCall, int) (any, error) {
			return []any{"12.25", "abc"}, nil
		}}
		exec := NewExecutor(session, retry.Policy{Attempts: 1})
		_, err := exec.ExecuteNumbers(context.Background(), scripts.GetViewportCoordinates, testElement())
		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
	})

	t.Run("handle rejects null", func(t *testing.T) {
		session := &fakeSession{handler: func(runCall, int) (any, error) { return nil, nil }}
		exec := NewExecutor(session, retry.Policy{Attempts: 1})
		_, err := exec.ExecuteHandle(context.Background(), scripts.ExpandShadowRoot, testElement())
		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
	})
}
