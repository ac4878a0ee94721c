// pkg/domact/executor.go
package domact

import (
	"context"
	"errors"

	"github.com/qaforge/domact/pkg/retry"
	"github.com/qaforge/domact/pkg/scripts"
)

// Executor runs named scripts through the browser session under the shared
// retry policy. Each attempt is a fresh invocation; the underlying scripts
// are idempotent, so no partial state leaks between attempts. The executor
// performs no logging itself; that is the facade's responsibility.
type Executor struct {
	session Session
	policy  retry.Policy
}

// NewExecutor binds a session and a retry policy.
func NewExecutor(session Session, policy retry.Policy) *Executor {
	return &Executor{session: session, policy: policy}
}

// execute resolves arguments and invokes the script under the retry policy.
// Precondition violations are raised immediately; transient failures are
// retried until the budget is exhausted, then escalated as an *ActionError
// carrying the script name, the element's logical name, and the last cause.
func (e *Executor) execute(ctx context.Context, script scripts.Script, element *Element, extra ...any) (any, error) {
	args, err := resolveArgs(element, extra...)
	if err != nil {
		return nil, err
	}

	result, err := retry.Do(ctx, e.policy, func(ctx context.Context) (any, error) {
		return e.session.RunScript(ctx, script.Body, args)
	})
	if err != nil {
		if errors.Is(err, ctx.Err()) && ctx.Err() != nil {
			return nil, err
		}
		return nil, &ActionError{Script: script.Name, Element: element.Name, Err: err}
	}
	return result, nil
}

// ExecuteVoid runs a script whose return value is discarded.
func (e *Executor) ExecuteVoid(ctx context.Context, script scripts.Script, element *Element, extra ...any) error {
	_, err := e.execute(ctx, script, element, extra...)
	return err
}

// ExecuteBool runs a script expected to return a boolean.
func (e *Executor) ExecuteBool(ctx context.Context, script scripts.Script, element *Element, extra ...any) (bool, error) {
	v, err := e.execute(ctx, script, element, extra...)
	if err != nil {
		return false, err
	}
	return decodeBool(script.Name, v)
}

// ExecuteString runs a script expected to return a string.
func (e *Executor) ExecuteString(ctx context.Context, script scripts.Script, element *Element, extra ...any) (string, error) {
	v, err := e.execute(ctx, script, element, extra...)
	if err != nil {
		return "", err
	}
	return decodeString(script.Name, v)
}

// ExecuteNumbers runs a script expected to return a sequence of numbers.
// Stringly-typed numeric elements are parsed; anything non-numeric is a
// fatal decode failure.
func (e *Executor) ExecuteNumbers(ctx context.Context, script scripts.Script, element *Element, extra ...any) ([]float64, error) {
	v, err := e.execute(ctx, script, element, extra...)
	if err != nil {
		return nil, err
	}
	return decodeNumbers(script.Name, v)
}

// ExecuteHandle runs a script expected to return an opaque context handle.
func (e *Executor) ExecuteHandle(ctx context.Context, script scripts.Script, element *Element, extra ...any) (any, error) {
	v, err := e.execute(ctx, script, element, extra...)
	if err != nil {
		return nil, err
	}
	return decodeHandle(script.Name, v)
}

// Session exposes the underlying session for composition (page-load waits).
func (e *Executor) Session() Session { return e.session }
