// pkg/domact/errors.go
package domact

import (
	"errors"
	"fmt"
)

// ErrNilElement is a precondition violation: an action was invoked with no
// target element handle. It is fatal and never retried.
var ErrNilElement = errors.New("domact: nil element handle")

// ActionError is raised when a script execution fails after the retry budget
// is exhausted. It carries the script name, the element's logical name, and
// the last observed cause (stale element, element not interactable, script
// error, session disconnect).
type ActionError struct {
	Script  string
	Element string
	Err     error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("domact: action %q failed on element %q: %v", e.Script, e.Element, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// DecodeError is raised when a script returns a value outside the closed set
// of semantic types the engine decodes. It is fatal, never retried.
type DecodeError struct {
	Script string
	Want   string
	Got    any
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("domact: script %q returned %T (%v), want %s", e.Script, e.Got, e.Got, e.Want)
}
