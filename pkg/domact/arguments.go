// pkg/domact/arguments.go
package domact

// resolveArgs builds the argument list for a script invocation. The target
// element is always arguments[0]; callers never assemble the list themselves,
// which guarantees consistent script-side binding in every script body.
// A nil element is a precondition violation.
func resolveArgs(element *Element, extra ...any) ([]any, error) {
	if element == nil {
		return nil, ErrNilElement
	}
	args := make([]any, 0, len(extra)+1)
	args = append(args, element)
	args = append(args, extra...)
	return args, nil
}
