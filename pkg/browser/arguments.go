// pkg/browser/arguments.go
package browser

import (
	"errors"
	"fmt"

	"github.com/chromedp/cdproto/runtime"
	"github.com/go-json-experiment/json/jsontext"
	jsoniter "github.com/json-iterator/go"

	"github.com/qaforge/domact/pkg/domact"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var errNoTarget = errors.New("script invocation requires an element handle as arguments[0]")

// buildCallArguments converts an engine argument list into CDP call arguments.
// arguments[0] must be the target element; its handle doubles as the object
// the function is invoked on, which pins execution to the element's context.
// Element and search-context arguments pass by reference, everything else is
// serialized by value.
func buildCallArguments(args []any) (runtime.RemoteObjectID, []*runtime.CallArgument, error) {
	if len(args) == 0 {
		return "", nil, errNoTarget
	}

	first, ok := args[0].(*domact.Element)
	if !ok || first == nil {
		return "", nil, errNoTarget
	}
	target, err := handleObjectID(first.Ref)
	if err != nil {
		return "", nil, fmt.Errorf("element %q: %w", first.Name, err)
	}

	callArgs := make([]*runtime.CallArgument, 0, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case *domact.Element:
			id, err := handleObjectID(v.Ref)
			if err != nil {
				return "", nil, fmt.Errorf("argument %d (element %q): %w", i, v.Name, err)
			}
			callArgs = append(callArgs, &runtime.CallArgument{ObjectID: id})
		case domact.SearchContext:
			id, err := handleObjectID(v.Handle)
			if err != nil {
				return "", nil, fmt.Errorf("argument %d (search context): %w", i, err)
			}
			callArgs = append(callArgs, &runtime.CallArgument{ObjectID: id})
		case runtime.RemoteObjectID:
			callArgs = append(callArgs, &runtime.CallArgument{ObjectID: v})
		default:
			raw, err := json.Marshal(v)
			if err != nil {
				return "", nil, fmt.Errorf("argument %d: %w", i, err)
			}
			callArgs = append(callArgs, &runtime.CallArgument{Value: jsontext.Value(raw)})
		}
	}

	return target, callArgs, nil
}

// handleObjectID coerces a session-scoped handle back to a CDP object id.
// Handles produced by this backend are always runtime.RemoteObjectID; the
// string case tolerates handles that round-tripped through serialization.
func handleObjectID(ref any) (runtime.RemoteObjectID, error) {
	switch v := ref.(type) {
	case runtime.RemoteObjectID:
		if v == "" {
			return "", errors.New("empty object handle")
		}
		return v, nil
	case string:
		if v == "" {
			return "", errors.New("empty object handle")
		}
		return runtime.RemoteObjectID(v), nil
	case nil:
		return "", errors.New("nil object handle")
	default:
		return "", fmt.Errorf("unsupported handle type %T", ref)
	}
}

// decodeRemoteObject lowers a CDP remote object to the engine's loosely typed
// result space: nil for undefined/null, unmarshalled JSON for by-value
// results, and the opaque object id for anything held by reference.
func decodeRemoteObject(remote *runtime.RemoteObject) (any, error) {
	if remote == nil || remote.Type == runtime.TypeUndefined || remote.Subtype == runtime.SubtypeNull {
		return nil, nil
	}
	if remote.ObjectID != "" {
		return remote.ObjectID, nil
	}
	if len(remote.Value) == 0 {
		return nil, nil
	}

	var value any
	if err := json.Unmarshal(remote.Value, &value); err != nil {
		return nil, fmt.Errorf("decode script result: %w", err)
	}
	return value, nil
}
