// pkg/domact/decode.go
package domact

import (
	"encoding/json"
	"strconv"
)

// The script engine returns loosely typed values. Decoding happens once, at
// the executor boundary, into a closed set of semantic types: boolean,
// string, number, sequence-of-number, opaque context handle, none.
// Unexpected shapes fail fast instead of propagating untyped values upward.

func decodeBool(script string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, &DecodeError{Script: script, Want: "boolean", Got: v}
	}
	return b, nil
}

func decodeString(script string, v any) (string, error) {
	if v == nil {
		// A missing text node reads as empty, not as a failure.
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &DecodeError{Script: script, Want: "string", Got: v}
	}
	return s, nil
}

// decodeNumber tolerates the stringly-typed numbers some engines emit.
func decodeNumber(script string, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, &DecodeError{Script: script, Want: "number", Got: v}
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, &DecodeError{Script: script, Want: "number", Got: v}
		}
		return f, nil
	default:
		return 0, &DecodeError{Script: script, Want: "number", Got: v}
	}
}

func decodeNumbers(script string, v any) ([]float64, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, &DecodeError{Script: script, Want: "sequence of numbers", Got: v}
	}
	out := make([]float64, len(list))
	for i, item := range list {
		f, err := decodeNumber(script, item)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// decodeHandle accepts any non-nil opaque reference. A nil result means the
// script found no context to return (e.g. the element hosts no shadow root).
func decodeHandle(script string, v any) (any, error) {
	if v == nil {
		return nil, &DecodeError{Script: script, Want: "context handle", Got: v}
	}
	return v, nil
}
