package generator

import (
	"encoding/json"
	"fmt"
	"math"
)

// Payload field decoding helpers shared by the built-in generators.
// All of them return errors wrapping ErrInvalidInput that name the offending
// field, so callers (and CLI users) see exactly which part of the payload is
// malformed.

// stringField extracts a non-empty string value from the payload.
func stringField(payload map[string]any, key string) (string, error) {
	v, ok := payload[key]
	if !ok {
		return "", fmt.Errorf("%w: missing required field %q", ErrInvalidInput, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q must be a string, got %T", ErrInvalidInput, key, v)
	}
	if s == "" {
		return "", fmt.Errorf("%w: field %q must not be empty", ErrInvalidInput, key)
	}
	return s, nil
}

// numberField extracts a numeric value from the payload.
// JSON decoding yields float64 for all numbers, but payloads built in code
// or decoded with UseNumber may carry other numeric types, so the helper
// accepts the common ones.
func numberField(payload map[string]any, key string) (float64, error) {
	v, ok := payload[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing required field %q", ErrInvalidInput, key)
	}
	f, ok := toNumber(v)
	if !ok {
		return 0, fmt.Errorf("%w: field %q must be a number, got %T", ErrInvalidInput, key, v)
	}
	return f, nil
}

// wholeNumberField extracts a numeric value that must be a non-negative
// integer, such as a stock quantity.
func wholeNumberField(payload map[string]any, key string) (int64, error) {
	f, err := numberField(payload, key)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, fmt.Errorf("%w: field %q must not be negative", ErrInvalidInput, key)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: field %q must be a whole number", ErrInvalidInput, key)
	}
	return int64(f), nil
}

// listField extracts a non-empty list value from the payload.
func listField(payload map[string]any, key string) ([]any, error) {
	v, ok := payload[key]
	if !ok {
		return nil, fmt.Errorf("%w: missing required field %q", ErrInvalidInput, key)
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: field %q must be a list, got %T", ErrInvalidInput, key, v)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: field %q must not be empty", ErrInvalidInput, key)
	}
	return list, nil
}

// entryAt extracts the index-th element of a list field as an object.
func entryAt(list []any, index int, listKey string) (map[string]any, error) {
	item, ok := list[index].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: field %q entry %d must be an object, got %T",
			ErrInvalidInput, listKey, index, list[index])
	}
	return item, nil
}

// toNumber converts the numeric types a payload may carry into float64.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
