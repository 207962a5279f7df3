package object

import (
	"fmt"
	"sort"
)

// FromGoType converts a Go value to a Value. Values are passed through
// unchanged; Go functions with the builtin signature become builtins that
// skip arity checks.
func FromGoType(v any) (Value, error) {
	switch v := v.(type) {
	case nil:
		return NewNull(), nil
	case Value:
		return v, nil
	case bool:
		return NewBool(v), nil
	case int:
		return NewNumber(float64(v)), nil
	case int32:
		return NewNumber(float64(v)), nil
	case int64:
		return NewNumber(float64(v)), nil
	case uint8:
		return NewNumber(float64(v)), nil
	case float32:
		return NewNumber(float64(v)), nil
	case float64:
		return NewNumber(v), nil
	case string:
		return NewString(v), nil
	case BuiltinFunction:
		return NewBuiltin("native", -1, false, v), nil
	case func(args []Value) (Value, error):
		return NewBuiltin("native", -1, false, v), nil
	case []any:
		items := make([]Value, 0, len(v))
		for _, item := range v {
			converted, err := FromGoType(item)
			if err != nil {
				return nil, err
			}
			items = append(items, converted)
		}
		return NewVector(items), nil
	case []string:
		items := make([]Value, len(v))
		for i, s := range v {
			items[i] = NewString(s)
		}
		return NewVector(items), nil
	case map[string]any:
		m := NewMap()
		for key, item := range v {
			converted, err := FromGoType(item)
			if err != nil {
				return nil, err
			}
			if err := m.Set(NewString(key), converted); err != nil {
				return nil, err
			}
		}
		return m, nil
	default:
		return nil, fmt.Errorf("type error: unsupported go type %T", v)
	}
}

// AsValues converts a map of Go values, failing on the first key that
// cannot be converted. Keys are visited in sorted order.
func AsValues(m map[string]any) (map[string]Value, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	result := make(map[string]Value, len(m))
	for _, k := range keys {
		v, err := FromGoType(m[k])
		if err != nil {
			return nil, fmt.Errorf("global %q: %w", k, err)
		}
		result[k] = v
	}
	return result, nil
}
