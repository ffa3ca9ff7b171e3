// Copyright (C) 2025 Jordan Mercer. All Rights Reserved.

package value

import (
	"fmt"
	"math"
	"sort"
)

// From converts a string, int, uint, float, bool, nil, []any,
// map[string]any, or Value into a Value. It panics if v does not have one
// of those types.
//
// A uint64 converts to an Int when its value fits in int64, and to a Uint
// otherwise, matching the decoder's classification of integer literals.
// Because a Go map does not record insertion order, the members of an
// object built from a map are ordered by key.
func From(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Int(t)
	case int8:
		return Int(t)
	case int16:
		return Int(t)
	case int32:
		return Int(t)
	case int64:
		return Int(t)
	case uint:
		return fromUint64(uint64(t))
	case uint8:
		return Int(t)
	case uint16:
		return Int(t)
	case uint32:
		return Int(t)
	case uint64:
		return fromUint64(t)
	case float32:
		return Float(t)
	case float64:
		return Float(t)
	case []any:
		out := make(Array, len(t))
		for i, elt := range t {
			out[i] = From(elt)
		}
		return out
	case []Value:
		return Array(t)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		out := make(Object, len(keys))
		for i, key := range keys {
			out[i] = &Member{Key: key, Value: From(t[key])}
		}
		return out
	default:
		panic(fmt.Sprintf("invalid value of type %T", v))
	}
}

func fromUint64(v uint64) Value {
	if v > math.MaxInt64 {
		return Uint(v)
	}
	return Int(v)
}
