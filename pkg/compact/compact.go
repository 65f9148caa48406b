// Package compact prunes empty values from nested payloads before they are
// sent to an agent, keeping the token footprint small.
package compact

import (
	"reflect"
)

// Compact returns v with every nil value, empty string, empty slice and empty
// map removed, recursively. The boolean is false when v itself collapses to
// nothing and should be omitted by the caller.
//
// Other scalars, including 0 and false, are returned unchanged. Slices keep the
// relative order of their surviving elements. Generic JSON trees
// (map[string]any, []any) are handled directly; other slice and map types are
// walked through reflection and come back as []any / map[string]any.
func Compact(v any) (any, bool) {
	switch val := v.(type) {
	case nil:
		return nil, false
	case string:
		if val == "" {
			return nil, false
		}
		return val, true
	case []any:
		return compactSlice(len(val), func(i int) any { return val[i] })
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if c, ok := Compact(item); ok {
				out[k] = c
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, false
		}
		return Compact(rv.Elem().Interface())
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			// []byte is a scalar blob, not a list.
			if rv.Len() == 0 {
				return nil, false
			}
			return v, true
		}
		if rv.IsNil() {
			return nil, false
		}
		return compactSlice(rv.Len(), func(i int) any { return rv.Index(i).Interface() })
	case reflect.Array:
		return compactSlice(rv.Len(), func(i int) any { return rv.Index(i).Interface() })
	case reflect.Map:
		if rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
			if rv.IsNil() {
				return nil, false
			}
			return v, true
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			if c, ok := Compact(iter.Value().Interface()); ok {
				out[iter.Key().String()] = c
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	case reflect.String:
		if rv.Len() == 0 {
			return nil, false
		}
		return v, true
	}
	return v, true
}

func compactSlice(n int, at func(int) any) (any, bool) {
	out := make([]any, 0, n)
	for i := 0; i < n; i++ {
		if c, ok := Compact(at(i)); ok {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}
