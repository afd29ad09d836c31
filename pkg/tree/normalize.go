package tree

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

// Normalize converts v into the canonical tree shape: map[string]any for
// objects and []any for lists, recursively. Typed containers built in Go
// ([]map[string]any, map[any]any, [][]any, ...) are rebuilt; json.Number
// becomes int or float64; other scalars pass through.
func Normalize(v Value) Value {
	switch n := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, item := range n {
			out[k] = Normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(n))
		for i, item := range n {
			out[i] = Normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(n))
		for k, item := range n {
			out[fmt.Sprint(k)] = Normalize(item)
		}
		return out
	case json.Number:
		// Strict decoders (loam, json.Decoder.UseNumber) hand numbers over as json.Number.
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	case string, bool, float64, float32, int, int64, int32, uint, uint64, uint32:
		return n
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = Normalize(iter.Value().Interface())
		}
		return out
	default:
		return v
	}
}

// Number reads v as a float64. It accepts Go numeric kinds, json.Number
// and numeric strings.
func Number(v Value) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Equal reports whether two trees are structurally equal.
func Equal(a, b Value) bool {
	return reflect.DeepEqual(a, b)
}
