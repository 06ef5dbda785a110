// Package rawval coerces the loosely-typed values produced by YAML/JSON
// decoding into the shapes the scope loaders expect.
package rawval

import (
	"fmt"
	"sort"
)

// String renders a raw scalar the way the declarative format treats it:
// numbers and booleans become their text form.
func String(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// List returns v as a generic list. The second result is false when v is
// not a sequence.
func List(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}

// Mapping returns v as a string-keyed mapping. yaml.v3 produces
// map[string]any for string keys, but older decoders and hand-built inputs
// may use map[any]any; both are accepted. Non-string keys are rendered with
// String.
func Mapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[String(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// SortedKeys returns m's keys in lexical order, for deterministic iteration
// over decoded mappings.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
