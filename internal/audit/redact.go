package audit

import (
	"encoding/json"
	"strings"
)

// Marker replaces the value of every sensitive field.
const Marker = "<redacted>"

var sensitiveKeys = []string{"password"}

func isSensitive(key string) bool {
	for _, k := range sensitiveKeys {
		if strings.EqualFold(key, k) {
			return true
		}
	}
	return false
}

// Redact walks a JSON-like value and replaces the value of every
// denylisted key, preserving the shape of nested objects and arrays.
// A string input is parsed as JSON first; if it does not parse it is
// returned unchanged. Redact is idempotent and never fails.
func Redact(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		var parsed any
		if err := json.Unmarshal([]byte(t), &parsed); err != nil {
			return t
		}
		return redactValue(parsed)
	case map[string]any, []any:
		return redactValue(t)
	default:
		// Structs and other typed values: normalize through JSON so the
		// walk only ever sees maps, slices and primitives.
		raw, err := json.Marshal(t)
		if err != nil {
			return t
		}
		var parsed any
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return t
		}
		return redactValue(parsed)
	}
}

func redactValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if isSensitive(k) {
				out[k] = Marker
				continue
			}
			out[k] = redactValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = redactValue(val)
		}
		return out
	default:
		return v
	}
}
