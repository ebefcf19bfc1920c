// Package output produces deterministic JSON report encodings.
// Re-running analysis on an unchanged tree must yield byte-identical
// output, so floats are rounded and map keys rely on encoding/json's
// sorted-key ordering.
package output

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// DeterministicEncode produces byte-identical JSON output for equal values
// - Stable key ordering (encoding/json sorts map keys)
// - Float formatting: max 6 decimal places via rounding
// - HTML escaping disabled so paths render verbatim
func DeterministicEncode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(normalizeValue(v)); err != nil {
		return nil, err
	}

	// Remove the trailing newline added by Encode
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}

	return result, nil
}

// DeterministicEncodeIndented produces indented byte-identical JSON output
func DeterministicEncodeIndented(v interface{}, indent string) ([]byte, error) {
	compact, err := DeterministicEncode(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// normalizeValue recursively rounds floats so formatting noise never leaks
// into the encoded report. Slices and maps keep their shape; an empty slice
// stays an empty JSON array.
func normalizeValue(v interface{}) interface{} {
	if v == nil {
		return nil
	}

	val := reflect.ValueOf(v)
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}

	// Types with their own JSON encoding (time.Time most importantly) must
	// not be flattened into field maps; their unexported fields would vanish.
	if m, ok := val.Interface().(json.Marshaler); ok {
		return m
	}

	switch val.Kind() {
	case reflect.Float32, reflect.Float64:
		return RoundFloat(val.Float())

	case reflect.Map:
		if val.IsNil() {
			return map[string]interface{}{}
		}
		result := make(map[string]interface{}, val.Len())
		iter := val.MapRange()
		for iter.Next() {
			result[iter.Key().String()] = normalizeValue(iter.Value().Interface())
		}
		return result

	case reflect.Slice, reflect.Array:
		length := val.Len()
		result := make([]interface{}, length)
		for i := 0; i < length; i++ {
			result[i] = normalizeValue(val.Index(i).Interface())
		}
		return result

	case reflect.Struct:
		return normalizeStruct(val)

	case reflect.Interface:
		if val.IsNil() {
			return nil
		}
		return normalizeValue(val.Interface())

	default:
		return val.Interface()
	}
}

// normalizeStruct converts a struct to a map honoring json tags
func normalizeStruct(val reflect.Value) map[string]interface{} {
	result := make(map[string]interface{})
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		name, omitEmpty := parseJSONTag(field.Tag.Get("json"))
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}

		normalized := normalizeValue(val.Field(i).Interface())
		if omitEmpty && isZeroValue(normalized) {
			continue
		}
		result[name] = normalized
	}

	return result
}

// parseJSONTag splits a json struct tag into name and omitempty flag
func parseJSONTag(tag string) (name string, omitEmpty bool) {
	if tag == "" {
		return "", false
	}
	for i, part := range splitComma(tag) {
		if i == 0 {
			name = part
		} else if part == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty
}

func splitComma(s string) []string {
	var parts []string
	current := ""
	for _, ch := range s {
		if ch == ',' {
			parts = append(parts, current)
			current = ""
		} else {
			current += string(ch)
		}
	}
	parts = append(parts, current)
	return parts
}

// isZeroValue checks if a normalized value is zero/empty
func isZeroValue(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return !val
	case string:
		return val == ""
	case float64:
		return val == 0
	case int64:
		return val == 0
	case []interface{}:
		return len(val) == 0
	case map[string]interface{}:
		return len(val) == 0
	default:
		rv := reflect.ValueOf(v)
		return rv.IsZero()
	}
}
