package template

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"

	"github.com/spf13/cast"
)

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Render coerces value to text and substitutes every {key} placeholder found
// in ctx. A nil value renders as the empty string.
func Render(value any, ctx map[string]any) string {
	if value == nil {
		return ""
	}
	text := ToText(value)
	if len(ctx) == 0 {
		return text
	}

	return placeholderPattern.ReplaceAllStringFunc(text, func(token string) string {
		key := token[1 : len(token)-1]
		val, ok := ctx[key]
		if !ok || val == nil {
			return token
		}
		return ToText(val)
	})
}

// Placeholders lists the keys referenced by text, in order of appearance.
// Repeated keys are reported once.
func Placeholders(text string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(text, -1)
	seen := make(map[string]bool, len(matches))
	keys := make([]string, 0, len(matches))
	for _, m := range matches {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		keys = append(keys, m[1])
	}
	return keys
}

// ToText converts an arbitrary value to its textual representation.
// Scalars use their natural form ("42", "true", "1.5"); composite values
// (maps, slices, structs) are rendered as compact JSON.
func ToText(value any) string {
	if value == nil {
		return ""
	}
	switch reflect.Indirect(reflect.ValueOf(value)).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		if _, isBytes := value.([]byte); !isBytes {
			if data, err := json.Marshal(value); err == nil {
				return string(data)
			}
			return fmt.Sprint(value)
		}
	}
	if s, err := cast.ToStringE(value); err == nil {
		return s
	}
	return fmt.Sprint(value)
}
