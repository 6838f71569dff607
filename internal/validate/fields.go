package validate

import (
	"sort"
	"strings"
)

// MissingFields returns the required field names that are absent or null in
// the input, in declaration order.
func MissingFields(input map[string]any, required []string) []string {
	var missing []string
	for _, name := range required {
		v, ok := input[name]
		if !ok || v == nil {
			missing = append(missing, name)
		}
	}
	return missing
}

// ExtraFields returns input field names outside the allowed set, sorted.
func ExtraFields(input map[string]any, allowed []string) []string {
	set := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		set[name] = true
	}
	var extra []string
	for name := range input {
		if !set[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return extra
}

// NonEmpty reports whether v is a non-whitespace string, or any non-string
// non-nil value.
func NonEmpty(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// InEnum reports whether value is in the declared set.
func InEnum(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// Number coerces a JSON-decoded value to float64. Inputs arrive through
// encoding/json, so numbers are float64; int covers fixtures built in code.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Positive reports whether v is a number strictly greater than zero.
func Positive(v any) bool {
	n, ok := Number(v)
	return ok && n > 0
}

// NonNegative reports whether v is a number ≥ 0.
func NonNegative(v any) bool {
	n, ok := Number(v)
	return ok && n >= 0
}

// InRange reports lo ≤ x ≤ hi.
func InRange(x, lo, hi float64) bool { return x >= lo && x <= hi }

// Truthy reports whether v is boolean true. Approval booleans must be
// present and true; any other value (including "true") is not consent.
func Truthy(v any) bool {
	b, ok := v.(bool)
	return ok && b
}
