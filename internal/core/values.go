package core

// values.go provides small helpers for working with decoded upstream JSON,
// where every value arrives as any (string, float64, bool, map, slice, nil).

import (
	"fmt"
	"strconv"
)

// displayString renders a scalar display value as a plain string.
// nil renders as the empty string. Numbers drop the decimal point when
// they are whole, matching how the upstream values are displayed.
func displayString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// isScalar reports whether a decoded JSON value is scalar-typed
// (string, number, or boolean). Objects, arrays, and nulls are not.
func isScalar(v any) bool {
	switch v.(type) {
	case string, float64, int, int64, bool:
		return true
	default:
		return false
	}
}

// isBlank reports whether a value is absent for display purposes:
// nil, the empty string, or false/zero.
func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case float64:
		return t == 0
	case int:
		return t == 0
	case int64:
		return t == 0
	case bool:
		return !t
	default:
		return false
	}
}

// firstPresent returns the first non-nil value among the named keys of rec.
// Present means the key exists and its value is not null.
func firstPresent(rec map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := rec[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// firstNonBlank returns the first value among the named keys of rec that is
// present and not blank. Used for fields where an empty string or zero is
// treated as absent (identifiers and labels).
func firstNonBlank(rec map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := rec[k]; ok && !isBlank(v) {
			return v, true
		}
	}
	return nil, false
}
