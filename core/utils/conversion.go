package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ToFloat converts numeric values (and numeric strings) to float64.
// The second return value is false when val is not numeric.
func ToFloat(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case int16:
		return float64(v), true
	case int8:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint8:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToNullableString is ToString that keeps nil as nil, for nullable text columns.
func ToNullableString(val any) *string {
	if val == nil {
		return nil
	}
	s := ToString(val)
	return &s
}

// Equal compares two scalar values. Numbers compare by value regardless of
// their Go type (int 5 equals float64 5.0); strings never equal numbers.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	_, aStr := a.(string)
	_, bStr := b.(string)
	if !aStr && !bStr {
		af, aok := ToFloat(a)
		bf, bok := ToFloat(b)
		if aok && bok {
			return af == bf
		}
	}
	if aStr != bStr {
		return false
	}
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}
