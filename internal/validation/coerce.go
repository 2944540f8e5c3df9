package validation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// toInt coerces raw input into an int.
//
// Accepted: Go integers, whole floats (JSON numbers decode as float64),
// json.Number and numeric strings (query parameters are always strings).
// On failure it returns the violated constraint: ConstraintBase when the
// value is not a number at all, ConstraintInteger when it has a fraction.
func toInt(raw any) (int, string) {
	switch v := raw.(type) {
	case int:
		return v, ""
	case int8:
		return int(v), ""
	case int16:
		return int(v), ""
	case int32:
		return int(v), ""
	case int64:
		return int(v), ""
	case uint8:
		return int(v), ""
	case uint16:
		return int(v), ""
	case uint32:
		return int(v), ""
	case float32:
		return floatToInt(float64(v))
	case float64:
		return floatToInt(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), ""
		}
		if f, err := v.Float64(); err == nil {
			return floatToInt(f)
		}
		return 0, ConstraintBase
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, ConstraintBase
		}
		if n, err := strconv.Atoi(s); err == nil {
			return n, ""
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return floatToInt(f)
		}
		return 0, ConstraintBase
	default:
		return 0, ConstraintBase
	}
}

func floatToInt(f float64) (int, string) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ConstraintBase
	}
	if f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, ConstraintInteger
	}
	return int(f), ""
}
