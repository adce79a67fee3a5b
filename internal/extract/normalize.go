package extract

import (
	"encoding/json"
	"strconv"
)

// Numeric coerces an arbitrary decoded JSON value into a float64. It is a
// total function: unknown or malformed shapes degrade to 0 instead of
// erroring, so one bad field never aborts a run.
//
// Rules, in order: numeric kinds pass through; a sequence yields its first
// numeric element; a string is parsed as a float; everything else is 0.
func Numeric(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0
		}
		return f
	case []any:
		for _, item := range x {
			switch item.(type) {
			case float64, float32, int, int64, json.Number:
				return Numeric(item)
			}
		}
		return 0
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
