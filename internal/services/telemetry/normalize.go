package telemetry

import (
	"fmt"
	"time"
)

// timestampLayout renders time values as ISO-8601 with millisecond
// precision. Layouts are cheap to share and safe for concurrent use, so one
// package-level layout serves every normalization call.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// NormalizeProperties converts a heterogeneous property bag into a
// same-shape bag whose values are all provider-transportable: strings,
// integers, floats, booleans, sequences and nested string-keyed maps pass
// through; time values render as ISO-8601 strings; anything else falls back
// to its fmt rendering. Unrecognized shapes never fail a tracking call.
//
// The function is pure and safe to call from many goroutines at once.
func NormalizeProperties(properties Properties) Properties {
	if len(properties) == 0 {
		return properties
	}

	normalized := make(Properties, len(properties))
	for key, value := range properties {
		normalized[key] = normalizeValue(value)
	}
	return normalized
}

// normalizeValue maps one dynamic value to a transportable shape. Booleans
// are matched as their own case: they must survive as booleans, never be
// coerced into 0/1.
//
// Sequence elements and nested map values are emitted as-is without
// recursive normalization; that is an accepted limitation.
func normalizeValue(value any) any {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return v
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return v
	case float32, float64:
		return v
	case time.Time:
		return v.Format(timestampLayout)
	case []any:
		return v
	case map[string]any:
		return v
	case Properties:
		return map[string]any(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
