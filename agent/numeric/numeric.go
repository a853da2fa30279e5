// Package numeric holds the single coercion helper every handler uses for
// numeric-looking model output. Keeping it in one place avoids ad hoc
// parsing scattered across the agents.
package numeric

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Normalize converts a value that may already be numeric, or may be a string
// carrying thousands separators, a currency symbol, a percent sign, or
// whitespace, into a float64. Anything unparseable (including nil and
// non-string, non-number types) yields 0. Normalize is total: it never
// panics and never returns an error.
func Normalize(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		clean := strings.NewReplacer(",", "", "$", "", "%", "").Replace(n)
		clean = strings.Join(strings.Fields(clean), "")
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
