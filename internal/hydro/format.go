package hydro

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValueUnavailable is the display string for a missing reading.
const ValueUnavailable = "dato non disponibile"

// FormatValue renders a sensor reading for display: missing values get a
// fixed placeholder, numeric values (including numeric-looking strings)
// are rendered with two decimals and the metre unit, and anything else
// falls back to its own string form.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ValueUnavailable
	case float64:
		return fmt.Sprintf("%.2f m", val)
	case float32:
		return fmt.Sprintf("%.2f m", float64(val))
	case int:
		return fmt.Sprintf("%.2f m", float64(val))
	case int64:
		return fmt.Sprintf("%.2f m", float64(val))
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return fmt.Sprintf("%.2f m", f)
		}
		return val.String()
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return fmt.Sprintf("%.2f m", f)
		}
		return val
	default:
		return fmt.Sprint(val)
	}
}
