package normalize

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts covers the date representations seen across source vintages:
// datastore JSON timestamps, spreadsheet date cells rendered as text, and the
// occasional North-American short form.
var dateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"2-Jan-06",
	"January 2, 2006",
}

// asString renders any raw cell value as a trimmed string.
func asString(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// asFloat coerces a raw cell value to a float64. Anything unparseable yields
// 0 rather than an error.
func asFloat(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// asInt coerces a raw cell value to an int64, truncating fractional parts.
// Unparseable values yield 0.
func asInt(value any) int64 {
	return int64(asFloat(value))
}

// parseDate tries each known layout against the value's string form.
func parseDate(value any) (time.Time, bool) {
	s := asString(value)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
