// Package normalize maps raw source rows with vintage-dependent column names
// onto the canonical delay record shape. Column resolution is driven by the
// declarative alias table in aliases.yaml; coercion failures degrade to
// zero/placeholder values instead of dropping the record.
package normalize

import (
	"time"
)

// placeholderDate is substituted when no date candidate parses, so every
// record carries a date rather than failing normalization.
var placeholderDate = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// Normalize converts one raw source row into a canonical record tagged with
// its provenance.
func Normalize(raw map[string]any, sourceFile string, sourceYear int) Record {
	rec := Record{
		SourceFile: sourceFile,
		SourceYear: sourceYear,
	}

	if value, ok := resolve(raw, fieldDelayMinutes); ok {
		rec.DelayMinutes = asFloat(value)
	}
	if rec.DelayMinutes < 0 {
		rec.DelayMinutes = 0
	}

	if value, ok := resolve(raw, fieldGapMinutes); ok {
		rec.GapMinutes = asFloat(value)
	}
	if rec.GapMinutes < 0 {
		rec.GapMinutes = 0
	}

	if value, ok := resolve(raw, fieldRoute); ok {
		rec.Route = RouteNumber(asString(value))
	}

	if value, ok := resolve(raw, fieldLocation); ok {
		rec.Location = asString(value)
	}

	if value, ok := resolve(raw, fieldVehicle); ok {
		rec.VehicleID = asInt(value)
	}

	rec.Date = placeholderDate
	if value, ok := resolve(raw, fieldDate); ok {
		if t, parsed := parseDate(value); parsed {
			rec.Date = t
		}
	}

	if value, ok := resolve(raw, fieldTimeOfDay); ok {
		rec.TimeOfDay = asString(value)
	}

	return rec
}

// Batch normalizes a slice of raw rows sharing the same provenance.
func Batch(rows []map[string]any, sourceFile string, sourceYear int) []Record {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, Normalize(row, sourceFile, sourceYear))
	}
	return records
}

// RouteNumber extracts the leading numeric prefix of a route name, e.g.
// "102 MARKHAM ROAD" -> "102". Names without a numeric prefix pass through.
func RouteNumber(route string) string {
	end := 0
	for end < len(route) && route[end] >= '0' && route[end] <= '9' {
		end++
	}
	if end == 0 {
		return route
	}
	return route[:end]
}
