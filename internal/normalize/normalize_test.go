package normalize

import (
	"testing"
	"time"
)

func TestNormalizeCurrentDialect(t *testing.T) {
	raw := map[string]any{
		"Line":      "102 MARKHAM ROAD",
		"Station":   "Kennedy",
		"Min Delay": "15",
		"Min Gap":   "22",
		"Vehicle":   "4421",
		"Date":      "2025-01-05",
		"Time":      "08:10",
	}

	rec := Normalize(raw, "delay_2025.csv", 2025)

	if rec.Route != "102" {
		t.Errorf("Expected route 102, got %q", rec.Route)
	}
	if rec.Location != "Kennedy" {
		t.Errorf("Expected location Kennedy, got %q", rec.Location)
	}
	if rec.DelayMinutes != 15 {
		t.Errorf("Expected 15 delay minutes, got %v", rec.DelayMinutes)
	}
	if rec.GapMinutes != 22 {
		t.Errorf("Expected 22 gap minutes, got %v", rec.GapMinutes)
	}
	if rec.VehicleID != 4421 {
		t.Errorf("Expected vehicle 4421, got %d", rec.VehicleID)
	}
	if rec.Date.Format("2006-01-02") != "2025-01-05" {
		t.Errorf("Expected date 2025-01-05, got %v", rec.Date)
	}
	if rec.TimeOfDay != "08:10" {
		t.Errorf("Expected time of day 08:10, got %q", rec.TimeOfDay)
	}
	if rec.SourceFile != "delay_2025.csv" || rec.SourceYear != 2025 {
		t.Errorf("Provenance not tagged: %+v", rec)
	}
}

func TestNormalizeArchivalDialect(t *testing.T) {
	raw := map[string]any{
		"Route":       "36 FINCH WEST",
		"Location":    "Finch Station",
		"Delay":       float64(7),
		"Report Date": "2018-03-12",
	}

	rec := Normalize(raw, "ttc-bus-delay-2018.xlsx", 2018)

	if rec.Route != "36" {
		t.Errorf("Expected route 36, got %q", rec.Route)
	}
	if rec.Location != "Finch Station" {
		t.Errorf("Expected Finch Station, got %q", rec.Location)
	}
	if rec.DelayMinutes != 7 {
		t.Errorf("Expected 7 delay minutes, got %v", rec.DelayMinutes)
	}
	if rec.Date.Year() != 2018 {
		t.Errorf("Expected 2018 date, got %v", rec.Date)
	}
}

func TestAliasPriorityOrder(t *testing.T) {
	// Both "Line" and "Route" present: the earlier candidate wins.
	raw := map[string]any{
		"Line":  "504 KING",
		"Route": "999 WRONG",
	}
	rec := Normalize(raw, "x-2025.csv", 2025)
	if rec.Route != "504" {
		t.Errorf("Expected Line to take priority, got route %q", rec.Route)
	}

	// Empty higher-priority candidate falls through to the next.
	raw = map[string]any{
		"Line":  "",
		"Route": "29 DUFFERIN",
	}
	rec = Normalize(raw, "x-2025.csv", 2025)
	if rec.Route != "29" {
		t.Errorf("Expected fallthrough to Route, got %q", rec.Route)
	}
}

func TestDelayNeverNegative(t *testing.T) {
	cases := []struct {
		name  string
		value any
	}{
		{"non-numeric", "abc"},
		{"missing", nil},
		{"negative", "-5"},
		{"empty", ""},
	}

	for _, tc := range cases {
		raw := map[string]any{}
		if tc.value != nil {
			raw["Min Delay"] = tc.value
		}
		rec := Normalize(raw, "f-2025.csv", 2025)
		if rec.DelayMinutes < 0 {
			t.Errorf("%s: delay went negative: %v", tc.name, rec.DelayMinutes)
		}
		if rec.DelayMinutes != 0 {
			t.Errorf("%s: expected 0 delay, got %v", tc.name, rec.DelayMinutes)
		}
		if rec.HasValidDelay() {
			t.Errorf("%s: zero delay must not count as valid", tc.name)
		}
	}
}

func TestUnparseableDateGetsPlaceholder(t *testing.T) {
	rec := Normalize(map[string]any{"Date": "not a date"}, "f-2025.csv", 2025)
	if rec.Date.IsZero() {
		t.Fatal("Expected placeholder date, got zero time")
	}
	if !rec.Date.Equal(placeholderDate) {
		t.Errorf("Expected placeholder %v, got %v", placeholderDate, rec.Date)
	}

	rec = Normalize(map[string]any{}, "f-2025.csv", 2025)
	if !rec.Date.Equal(placeholderDate) {
		t.Errorf("Missing date column should also yield the placeholder, got %v", rec.Date)
	}
}

func TestDateLayoutVariants(t *testing.T) {
	cases := map[string]string{
		"2025-01-05T00:00:00": "2025-01-05",
		"2025-01-05":          "2025-01-05",
		"Jan 5, 2025":         "2025-01-05",
		"01/05/2025":          "2025-01-05",
	}
	for input, want := range cases {
		rec := Normalize(map[string]any{"Date": input}, "f-2025.csv", 2025)
		if got := rec.Date.Format("2006-01-02"); got != want {
			t.Errorf("Date %q: expected %s, got %s", input, want, got)
		}
	}
}

func TestRouteNumber(t *testing.T) {
	cases := map[string]string{
		"102 MARKHAM ROAD": "102",
		"7 BATHURST":       "7",
		"BLOOR NIGHT BUS":  "BLOOR NIGHT BUS",
		"":                 "",
		"501":              "501",
	}
	for input, want := range cases {
		if got := RouteNumber(input); got != want {
			t.Errorf("RouteNumber(%q): expected %q, got %q", input, want, got)
		}
	}
}

func TestBatchTagsProvenance(t *testing.T) {
	rows := []map[string]any{
		{"Line": "102", "Min Delay": "4"},
		{"Line": "36", "Min Delay": "9"},
	}
	records := Batch(rows, "delay_data_2025.json", 2025)
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	for _, rec := range records {
		if rec.SourceFile != "delay_data_2025.json" || rec.SourceYear != 2025 {
			t.Errorf("Provenance missing on %+v", rec)
		}
	}
}

func TestPlaceholderDateIsStable(t *testing.T) {
	want := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !placeholderDate.Equal(want) {
		t.Errorf("Placeholder date moved: %v", placeholderDate)
	}
}
