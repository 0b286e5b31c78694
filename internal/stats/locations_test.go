package stats

import (
	"strings"
	"testing"

	"ttc-transform/internal/normalize"
)

func locationRecord(location, route string, delay float64, vehicle int64) normalize.Record {
	return normalize.Record{
		Route:        route,
		Location:     location,
		VehicleID:    vehicle,
		DelayMinutes: delay,
	}
}

func TestLocationAnalysesGrouping(t *testing.T) {
	records := []normalize.Record{
		locationRecord("Kennedy Station", "102", 10, 1),
		locationRecord("Kennedy Station", "36", 20, 2),
		locationRecord("Finch Station", "36", 5, 2),
		locationRecord("", "102", 9, 3),        // no location
		locationRecord("Unknown", "102", 9, 3), // sentinel location
		locationRecord("Finch Station", "52", 0, 4), // invalid delay
	}

	analyses := LocationAnalyses(records)

	if len(analyses) != 2 {
		t.Fatalf("Expected 2 locations, got %d", len(analyses))
	}

	kennedy := analyses[0]
	if kennedy.LocationName != "Kennedy Station" {
		t.Fatalf("Expected Kennedy Station first (most delays), got %q", kennedy.LocationName)
	}
	if kennedy.TotalDelays != 2 {
		t.Errorf("Expected 2 delays, got %d", kennedy.TotalDelays)
	}
	if kennedy.AvgDelayMin != 15.0 {
		t.Errorf("Expected avg 15.0, got %v", kennedy.AvgDelayMin)
	}
	if kennedy.RouteCount != 2 || kennedy.VehicleCount != 2 {
		t.Errorf("Expected 2 routes / 2 vehicles, got %d / %d", kennedy.RouteCount, kennedy.VehicleCount)
	}
	if len(kennedy.PeakHours) != 2 || kennedy.PeakHours[0] != "07:00-09:00" {
		t.Errorf("Unexpected peak-hour windows: %v", kennedy.PeakHours)
	}
}

func TestLocationAnalysesTieBreaksOnName(t *testing.T) {
	records := []normalize.Record{
		locationRecord("Beta Station", "1", 10, 1),
		locationRecord("Alpha Station", "1", 10, 1),
	}
	analyses := LocationAnalyses(records)
	if len(analyses) != 2 {
		t.Fatalf("Expected 2 locations, got %d", len(analyses))
	}
	if analyses[0].LocationName != "Alpha Station" {
		t.Errorf("Equal counts must order by name, got %q first", analyses[0].LocationName)
	}
}

func TestSanitizeLocationID(t *testing.T) {
	cases := map[string]string{
		"Kennedy Station":        "kennedy_station",
		"King & Bathurst":        "king_and_bathurst",
		`St. Clair (West) / Yonge`: "st._clair_west___yonge",
		"O'Connor \"Loop\", East": "oconnor_loop_east",
	}
	for input, want := range cases {
		if got := SanitizeLocationID(input); got != want {
			t.Errorf("SanitizeLocationID(%q) = %q, expected %q", input, got, want)
		}
	}
}

func TestSanitizeLocationIDProperties(t *testing.T) {
	inputs := []string{
		"Kennedy Station", "King & Bathurst / Queen's Quay (Loop)",
		strings.Repeat("Very Long Location Name ", 10),
	}
	for _, input := range inputs {
		id := SanitizeLocationID(input)
		if len([]rune(id)) > 50 {
			t.Errorf("ID exceeds 50 chars: %q", id)
		}
		if id != strings.ToLower(id) {
			t.Errorf("ID not lowercase: %q", id)
		}
		if strings.ContainsAny(id, `/\&'"(),`) {
			t.Errorf("ID contains forbidden characters: %q", id)
		}
		// Idempotent: sanitizing an already-sanitized id changes nothing.
		if again := SanitizeLocationID(id); again != id {
			t.Errorf("Sanitization not idempotent: %q -> %q", id, again)
		}
	}
}

func TestPlaceholderCoordinatesDeterministic(t *testing.T) {
	records := []normalize.Record{locationRecord("Kennedy Station", "102", 10, 1)}

	first := LocationAnalyses(records)
	second := LocationAnalyses(records)

	if first[0].Latitude != second[0].Latitude || first[0].Longitude != second[0].Longitude {
		t.Error("Placeholder coordinates changed between runs")
	}
	if first[0].Latitude < 43.6 || first[0].Latitude > 43.7 {
		t.Errorf("Latitude outside reference window: %v", first[0].Latitude)
	}
	if first[0].Longitude < -79.43 || first[0].Longitude > -79.33 {
		t.Errorf("Longitude outside reference window: %v", first[0].Longitude)
	}
}
