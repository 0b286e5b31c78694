package stats

import (
	"hash/fnv"
	"math"
	"sort"
	"strings"

	"ttc-transform/internal/normalize"
)

// peakHourWindows are fixed display labels; the feed has no per-location
// time-of-day resolution to derive real windows from.
var peakHourWindows = []string{"07:00-09:00", "16:00-18:00"}

// Toronto reference point for placeholder coordinates.
const (
	placeholderLatCenter = 43.65
	placeholderLngCenter = -79.38
	placeholderSpread    = 0.1
)

const maxLocationIDLen = 50

// LocationAnalyses groups valid delays by location and computes per-location
// metrics, ordered by total delays descending (name ascending on ties).
// Records with an empty or "Unknown" location are excluded.
func LocationAnalyses(records []normalize.Record) []LocationAnalysis {
	type locationAccum struct {
		count    int
		sum      float64
		routes   map[string]bool
		vehicles map[int64]bool
	}

	groups := make(map[string]*locationAccum)
	for _, rec := range records {
		if rec.Location == "" || rec.Location == "Unknown" {
			continue
		}
		if !rec.HasValidDelay() {
			continue
		}
		acc, ok := groups[rec.Location]
		if !ok {
			acc = &locationAccum{
				routes:   make(map[string]bool),
				vehicles: make(map[int64]bool),
			}
			groups[rec.Location] = acc
		}
		acc.count++
		acc.sum += rec.DelayMinutes
		acc.routes[rec.Route] = true
		acc.vehicles[rec.VehicleID] = true
	}

	var analyses []LocationAnalysis
	for name, acc := range groups {
		id := SanitizeLocationID(name)
		lat, lng := placeholderCoordinates(id)
		analyses = append(analyses, LocationAnalysis{
			LocationID:   id,
			LocationName: name,
			TotalDelays:  acc.count,
			AvgDelayMin:  Round2(acc.sum / float64(acc.count)),
			Latitude:     lat,
			Longitude:    lng,
			RouteCount:   len(acc.routes),
			VehicleCount: len(acc.vehicles),
			PeakHours:    peakHourWindows,
		})
	}

	sort.Slice(analyses, func(i, j int) bool {
		if analyses[i].TotalDelays != analyses[j].TotalDelays {
			return analyses[i].TotalDelays > analyses[j].TotalDelays
		}
		return analyses[i].LocationName < analyses[j].LocationName
	})

	return analyses
}

// SanitizeLocationID derives a stable identifier from a location name:
// lowercase, spaces and slashes to underscores, "&" to "and", punctuation
// stripped, truncated to 50 characters. Idempotent.
func SanitizeLocationID(name string) string {
	id := strings.ToLower(name)
	id = strings.NewReplacer(
		" ", "_",
		"/", "_",
		`\`, "_",
		"&", "and",
		"'", "",
		`"`, "",
		"(", "",
		")", "",
		",", "",
	).Replace(id)

	runes := []rune(id)
	if len(runes) > maxLocationIDLen {
		runes = runes[:maxLocationIDLen]
	}
	return string(runes)
}

// placeholderCoordinates maps a location id into a deterministic point inside
// the reference window around downtown Toronto. The feed carries no
// geocoding, so these are display placeholders, stable across runs.
func placeholderCoordinates(locationID string) (float64, float64) {
	lat := placeholderLatCenter + (hashUnit(locationID+":lat")-0.5)*placeholderSpread
	lng := placeholderLngCenter + (hashUnit(locationID+":lng")-0.5)*placeholderSpread
	return round6(lat), round6(lng)
}

// hashUnit maps a string into [0,1).
func hashUnit(s string) float64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return float64(h.Sum64()%1_000_000) / 1_000_000
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
