package stats

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"ttc-transform/internal/normalize"
)

// defaultPeakHour is reported when no time-of-day value parses.
const defaultPeakHour = "08:00"

// Summarize derives the digest document from the canonical records and the
// already-computed aggregates. Pure function of its inputs; the caller
// supplies the freshness timestamp.
func Summarize(records []normalize.Record, performances []RoutePerformance, locations []LocationAnalysis, now time.Time) SummaryStatistics {
	total := len(records)

	var validDelays []float64
	routes := make(map[string]bool)
	vehicles := make(map[int64]bool)
	locationNames := make(map[string]bool)

	for _, rec := range records {
		if rec.HasValidDelay() {
			validDelays = append(validDelays, rec.DelayMinutes)
		}
		if rec.Route != "" {
			routes[rec.Route] = true
		}
		vehicles[rec.VehicleID] = true
		if rec.Location != "" {
			locationNames[rec.Location] = true
		}
	}

	valid := len(validDelays)
	validPct := 0.0
	if total > 0 {
		validPct = Round2(float64(valid) / float64(total) * 100)
	}

	span := dateSpan(records)
	timePeriod := "Unknown"
	if span != "Unknown" {
		timePeriod = span + " Data"
	}

	return SummaryStatistics{
		TotalDelays:        total,
		ValidDelays:        valid,
		AvgDelayMinutes:    Round2(Mean(validDelays)),
		UniqueRoutes:       len(routes),
		UniqueVehicles:     len(vehicles),
		UniqueLocations:    len(locationNames),
		DataPoints:         total,
		CoveragePercentage: Coverage(len(performances), len(routes)),
		TimePeriod:         timePeriod,
		UpdatedAt:          now.Format(time.RFC3339),
		PeakDelayHour:      PeakDelayHour(records),
		MostDelayedRoute:   mostDelayedRoute(performances),
		DataQuality: DataQuality{
			ValidDelayPercentage: validPct,
			RouteCoverage:        len(routes),
			LocationCoverage:     len(locationNames),
		},
	}
}

// Coverage is the share of distinct routes that survived aggregation
// filtering, as a display percentage rounded to 1 decimal.
func Coverage(displayedRoutes, distinctRoutes int) float64 {
	if distinctRoutes == 0 {
		return 0
	}
	return Round1(float64(displayedRoutes) / float64(distinctRoutes) * 100)
}

// PeakDelayHour finds the most frequent hour among the records' time-of-day
// values. The hour token is the text before the first ':'; unparseable tokens
// are discarded. Ties resolve to the smallest hour.
func PeakDelayHour(records []normalize.Record) string {
	counts := make(map[int]int)
	for _, rec := range records {
		token, _, found := strings.Cut(rec.TimeOfDay, ":")
		if !found {
			continue
		}
		hour, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil || hour < 0 || hour > 23 {
			continue
		}
		counts[hour]++
	}
	if len(counts) == 0 {
		return defaultPeakHour
	}

	hours := make([]int, 0, len(counts))
	for hour := range counts {
		hours = append(hours, hour)
	}
	sort.Ints(hours)

	peak, best := hours[0], counts[hours[0]]
	for _, hour := range hours[1:] {
		if counts[hour] > best {
			peak, best = hour, counts[hour]
		}
	}
	return fmt.Sprintf("%02d:00", peak)
}

// dateSpan renders the observed date range as "2025" or "2014-2025", or
// "Unknown" when no record carries a date.
func dateSpan(records []normalize.Record) string {
	minYear, maxYear := 0, 0
	for _, rec := range records {
		if rec.Date.IsZero() {
			continue
		}
		year := rec.Date.Year()
		if minYear == 0 || year < minYear {
			minYear = year
		}
		if year > maxYear {
			maxYear = year
		}
	}
	if minYear == 0 {
		return "Unknown"
	}
	if minYear == maxYear {
		return strconv.Itoa(minYear)
	}
	return fmt.Sprintf("%d-%d", minYear, maxYear)
}

func mostDelayedRoute(performances []RoutePerformance) string {
	if len(performances) == 0 {
		return "Unknown"
	}
	worst := performances[0]
	for _, p := range performances[1:] {
		if p.AvgDelayMin > worst.AvgDelayMin {
			worst = p
		}
	}
	return fmt.Sprintf("%s - %s", worst.Route, worst.DisplayName)
}
