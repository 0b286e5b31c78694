// Package stats computes the grouped delay aggregates and the summary digest
// from a single canonical record collection.
package stats

import (
	"fmt"
	"sort"

	"ttc-transform/internal/normalize"
)

// excludedRoutes are never reported regardless of delay volume. These are
// subway/RT line identifiers that leak into the bus delay feed.
var excludedRoutes = map[string]bool{
	"1": true,
	"2": true,
	"3": true,
	"4": true,
}

// minDelayCount is the smallest group size worth reporting; groups must
// exceed it strictly.
const minDelayCount = 10

// fallbackObservationDays stands in for the distinct-date count when no
// record carries a date.
const fallbackObservationDays = 30

// RoutePerformances groups valid delays by route and computes per-route
// metrics. Routes with 10 or fewer delays, and the fixed exclusion set, are
// dropped. Results are ordered by route id ascending.
func RoutePerformances(records []normalize.Record) []RoutePerformance {
	type routeAccum struct {
		count    int
		sum      float64
		vehicles map[int64]bool
	}

	groups := make(map[string]*routeAccum)
	dates := make(map[string]bool)

	for _, rec := range records {
		if !rec.Date.IsZero() {
			dates[rec.Date.Format("2006-01-02")] = true
		}
		if !rec.HasValidDelay() || rec.Route == "" {
			continue
		}
		acc, ok := groups[rec.Route]
		if !ok {
			acc = &routeAccum{vehicles: make(map[int64]bool)}
			groups[rec.Route] = acc
		}
		acc.count++
		acc.sum += rec.DelayMinutes
		acc.vehicles[rec.VehicleID] = true
	}

	totalDays := len(dates)
	if totalDays == 0 {
		totalDays = fallbackObservationDays
	}

	var performances []RoutePerformance
	for route, acc := range groups {
		if acc.count <= minDelayCount {
			continue
		}
		if excludedRoutes[route] {
			continue
		}
		performances = append(performances, RoutePerformance{
			Route:          route,
			DelayCount:     acc.count,
			AvgDelayMin:    Round2(acc.sum / float64(acc.count)),
			TotalDelayMin:  Round2(acc.sum),
			UniqueVehicles: len(acc.vehicles),
			DelaysPerDay:   Round2(float64(acc.count) / float64(totalDays)),
			OnTimePct:      0,
			DisplayName:    fmt.Sprintf("Route %s", route),
		})
	}

	sort.Slice(performances, func(i, j int) bool {
		return performances[i].Route < performances[j].Route
	})

	return performances
}

// DistinctRoutes counts the distinct non-empty route ids in the unfiltered
// collection.
func DistinctRoutes(records []normalize.Record) int {
	routes := make(map[string]bool)
	for _, rec := range records {
		if rec.Route != "" {
			routes[rec.Route] = true
		}
	}
	return len(routes)
}
