// Package geometry derives per-route coordinate sequences from the GTFS
// shapes/trips/routes join, with a deterministic synthetic fallback when the
// source feed is unavailable.
package geometry

import (
	"ttc-transform/internal/gtfs"

	"github.com/rs/zerolog/log"
)

// Coordinate is a [latitude, longitude] pair.
type Coordinate [2]float64

// RouteGeometries maps route id to an ordered coordinate sequence.
type RouteGeometries map[string][]Coordinate

// Valid reports whether the coordinate lies in the Earth coordinate ranges.
func (c Coordinate) Valid() bool {
	return c[0] >= -90 && c[0] <= 90 && c[1] >= -180 && c[1] <= 180
}

// Build joins shapes against trips to produce one coordinate list per route.
// When a route has trips with different shapes, the last association
// encountered wins. Out-of-range points are dropped from the sequence;
// routes left with no points are omitted.
func Build(tables *gtfs.Tables) RouteGeometries {
	if tables == nil {
		return RouteGeometries{}
	}

	routeToShape := make(map[string]string)
	for _, trip := range tables.Trips {
		if trip.RouteID == "" || trip.ShapeID == "" {
			continue
		}
		routeToShape[trip.RouteID] = trip.ShapeID
	}

	geometries := make(RouteGeometries, len(routeToShape))
	for routeID, shapeID := range routeToShape {
		points, ok := tables.Shapes[shapeID]
		if !ok {
			continue
		}
		coords := make([]Coordinate, 0, len(points))
		for _, p := range points {
			coord := Coordinate{p.Lat, p.Lon}
			if !coord.Valid() {
				continue
			}
			coords = append(coords, coord)
		}
		if len(coords) > 0 {
			geometries[routeID] = coords
		}
	}

	log.Debug().Int("routes", len(geometries)).Msg("Built route geometries from GTFS")
	return geometries
}
