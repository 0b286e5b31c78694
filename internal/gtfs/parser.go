// Package gtfs parses the static GTFS tables (routes, trips, shapes) the
// geometry stage joins against.
package gtfs

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Entry names within the GTFS feed.
const (
	RoutesFile = "routes.txt"
	TripsFile  = "trips.txt"
	ShapesFile = "shapes.txt"
	StopsFile  = "stops.txt"
)

// ParseTables parses the three geometry-relevant tables out of extracted
// entry contents keyed by entry name. A missing table yields an error; a
// malformed row within a table is skipped.
func ParseTables(contents map[string]string) (*Tables, error) {
	tables := &Tables{
		Shapes: make(map[string][]ShapePoint),
	}

	routesCSV, ok := contents[RoutesFile]
	if !ok {
		return nil, fmt.Errorf("missing %s", RoutesFile)
	}
	tripsCSV, ok := contents[TripsFile]
	if !ok {
		return nil, fmt.Errorf("missing %s", TripsFile)
	}
	shapesCSV, ok := contents[ShapesFile]
	if !ok {
		return nil, fmt.Errorf("missing %s", ShapesFile)
	}

	var err error
	if tables.Routes, err = parseRoutes(routesCSV); err != nil {
		return nil, fmt.Errorf("parse %s: %w", RoutesFile, err)
	}
	if tables.Trips, err = parseTrips(tripsCSV); err != nil {
		return nil, fmt.Errorf("parse %s: %w", TripsFile, err)
	}
	if tables.Shapes, err = parseShapes(shapesCSV); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ShapesFile, err)
	}

	log.Debug().
		Int("routes", len(tables.Routes)).
		Int("trips", len(tables.Trips)).
		Int("shapes", len(tables.Shapes)).
		Msg("GTFS tables parsed")

	return tables, nil
}

func parseRoutes(content string) ([]Route, error) {
	var routes []Route
	err := eachRow(content, func(record []string, idx map[string]int) {
		routes = append(routes, Route{
			RouteID:        getField(record, idx, "route_id"),
			RouteShortName: getField(record, idx, "route_short_name"),
			RouteLongName:  getField(record, idx, "route_long_name"),
		})
	})
	return routes, err
}

func parseTrips(content string) ([]Trip, error) {
	var trips []Trip
	err := eachRow(content, func(record []string, idx map[string]int) {
		trips = append(trips, Trip{
			RouteID: getField(record, idx, "route_id"),
			TripID:  getField(record, idx, "trip_id"),
			ShapeID: getField(record, idx, "shape_id"),
		})
	})
	return trips, err
}

func parseShapes(content string) (map[string][]ShapePoint, error) {
	shapes := make(map[string][]ShapePoint)
	err := eachRow(content, func(record []string, idx map[string]int) {
		shapeID := getField(record, idx, "shape_id")
		if shapeID == "" {
			return
		}
		lat, errLat := strconv.ParseFloat(getField(record, idx, "shape_pt_lat"), 64)
		lon, errLon := strconv.ParseFloat(getField(record, idx, "shape_pt_lon"), 64)
		if errLat != nil || errLon != nil {
			return
		}
		seq, _ := strconv.Atoi(getField(record, idx, "shape_pt_sequence"))
		shapes[shapeID] = append(shapes[shapeID], ShapePoint{
			Lat:      lat,
			Lon:      lon,
			Sequence: seq,
		})
	})
	if err != nil {
		return nil, err
	}

	for shapeID := range shapes {
		points := shapes[shapeID]
		sort.Slice(points, func(i, j int) bool {
			return points[i].Sequence < points[j].Sequence
		})
		shapes[shapeID] = points
	}
	return shapes, nil
}

// eachRow streams a header-indexed CSV, invoking fn per data row. Rows that
// fail to parse are skipped.
func eachRow(content string, fn func(record []string, idx map[string]int)) error {
	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	idx := makeIndex(header)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		fn(record, idx)
	}
	return nil
}

func makeIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	return idx
}

func getField(record []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
