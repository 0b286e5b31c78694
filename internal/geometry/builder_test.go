package geometry

import (
	"testing"

	"ttc-transform/internal/gtfs"
)

func TestBuildJoinsTables(t *testing.T) {
	tables := &gtfs.Tables{
		Routes: []gtfs.Route{{RouteID: "102"}},
		Trips:  []gtfs.Trip{{RouteID: "102", TripID: "t1", ShapeID: "s1"}},
		Shapes: map[string][]gtfs.ShapePoint{
			"s1": {
				{Lat: 43.65, Lon: -79.38, Sequence: 1},
				{Lat: 43.66, Lon: -79.39, Sequence: 2},
				{Lat: 43.67, Lon: -79.40, Sequence: 3},
			},
		},
	}

	geometries := Build(tables)

	coords, ok := geometries["102"]
	if !ok {
		t.Fatal("Expected geometry for route 102")
	}
	if len(coords) != 3 {
		t.Fatalf("Expected 3 points, got %d", len(coords))
	}
	if coords[0] != (Coordinate{43.65, -79.38}) {
		t.Errorf("First point wrong: %v", coords[0])
	}
}

func TestBuildDropsOutOfRangePoints(t *testing.T) {
	tables := &gtfs.Tables{
		Trips: []gtfs.Trip{{RouteID: "102", ShapeID: "s1"}},
		Shapes: map[string][]gtfs.ShapePoint{
			"s1": {
				{Lat: 43.65, Lon: -79.38, Sequence: 1},
				{Lat: 200, Lon: -79.39, Sequence: 2}, // invalid latitude
				{Lat: 43.67, Lon: -79.40, Sequence: 3},
			},
		},
	}

	geometries := Build(tables)

	coords := geometries["102"]
	if len(coords) != 2 {
		t.Fatalf("Expected exactly 2 valid points, got %d", len(coords))
	}
	for _, c := range coords {
		if !c.Valid() {
			t.Errorf("Invalid coordinate survived: %v", c)
		}
	}
}

func TestBuildLastShapeWins(t *testing.T) {
	tables := &gtfs.Tables{
		Trips: []gtfs.Trip{
			{RouteID: "102", TripID: "t1", ShapeID: "s1"},
			{RouteID: "102", TripID: "t2", ShapeID: "s2"},
		},
		Shapes: map[string][]gtfs.ShapePoint{
			"s1": {{Lat: 43.65, Lon: -79.38, Sequence: 1}},
			"s2": {{Lat: 43.70, Lon: -79.30, Sequence: 1}},
		},
	}

	geometries := Build(tables)

	coords := geometries["102"]
	if len(coords) != 1 || coords[0] != (Coordinate{43.70, -79.30}) {
		t.Errorf("Expected the last trip's shape, got %v", coords)
	}
}

func TestBuildOmitsRoutesWithNoValidPoints(t *testing.T) {
	tables := &gtfs.Tables{
		Trips: []gtfs.Trip{{RouteID: "102", ShapeID: "s1"}},
		Shapes: map[string][]gtfs.ShapePoint{
			"s1": {{Lat: 200, Lon: 300, Sequence: 1}},
		},
	}
	if geometries := Build(tables); len(geometries) != 0 {
		t.Errorf("Expected no geometries, got %v", geometries)
	}
}

func TestBuildNilTables(t *testing.T) {
	if geometries := Build(nil); len(geometries) != 0 {
		t.Errorf("Expected empty result for nil tables, got %v", geometries)
	}
}
