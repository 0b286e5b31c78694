package gtfs

import "testing"

func sampleContents() map[string]string {
	return map[string]string{
		RoutesFile: "route_id,route_short_name,route_long_name\n102,102,MARKHAM ROAD\n36,36,FINCH WEST\n",
		TripsFile:  "route_id,service_id,trip_id,shape_id\n102,WD,t1,s1\n36,WD,t2,s2\n",
		ShapesFile: "shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence\n" +
			"s1,43.66,-79.39,2\n" +
			"s1,43.65,-79.38,1\n" +
			"s1,43.67,-79.40,3\n",
	}
}

func TestParseTables(t *testing.T) {
	tables, err := ParseTables(sampleContents())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(tables.Routes) != 2 {
		t.Errorf("Expected 2 routes, got %d", len(tables.Routes))
	}
	if tables.Routes[0].RouteID != "102" || tables.Routes[0].RouteLongName != "MARKHAM ROAD" {
		t.Errorf("First route mismatch: %+v", tables.Routes[0])
	}
	if len(tables.Trips) != 2 {
		t.Errorf("Expected 2 trips, got %d", len(tables.Trips))
	}
	if tables.Trips[0].ShapeID != "s1" {
		t.Errorf("First trip mismatch: %+v", tables.Trips[0])
	}
}

func TestParseShapesOrdersBySequence(t *testing.T) {
	tables, err := ParseTables(sampleContents())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	points := tables.Shapes["s1"]
	if len(points) != 3 {
		t.Fatalf("Expected 3 shape points, got %d", len(points))
	}
	for i, want := range []int{1, 2, 3} {
		if points[i].Sequence != want {
			t.Errorf("Position %d: expected sequence %d, got %d", i, want, points[i].Sequence)
		}
	}
	if points[0].Lat != 43.65 {
		t.Errorf("Reordering lost coordinates: %+v", points[0])
	}
}

func TestParseTablesMissingEntry(t *testing.T) {
	contents := sampleContents()
	delete(contents, ShapesFile)
	if _, err := ParseTables(contents); err == nil {
		t.Error("Expected an error for a missing table")
	}
}

func TestParseShapesSkipsMalformedRows(t *testing.T) {
	contents := sampleContents()
	contents[ShapesFile] = "shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence\n" +
		"s1,43.65,-79.38,1\n" +
		"s1,not-a-number,-79.38,2\n"

	tables, err := ParseTables(contents)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(tables.Shapes["s1"]) != 1 {
		t.Errorf("Malformed row should be skipped, got %v", tables.Shapes["s1"])
	}
}
