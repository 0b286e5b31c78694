package gtfs

// Route represents a row of routes.txt.
type Route struct {
	RouteID        string
	RouteShortName string
	RouteLongName  string
}

// Trip represents a row of trips.txt.
type Trip struct {
	RouteID string
	TripID  string
	ShapeID string
}

// ShapePoint represents a row of shapes.txt.
type ShapePoint struct {
	Lat      float64
	Lon      float64
	Sequence int
}

// Tables holds the parsed relational tables needed for geometry derivation.
// Shape point lists are ordered by sequence number.
type Tables struct {
	Routes []Route
	Trips  []Trip
	Shapes map[string][]ShapePoint
}
