package stats

// RoutePerformance is one route's aggregated delay metrics.
type RoutePerformance struct {
	Route          string
	DelayCount     int
	AvgDelayMin    float64
	TotalDelayMin  float64
	UniqueVehicles int
	DelaysPerDay   float64
	// OnTimePct is always 0: computing it would require schedule data the
	// delay feed does not carry.
	OnTimePct   float64
	DisplayName string
}

// LocationAnalysis is one location's aggregated delay metrics.
type LocationAnalysis struct {
	LocationID   string
	LocationName string
	TotalDelays  int
	AvgDelayMin  float64
	Latitude     float64
	Longitude    float64
	RouteCount   int
	VehicleCount int
	PeakHours    []string
}

// DataQuality summarizes how usable the raw feed was.
type DataQuality struct {
	ValidDelayPercentage float64 `json:"valid_delay_percentage"`
	RouteCoverage        int     `json:"route_coverage"`
	LocationCoverage     int     `json:"location_coverage"`
}

// SummaryStatistics is the top-level digest written alongside the tabular
// artifacts. JSON keys match the published document format.
type SummaryStatistics struct {
	TotalDelays        int         `json:"total_delays"`
	ValidDelays        int         `json:"valid_delays"`
	AvgDelayMinutes    float64     `json:"avg_delay_minutes"`
	UniqueRoutes       int         `json:"unique_routes"`
	UniqueVehicles     int         `json:"unique_vehicles"`
	UniqueLocations    int         `json:"unique_locations"`
	DataPoints         int         `json:"data_points"`
	CoveragePercentage float64     `json:"coverage_percentage"`
	TimePeriod         string      `json:"time_period"`
	UpdatedAt          string      `json:"updated_at"`
	PeakDelayHour      string      `json:"peak_delay_hour"`
	MostDelayedRoute   string      `json:"most_delayed_route"`
	DataQuality        DataQuality `json:"data_quality"`
}
