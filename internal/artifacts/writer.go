// Package artifacts serializes the derived datasets to the output folder,
// overwriting whatever a prior run left behind.
package artifacts

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"ttc-transform/internal/geometry"
	"ttc-transform/internal/stats"

	"github.com/rs/zerolog/log"
)

// Output file names.
const (
	RoutePerformanceFile  = "route_performance.csv"
	RouteGeometriesFile   = "route_geometries.json"
	LocationAnalysisFile  = "location_analysis.csv"
	SummaryStatisticsFile = "summary_statistics.json"
)

// WriteAll writes the four artifacts. Any single failure is fatal for the
// run; partially written outputs from a failed run are superseded by the
// next successful one.
func WriteAll(outputDir string, performances []stats.RoutePerformance, geometries geometry.RouteGeometries, locations []stats.LocationAnalysis, summary stats.SummaryStatistics) error {
	if err := WriteRoutePerformance(filepath.Join(outputDir, RoutePerformanceFile), performances); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(outputDir, RouteGeometriesFile), geometries); err != nil {
		return err
	}
	if err := WriteLocationAnalysis(filepath.Join(outputDir, LocationAnalysisFile), locations); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(outputDir, SummaryStatisticsFile), summary); err != nil {
		return err
	}

	log.Info().
		Int("routes", len(performances)).
		Int("geometries", len(geometries)).
		Int("locations", len(locations)).
		Str("dir", outputDir).
		Msg("Artifacts written")

	return nil
}

// WriteRoutePerformance writes the route metrics table. The header row is
// always present, so an empty aggregation still yields a parseable file.
func WriteRoutePerformance(path string, performances []stats.RoutePerformance) error {
	rows := make([][]string, 0, len(performances)+1)
	rows = append(rows, []string{
		"Route", "Delay_Count", "Avg_Delay_Min", "Total_Delay_Min",
		"Unique_Vehicles", "Delays_Per_Day", "On_Time_Percentage", "route_long_name",
	})
	for _, p := range performances {
		rows = append(rows, []string{
			p.Route,
			strconv.Itoa(p.DelayCount),
			formatFloat(p.AvgDelayMin),
			formatFloat(p.TotalDelayMin),
			strconv.Itoa(p.UniqueVehicles),
			formatFloat(p.DelaysPerDay),
			formatFloat(p.OnTimePct),
			p.DisplayName,
		})
	}
	return writeCSV(path, rows)
}

// WriteLocationAnalysis writes the location metrics table, peak-hour windows
// encoded as a JSON array string in their column.
func WriteLocationAnalysis(path string, locations []stats.LocationAnalysis) error {
	rows := make([][]string, 0, len(locations)+1)
	rows = append(rows, []string{
		"location_id", "location_name", "total_delays", "avg_delay_min",
		"latitude", "longitude", "route_count", "vehicle_count", "peak_hours",
	})
	for _, loc := range locations {
		peakHours, err := json.Marshal(loc.PeakHours)
		if err != nil {
			return fmt.Errorf("encode peak hours for %s: %w", loc.LocationID, err)
		}
		rows = append(rows, []string{
			loc.LocationID,
			loc.LocationName,
			strconv.Itoa(loc.TotalDelays),
			formatFloat(loc.AvgDelayMin),
			formatFloat(loc.Latitude),
			formatFloat(loc.Longitude),
			strconv.Itoa(loc.RouteCount),
			strconv.Itoa(loc.VehicleCount),
			string(peakHours),
		})
	}
	return writeCSV(path, rows)
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	writer.Flush()
	return writer.Error()
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
