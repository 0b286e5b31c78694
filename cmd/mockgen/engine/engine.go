// Package engine fabricates offline fixture datasets: raw delay rows in the
// column dialect of a chosen vintage, plus miniature GTFS tables, so the
// pipeline can be exercised without portal access.
package engine

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type GeneratorConfig struct {
	Scenario string // "mild" or "chaos"
	Count    int
	Year     int
	Seed     int64
}

// Column dialects by vintage: the current feed names fields one way, the
// archival spreadsheets another. Chaos rows sprinkle junk values so the
// normalizer's zero-defaults get exercised.
var (
	routeNames = []string{
		"102 MARKHAM ROAD", "36 FINCH WEST", "52 LAWRENCE WEST",
		"504 KING", "29 DUFFERIN", "7 BATHURST", "1 YONGE-UNIVERSITY",
	}
	locationNames = []string{
		"Kennedy Station", "Finch Station", "Kipling Station",
		"Main Street Station", "Lawrence & Markham", "King & Bathurst",
		"Unknown",
	}
	incidentTimes = []string{"06:45", "08:10", "08:30", "12:05", "17:15", "23:50"}
)

// Generate produces count raw delay rows in the column dialect matching the
// vintage year.
func Generate(cfg GeneratorConfig) []map[string]any {
	rng := rand.New(rand.NewSource(cfg.Seed))
	currentDialect := cfg.Year >= time.Now().Year()

	rows := make([]map[string]any, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		route := routeNames[rng.Intn(len(routeNames))]
		location := locationNames[rng.Intn(len(locationNames))]
		delay := fmt.Sprintf("%d", 2+rng.Intn(30))
		gap := fmt.Sprintf("%d", 4+rng.Intn(40))
		vehicle := fmt.Sprintf("%d", 1000+rng.Intn(8000))
		date := fmt.Sprintf("%d-%02d-%02d", cfg.Year, 1+rng.Intn(12), 1+rng.Intn(28))
		tod := incidentTimes[rng.Intn(len(incidentTimes))]

		if cfg.Scenario == "chaos" {
			// Roughly one row in five carries an unparseable delay value.
			if rng.Float64() < 0.2 {
				delay = "abc"
			}
			if rng.Float64() < 0.1 {
				date = "not a date"
			}
			if rng.Float64() < 0.1 {
				location = ""
			}
		}

		var row map[string]any
		if currentDialect {
			row = map[string]any{
				"Line": route, "Station": location, "Min Delay": delay,
				"Min Gap": gap, "Vehicle": vehicle, "Date": date, "Time": tod,
			}
		} else {
			row = map[string]any{
				"Route": route, "Location": location, "Delay": delay,
				"Gap": gap, "Vehicle": vehicle, "Report Date": date, "Incident Time": tod,
			}
		}
		rows = append(rows, row)
	}

	return rows
}

// GTFSTables returns miniature routes/trips/shapes CSV contents covering the
// numeric prefixes of the generated route names.
func GTFSTables() map[string]string {
	var routes, trips, shapes strings.Builder

	routes.WriteString("route_id,route_short_name,route_long_name\n")
	trips.WriteString("route_id,service_id,trip_id,shape_id\n")
	shapes.WriteString("shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence\n")

	for i, name := range routeNames {
		routeID := strings.Fields(name)[0]
		shapeID := fmt.Sprintf("shp_%s", routeID)
		routes.WriteString(fmt.Sprintf("%s,%s,%s\n", routeID, routeID, name))
		trips.WriteString(fmt.Sprintf("%s,WD,trip_%s,%s\n", routeID, routeID, shapeID))
		for j := 0; j < 4; j++ {
			lat := 43.65 + 0.002*float64(i) + 0.001*float64(j)
			lon := -79.38 - 0.002*float64(i) - 0.001*float64(j)
			shapes.WriteString(fmt.Sprintf("%s,%.6f,%.6f,%d\n", shapeID, lat, lon, j+1))
		}
	}

	return map[string]string{
		"routes.txt": routes.String(),
		"trips.txt":  trips.String(),
		"shapes.txt": shapes.String(),
	}
}

// Save writes the delay rows and GTFS tables into outDir using the filenames
// the pipeline expects to find in its input folder.
func Save(outDir string, cfg GeneratorConfig, rows []map[string]any) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	delayPath := filepath.Join(outDir, fmt.Sprintf("delay_data_%d.json", cfg.Year))
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(delayPath, data, 0644); err != nil {
		return err
	}

	for name, content := range GTFSTables() {
		if err := os.WriteFile(filepath.Join(outDir, name), []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}
