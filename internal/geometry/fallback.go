package geometry

import (
	"math"

	"github.com/rs/zerolog/log"
)

// torontoCenter is the fixed urban reference point the synthetic arcs are
// generated around.
var torontoCenter = Coordinate{43.6532, -79.3832}

// fallbackRoutes are representative streetcar route ids used when no source
// geometry is available.
var fallbackRoutes = []string{"501", "504", "505", "506", "509", "510", "511", "512"}

// Synthetic generates a deterministic semi-circular arc per fallback route.
// Each route gets 8+index points with an index-proportional offset so the
// arcs don't overlap, rounded to 6 decimal places.
func Synthetic() RouteGeometries {
	geometries := make(RouteGeometries, len(fallbackRoutes))

	for i, route := range fallbackRoutes {
		pointCount := 8 + i
		offset := 0.01 * float64(i)

		coords := make([]Coordinate, 0, pointCount)
		for j := 0; j < pointCount; j++ {
			angle := float64(j) / float64(pointCount) * 3.14 // semi-circle
			lat := torontoCenter[0] + offset + 0.005*math.Cos(angle)
			lng := torontoCenter[1] + offset + 0.005*math.Sin(angle)
			coords = append(coords, Coordinate{round6(lat), round6(lng)})
		}
		geometries[route] = coords
	}

	log.Info().Int("routes", len(geometries)).Msg("Generated synthetic route geometries")
	return geometries
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
