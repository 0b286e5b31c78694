package artifacts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// Clock abstracts time for the freshness check so it can be tested without
// touching the wall clock.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// IsFresh reports whether a prior summary document exists in outputDir and
// its updated_at timestamp is younger than window. Any read or parse problem
// counts as stale.
func IsFresh(outputDir string, window time.Duration, clock Clock) bool {
	path := filepath.Join(outputDir, SummaryStatisticsFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	var prior struct {
		UpdatedAt string `json:"updated_at"`
	}
	if err := json.Unmarshal(data, &prior); err != nil {
		log.Debug().Err(err).Msg("Prior summary document unreadable, treating as stale")
		return false
	}

	updatedAt, err := time.Parse(time.RFC3339, prior.UpdatedAt)
	if err != nil {
		return false
	}

	return clock.Now().Sub(updatedAt) < window
}
