package normalize

import (
	"time"
)

// Record is a delay observation normalized to the fixed field set every
// downstream aggregation works with.
type Record struct {
	Route        string
	Location     string
	VehicleID    int64
	DelayMinutes float64
	GapMinutes   float64
	Date         time.Time
	TimeOfDay    string
	SourceFile   string
	SourceYear   int
}

// HasValidDelay reports whether the record carries a usable delay observation.
func (r Record) HasValidDelay() bool {
	return r.DelayMinutes > 0
}
