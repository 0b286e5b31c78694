package reconcile

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Attempt is one fallible alternative in an ordered fallback chain.
type Attempt[T any] struct {
	Name string
	Run  func() (T, error)
}

// Chain runs the alternatives in order. The first success wins; if every
// alternative fails, the last failure surfaces.
func Chain[T any](attempts ...Attempt[T]) (T, error) {
	var zero T
	var lastErr error
	for _, attempt := range attempts {
		value, err := attempt.Run()
		if err == nil {
			return value, nil
		}
		log.Debug().Str("alternative", attempt.Name).Err(err).Msg("Fallback alternative failed")
		lastErr = err
	}
	if lastErr == nil {
		return zero, fmt.Errorf("no alternatives provided")
	}
	return zero, lastErr
}
