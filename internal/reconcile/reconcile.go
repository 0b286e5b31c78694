// Package reconcile merges delay-data source files of mixed vintages and
// formats into one canonical record collection. Files route to a reader based
// on their inferred source year, with per-file fallback when the expected
// format disagrees with what is actually on disk.
package reconcile

import (
	"path/filepath"
	"strings"

	"ttc-transform/internal/normalize"

	"github.com/rs/zerolog/log"
)

// earliestVintage is the first year delay data was published in a readable
// format. Older files are skipped outright.
const earliestVintage = 2014

// Skip records a source file that contributed nothing to the merge.
type Skip struct {
	Name   string
	Reason string
}

// Merge reads every source file and appends its normalized rows, tagged with
// provenance, into one unified collection. A file that cannot be read is
// reported in the skip list, never fatal.
func Merge(paths []string, currentYear int) ([]normalize.Record, []Skip) {
	var merged []normalize.Record
	var skipped []Skip

	for _, path := range paths {
		name := filepath.Base(path)

		year, ok := InferVintage(name)
		if !ok {
			log.Warn().Str("file", name).Msg("Cannot infer source year, skipping")
			skipped = append(skipped, Skip{Name: name, Reason: "no inferable source year"})
			continue
		}
		if year < earliestVintage {
			log.Warn().Str("file", name).Int("year", year).Msg("Source year predates supported range, skipping")
			skipped = append(skipped, Skip{Name: name, Reason: "source year predates supported range"})
			continue
		}

		rows, err := readByVintage(path, year, currentYear)
		if err != nil {
			log.Warn().Str("file", name).Err(err).Msg("All readers failed, skipping file")
			skipped = append(skipped, Skip{Name: name, Reason: err.Error()})
			continue
		}

		records := normalize.Batch(rows, name, year)
		merged = append(merged, records...)
		log.Info().Str("file", name).Int("year", year).Int("records", len(records)).Msg("Merged source file")
	}

	return merged, skipped
}

// readByVintage picks the reader order for a file: the current calendar year
// publishes delimited text, prior years publish spreadsheets. The preference
// inverts when the file extension contradicts the expectation, and the
// non-preferred reader always remains as the fallback alternative.
func readByVintage(path string, year, currentYear int) ([]map[string]any, error) {
	preferDelimited := year == currentYear
	if looksLikeSpreadsheet(path) {
		preferDelimited = false
	} else if looksLikeDelimited(path) {
		preferDelimited = true
	}

	delimited := Attempt[[]map[string]any]{Name: "delimited", Run: func() ([]map[string]any, error) {
		return ReadDelimited(path)
	}}
	spreadsheet := Attempt[[]map[string]any]{Name: "spreadsheet", Run: func() ([]map[string]any, error) {
		return ReadSpreadsheet(path)
	}}

	if preferDelimited {
		return Chain(delimited, spreadsheet)
	}
	return Chain(spreadsheet, delimited)
}

func looksLikeSpreadsheet(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls", ".xlsm":
		return true
	}
	return false
}

func looksLikeDelimited(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt", ".tsv":
		return true
	}
	return false
}
