package normalize

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed aliases.yaml
var aliasesYAML []byte

// aliasTable maps canonical field name -> ordered list of source column names.
var aliasTable map[string][]string

// Canonical field keys in the alias table.
const (
	fieldDelayMinutes = "delay_minutes"
	fieldGapMinutes   = "gap_minutes"
	fieldRoute        = "route"
	fieldLocation     = "location"
	fieldVehicle      = "vehicle"
	fieldDate         = "date"
	fieldTimeOfDay    = "time_of_day"
)

func init() {
	if err := yaml.Unmarshal(aliasesYAML, &aliasTable); err != nil {
		panic(fmt.Sprintf("normalize: malformed aliases.yaml: %v", err))
	}
	for _, field := range []string{
		fieldDelayMinutes, fieldGapMinutes, fieldRoute,
		fieldLocation, fieldVehicle, fieldDate, fieldTimeOfDay,
	} {
		if len(aliasTable[field]) == 0 {
			panic(fmt.Sprintf("normalize: aliases.yaml missing candidates for %q", field))
		}
	}
}

// resolve returns the first present, non-empty value among the field's
// candidate source columns.
func resolve(raw map[string]any, field string) (any, bool) {
	for _, column := range aliasTable[field] {
		value, ok := raw[column]
		if !ok || value == nil {
			continue
		}
		if s, isString := value.(string); isString && s == "" {
			continue
		}
		return value, true
	}
	return nil, false
}
