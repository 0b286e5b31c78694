package main

import (
	"flag"
	"fmt"
	"os"
	"time"
	"ttc-transform/cmd/mockgen/engine"
)

func main() {
	scenario := flag.String("scenario", "mild", "Scenario to generate: mild, chaos")
	outDir := flag.String("out", "./input_data", "Output directory for fixture files")
	count := flag.Int("count", 200, "Number of delay rows to generate")
	year := flag.Int("year", time.Now().Year(), "Vintage year (controls the column dialect)")
	seed := flag.Int64("seed", 42, "Random seed")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario: *scenario,
		Count:    *count,
		Year:     *year,
		Seed:     *seed,
	}

	fmt.Printf("Generating scenario '%s' (Year: %d, Count: %d) to %s...\n", cfg.Scenario, cfg.Year, cfg.Count, *outDir)

	rows := engine.Generate(cfg)
	if err := engine.Save(*outDir, cfg, rows); err != nil {
		fmt.Printf("Failed to save fixture data: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}
