// Package pipeline orchestrates one full ETL run: acquire delay and GTFS
// data from the open-data portal, reconcile it into one canonical
// collection, derive the analytic artifacts and write them out.
package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ttc-transform/internal/archive"
	"ttc-transform/internal/artifacts"
	"ttc-transform/internal/ckan"
	"ttc-transform/internal/config"
	"ttc-transform/internal/geometry"
	"ttc-transform/internal/gtfs"
	"ttc-transform/internal/normalize"
	"ttc-transform/internal/reconcile"
	"ttc-transform/internal/stats"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Runner executes the ETL pipeline against an injected collaborator and
// clock, so the whole flow is testable without network or wall-clock time.
type Runner struct {
	cfg    *config.AppConfig
	client ckan.Client
	clock  artifacts.Clock
}

// New creates a pipeline Runner.
func New(cfg *config.AppConfig, client ckan.Client, clock artifacts.Clock) *Runner {
	if clock == nil {
		clock = artifacts.SystemClock{}
	}
	return &Runner{cfg: cfg, client: client, clock: clock}
}

// Run executes one batch run. With skipIfFresh set, a prior summary document
// younger than the staleness window short-circuits the whole run.
func (r *Runner) Run(skipIfFresh bool) error {
	if skipIfFresh && artifacts.IsFresh(r.cfg.OutputDir, r.cfg.StalenessWindow, r.clock) {
		log.Info().
			Dur("window", r.cfg.StalenessWindow).
			Msg("Prior artifacts are fresh, skipping run")
		return nil
	}

	// 1. Acquire raw inputs. A delay package lookup failure aborts the run;
	// GTFS problems degrade to the synthetic geometry fallback.
	records, err := r.acquireDelayData()
	if err != nil {
		return fmt.Errorf("acquire delay data: %w", err)
	}
	tables := r.acquireGTFS()

	// 2. Derive the two independent artifact branches.
	var (
		performances []stats.RoutePerformance
		locations    []stats.LocationAnalysis
		geometries   geometry.RouteGeometries
	)

	var g errgroup.Group
	g.Go(func() error {
		performances = stats.RoutePerformances(records)
		locations = stats.LocationAnalyses(records)
		return nil
	})
	g.Go(func() error {
		geometries = geometry.Build(tables)
		if len(geometries) == 0 {
			geometries = geometry.Synthetic()
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	// 3. Compile the digest and serialize everything.
	summary := stats.Summarize(records, performances, locations, r.clock.Now())

	if err := artifacts.WriteAll(r.cfg.OutputDir, performances, geometries, locations, summary); err != nil {
		return fmt.Errorf("write artifacts: %w", err)
	}

	log.Info().
		Int("total_delays", summary.TotalDelays).
		Int("valid_delays", summary.ValidDelays).
		Float64("avg_delay_minutes", summary.AvgDelayMinutes).
		Float64("coverage_percentage", summary.CoveragePercentage).
		Msg("Transformation completed")

	return nil
}

// acquireDelayData fetches the delay package and pulls every usable resource:
// the current year's rows come from the datastore, prior vintages are
// downloaded as files and merged through the format reconciler. A single
// failing resource is skipped, never fatal.
func (r *Runner) acquireDelayData() ([]normalize.Record, error) {
	pkg, err := r.client.GetPackage(r.cfg.DelayPackageID)
	if err != nil {
		return nil, err
	}
	log.Info().Str("package", pkg.Title).Msg("Fetched delay package")

	currentYear := r.clock.Now().Year()

	var records []normalize.Record
	var downloaded []string

	for _, resource := range pkg.Resources {
		year, ok := reconcile.InferVintage(resource.Name)
		if !ok {
			year, ok = reconcile.InferVintage(resource.URL)
		}
		if !ok {
			log.Warn().Str("resource", resource.Name).Msg("No inferable vintage, skipping resource")
			continue
		}

		if resource.DatastoreActive && year == currentYear {
			rows, err := r.client.SearchDatastore(resource.ID, r.cfg.DatastoreLimit)
			if err != nil {
				log.Warn().Str("resource", resource.Name).Err(err).Msg("Datastore fetch failed, skipping resource")
				continue
			}
			r.persistRawRecords(rows, year)
			records = append(records, normalize.Batch(rows, resource.Name, year)...)
			log.Info().Str("resource", resource.Name).Int("records", len(rows)).Msg("Retrieved datastore records")
			continue
		}

		if resource.URL == "" {
			continue
		}
		destPath := filepath.Join(r.cfg.InputDir, downloadName(resource, year))
		if err := r.client.Download(resource.URL, destPath); err != nil {
			log.Warn().Str("resource", resource.Name).Err(err).Msg("Download failed, skipping resource")
			continue
		}
		downloaded = append(downloaded, destPath)
	}

	merged, skipped := reconcile.Merge(downloaded, currentYear)
	records = append(records, merged...)
	for _, skip := range skipped {
		log.Warn().Str("file", skip.Name).Str("reason", skip.Reason).Msg("Source file skipped during reconciliation")
	}

	log.Info().Int("records", len(records)).Msg("Delay data acquired")
	return records, nil
}

// persistRawRecords mirrors the raw datastore rows to the input folder for
// inspection. Best effort.
func (r *Runner) persistRawRecords(rows []map[string]any, year int) {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return
	}
	path := filepath.Join(r.cfg.InputDir, fmt.Sprintf("delay_data_%d.json", year))
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to persist raw delay data")
	}
}

// acquireGTFS downloads and extracts the static GTFS feed. Any failure
// returns nil, which sends the geometry stage to its synthetic fallback.
func (r *Runner) acquireGTFS() *gtfs.Tables {
	pkg, err := r.client.GetPackage(r.cfg.GTFSPackageID)
	if err != nil {
		log.Warn().Err(err).Msg("GTFS package lookup failed, using synthetic geometries")
		return nil
	}

	var feed *ckan.Resource
	for i := range pkg.Resources {
		name := strings.ToLower(pkg.Resources[i].Name)
		if strings.Contains(name, "complete gtfs") || strings.Contains(name, "completegtfs") {
			feed = &pkg.Resources[i]
			break
		}
	}
	if feed == nil {
		log.Warn().Str("package", pkg.Title).Msg("Complete GTFS resource not found, using synthetic geometries")
		return nil
	}

	zipPath := filepath.Join(r.cfg.InputDir, "complete_gtfs.zip")
	if err := r.client.Download(feed.URL, zipPath); err != nil {
		log.Warn().Err(err).Msg("GTFS download failed, using synthetic geometries")
		return nil
	}

	wanted := []string{gtfs.RoutesFile, gtfs.TripsFile, gtfs.ShapesFile, gtfs.StopsFile}
	contents, err := archive.ExtractEntries(zipPath, wanted, r.cfg.InputDir)
	if err != nil {
		log.Warn().Err(err).Msg("GTFS extraction failed, using synthetic geometries")
		return nil
	}

	tables, err := gtfs.ParseTables(contents)
	if err != nil {
		log.Warn().Err(err).Msg("GTFS tables unreadable, using synthetic geometries")
		return nil
	}
	return tables
}

// downloadName picks a destination filename that keeps the vintage year
// visible to the reconciler.
func downloadName(resource ckan.Resource, year int) string {
	base := filepath.Base(resource.URL)
	if _, ok := reconcile.InferVintage(base); ok {
		return base
	}

	ext := strings.ToLower(filepath.Ext(base))
	if ext == "" && resource.Format != "" {
		ext = "." + strings.ToLower(resource.Format)
	}
	name := strings.ToLower(strings.ReplaceAll(resource.Name, " ", "-"))
	if _, ok := reconcile.InferVintage(name); !ok {
		name = fmt.Sprintf("%s-%d", name, year)
	}
	return name + ext
}
