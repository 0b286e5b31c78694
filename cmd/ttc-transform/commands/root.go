package commands

import (
	"ttc-transform/internal/artifacts"
	"ttc-transform/internal/ckan"
	"ttc-transform/internal/config"
	"ttc-transform/internal/logging"
	"ttc-transform/internal/pipeline"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose     bool
	skipIfFresh bool
	cfg         *config.AppConfig

	ckanClient ckan.Client
)

var rootCmd = &cobra.Command{
	Use:   "ttc-transform",
	Short: "ttc-transform reshapes TTC open data into dashboard-ready artifacts",
	Long: `A scheduled batch job that ingests TTC bus delay records and the static GTFS feed
from the Toronto open-data portal, reconciles the historical formats into one canonical
table, and derives route performance, route geometries, location analysis and a
summary-statistics digest.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		// Each run carries an id so log lines from overlapping scheduler
		// invocations can be told apart.
		log.Logger = log.Logger.With().Str("run_id", uuid.NewString()).Logger()

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		ckanClient = ckan.NewClient(cfg.CKAN)

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("ttc-transform starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		runner := pipeline.New(cfg, ckanClient, artifacts.SystemClock{})
		return runner.Run(skipIfFresh)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.Flags().BoolVar(&skipIfFresh, "skip-if-fresh", false, "skip the run when prior artifacts are younger than the staleness window")
	rootCmd.SilenceUsage = true
}
