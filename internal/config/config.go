package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"ttc-transform/internal/ckan"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	CKAN ckan.Config `validate:"required"`

	// DelayPackageID is the CKAN package holding the bus delay resources.
	DelayPackageID string `validate:"required"`
	// GTFSPackageID is the CKAN package holding the static GTFS feed.
	GTFSPackageID string `validate:"required"`

	InputDir  string `validate:"required"`
	OutputDir string `validate:"required"`

	// DatastoreLimit caps how many rows a single datastore fetch may return.
	DatastoreLimit int `validate:"gt=0"`

	// StalenessWindow is how old a prior summary document may be before a
	// re-run actually refetches (only honored with --skip-if-fresh).
	StalenessWindow time.Duration `validate:"gt=0"`
}

const (
	defaultBaseURL        = "https://ckan0.cf.opendata.inter.prod-toronto.ca/api/3/action"
	defaultDelayPackageID = "e271cdae-8788-4980-96ce-6a5c95bc6618"
	defaultGTFSPackageID  = "b811ead4-6eaf-4adb-8408-d389fb5a069c"
)

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory first
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve data paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	inputDir := getEnv("INPUT_DATA_FOLDER", filepath.Join(dataPath, "input_data"))
	outputDir := getEnv("OUTPUT_DATA_FOLDER", filepath.Join(dataPath, "assets", "data"))

	for _, dir := range []string{inputDir, outputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory %q: %w", dir, err)
		}
	}

	timeoutSecs, _ := strconv.Atoi(getEnv("CKAN_TIMEOUT_SECONDS", "90"))
	stalenessMins, _ := strconv.Atoi(getEnv("STALENESS_MINUTES", "60"))

	cfg := &AppConfig{
		CKAN: ckan.Config{
			BaseURL:   getEnv("CKAN_BASE_URL", defaultBaseURL),
			UserAgent: getEnv("CKAN_USER_AGENT", "TTC-Data-Transformer/1.0"),
			Timeout:   time.Duration(timeoutSecs) * time.Second,
		},
		DelayPackageID:  getEnv("DELAY_PACKAGE_ID", defaultDelayPackageID),
		GTFSPackageID:   getEnv("GTFS_PACKAGE_ID", defaultGTFSPackageID),
		InputDir:        inputDir,
		OutputDir:       outputDir,
		DatastoreLimit:  getEnvInt("DATASTORE_LIMIT", 50000),
		StalenessWindow: time.Duration(stalenessMins) * time.Minute,
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
