package config

import (
	"os"
	"strconv"

	"datascope/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Analysis AnalysisConfig
	Charts   ChartConfig
	Debug    DebugConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port           string
	GinMode        string
	MaxUploadBytes int64
}

// StoreConfig bounds the resident dataset store. Datasets are unbounded in
// memory, so both ceilings are a required resource-protection contract.
type StoreConfig struct {
	MaxDatasets     int
	MaxDatasetBytes int64 // combined resident size ceiling
}

// AnalysisConfig holds defaults for the analytic operations
type AnalysisConfig struct {
	PreviewRows     int // rows returned with the upload response
	PreviewPerPage  int // default page size for /api/data-preview
	TopValues       int // categorical top-k on /api/basic-stats
	PairPlotMaxCols int // working-set cap for the pair plot
	PairPlotMaxRows int // row sample cap for the pair plot
	GroupByChartTop int // groups shown on the group-by chart
}

// ChartConfig holds chart renderer settings
type ChartConfig struct {
	Width         int
	Height        int
	HistogramBins int
}

// DebugConfig holds the health/pprof side server settings
type DebugConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:           getEnvOrDefault("PORT", "8080"),
			GinMode:        getEnvOrDefault("GIN_MODE", "release"),
			MaxUploadBytes: getEnvInt64OrDefault("MAX_UPLOAD_BYTES", 16*1024*1024),
		},
		Store: StoreConfig{
			MaxDatasets:     getEnvIntOrDefault("MAX_DATASETS", 64),
			MaxDatasetBytes: getEnvInt64OrDefault("MAX_DATASET_BYTES", 512*1024*1024),
		},
		Analysis: AnalysisConfig{
			PreviewRows:     getEnvIntOrDefault("PREVIEW_ROWS", 10),
			PreviewPerPage:  getEnvIntOrDefault("PREVIEW_PER_PAGE", 50),
			TopValues:       getEnvIntOrDefault("TOP_VALUES", 5),
			PairPlotMaxCols: getEnvIntOrDefault("PAIRPLOT_MAX_COLS", 5),
			PairPlotMaxRows: getEnvIntOrDefault("PAIRPLOT_MAX_ROWS", 1000),
			GroupByChartTop: getEnvIntOrDefault("GROUPBY_CHART_TOP", 20),
		},
		Charts: ChartConfig{
			Width:         getEnvIntOrDefault("CHART_WIDTH", 1000),
			Height:        getEnvIntOrDefault("CHART_HEIGHT", 600),
			HistogramBins: getEnvIntOrDefault("HISTOGRAM_BINS", 30),
		},
		Debug: DebugConfig{
			Port:    getEnvOrDefault("PPROF_PORT", "6060"),
			Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Server.MaxUploadBytes <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_BYTES must be positive")
	}
	if config.Store.MaxDatasets <= 0 {
		return errors.ConfigInvalid("MAX_DATASETS must be positive")
	}
	if config.Store.MaxDatasetBytes <= 0 {
		return errors.ConfigInvalid("MAX_DATASET_BYTES must be positive")
	}
	if config.Analysis.PreviewPerPage <= 0 {
		return errors.ConfigInvalid("PREVIEW_PER_PAGE must be positive")
	}
	if config.Analysis.PairPlotMaxCols < 2 {
		return errors.ConfigInvalid("PAIRPLOT_MAX_COLS must be at least 2")
	}
	if config.Charts.HistogramBins <= 0 {
		return errors.ConfigInvalid("HISTOGRAM_BINS must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
