package config

import (
	"os"
	"strconv"

	"geoks/adapters/stats/kstest"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Filter FilterConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DBConfig holds Postgres settings. An empty URL disables persistence; the
// API then runs compare/filter without the results endpoints.
type DBConfig struct {
	URL string
}

// FilterConfig holds the default xenocryst scan parameters. Requests may
// override both per call.
type FilterConfig struct {
	Threshold  float64
	SigmaScale float64
}

// Load reads configuration from environment variables with sensible defaults
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:    getEnv("GEOKS_PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "release"),
		},
		DB: DBConfig{
			URL: getEnv("GEOKS_DB_URL", ""),
		},
		Filter: FilterConfig{
			Threshold:  getEnvFloat("GEOKS_FILTER_THRESHOLD", kstest.DefaultSlopeThreshold),
			SigmaScale: getEnvFloat("GEOKS_FILTER_SIGMA_SCALE", kstest.DefaultFilterSigmaScale),
		},
	}
}

// FilterOptions converts the configured defaults into scan options
func (c FilterConfig) FilterOptions() kstest.FilterOptions {
	return kstest.FilterOptions{Threshold: c.Threshold, SigmaScale: c.SigmaScale}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
