package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds process configuration.
type Config struct {
	LogLevel     string
	Environment  string
	GLEIFBaseURL string
	GLEIFToken   string
	GLEIFTimeout time.Duration
	// CatalogFile optionally overrides the embedded taxonomy catalog.
	CatalogFile  string
	OTLPEndpoint string
	Telemetry    bool
}

// Load loads configuration from environment variables.
func Load() *Config {
	logLevel := os.Getenv("MICAPRESS_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "INFO"
	}

	environment := os.Getenv("MICAPRESS_ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	gleifURL := os.Getenv("MICAPRESS_GLEIF_URL")
	if gleifURL == "" {
		gleifURL = "https://api.gleif.org"
	}

	gleifTimeout := 4 * time.Second
	if raw := os.Getenv("MICAPRESS_GLEIF_TIMEOUT_SECONDS"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			gleifTimeout = time.Duration(seconds) * time.Second
		}
	}

	otlpEndpoint := os.Getenv("MICAPRESS_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	return &Config{
		LogLevel:     logLevel,
		Environment:  environment,
		GLEIFBaseURL: gleifURL,
		GLEIFToken:   os.Getenv("MICAPRESS_GLEIF_TOKEN"),
		GLEIFTimeout: gleifTimeout,
		CatalogFile:  os.Getenv("MICAPRESS_CATALOG_FILE"),
		OTLPEndpoint: otlpEndpoint,
		Telemetry:    os.Getenv("MICAPRESS_TELEMETRY") == "true",
	}
}
