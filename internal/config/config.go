package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	CompositorNative = "native"
	CompositorGoCV   = "gocv"
)

type Config struct {
	MaxImageWidth    int
	MaxImageHeight   int
	Compositor       string
	FetchTimeout     time.Duration
	AnalysisTimeout  time.Duration
	ResultsDBPath    string
	AzureAccountName string
	AzureAccountKey  string
}

// AzureEnabled reports whether az:// locations can be served.
func (c *Config) AzureEnabled() bool {
	return c.AzureAccountName != "" && c.AzureAccountKey != ""
}

// HistoryEnabled reports whether finished analyses are persisted.
func (c *Config) HistoryEnabled() bool {
	return c.ResultsDBPath != ""
}

func LoadFromEnv() (*Config, error) {
	maxWidth, err := parseIntOrDefault("MAX_IMAGE_WIDTH", 4000)
	if err != nil {
		return nil, err
	}
	maxHeight, err := parseIntOrDefault("MAX_IMAGE_HEIGHT", 4000)
	if err != nil {
		return nil, err
	}
	fetchTimeout, err := parseDurationOrDefault("FETCH_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	analysisTimeout, err := parseDurationOrDefault("ANALYSIS_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		MaxImageWidth:    int(maxWidth),
		MaxImageHeight:   int(maxHeight),
		Compositor:       strings.ToLower(getEnvOrDefault("COMPOSITOR", CompositorNative)),
		FetchTimeout:     fetchTimeout,
		AnalysisTimeout:  analysisTimeout,
		ResultsDBPath:    strings.TrimSpace(os.Getenv("RESULTS_DB")),
		AzureAccountName: strings.TrimSpace(os.Getenv("AZURE_STORAGE_ACCOUNT")),
		AzureAccountKey:  strings.TrimSpace(os.Getenv("AZURE_STORAGE_KEY")),
	}

	if cfg.MaxImageWidth <= 0 || cfg.MaxImageHeight <= 0 {
		return nil, fmt.Errorf("image ceiling must be > 0 (got %dx%d)", cfg.MaxImageWidth, cfg.MaxImageHeight)
	}
	if cfg.Compositor != CompositorNative && cfg.Compositor != CompositorGoCV {
		return nil, fmt.Errorf("invalid COMPOSITOR: %q", cfg.Compositor)
	}
	if cfg.FetchTimeout <= 0 || cfg.AnalysisTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got fetch=%s, analysis=%s)",
			cfg.FetchTimeout, cfg.AnalysisTimeout)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// parseDurationOrDefault returns defaultValue when key is unset or blank
func parseDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return duration, nil
}

func parseIntOrDefault(key string, defaultValue int64) (int64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return intValue, nil
}
