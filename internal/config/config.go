package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all taxon configuration.
type Config struct {
	Source SourceConfig
	Detect DetectConfig
	Log    LogConfig
}

// SourceConfig says where the taxonomy listing comes from. URL takes
// precedence when both are set.
type SourceConfig struct {
	URL         string
	File        string
	HTTPTimeout time.Duration
	CacheTTL    time.Duration
}

// DetectConfig holds ranking defaults for the CLI.
type DetectConfig struct {
	TopK        int
	MinDepth    int
	Temperature float64
	Heuristics  bool
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string // "debug", "info", "warn", "error"
}

// Load reads configuration from environment variables with sensible
// defaults.
func Load() Config {
	return Config{
		Source: SourceConfig{
			URL:         os.Getenv("TAXON_SOURCE_URL"),
			File:        getenv("TAXON_SOURCE_FILE", "taxonomy.txt"),
			HTTPTimeout: getenvDuration("TAXON_HTTP_TIMEOUT", 30*time.Second),
			CacheTTL:    getenvDuration("TAXON_CACHE_TTL", time.Hour),
		},
		Detect: DetectConfig{
			TopK:        getenvInt("TAXON_TOP_K", 8),
			MinDepth:    getenvInt("TAXON_MIN_DEPTH", 1),
			Temperature: getenvFloat("TAXON_TEMPERATURE", 0.7),
			Heuristics:  getenvBool("TAXON_HEURISTICS", true),
		},
		Log: LogConfig{
			Level: getenv("TAXON_LOG_LEVEL", "info"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
