package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/twpayne/go-elevationprofile"
)

type config struct {
	BackendURL     string        `yaml:"backend_url"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxChunkPoints int           `yaml:"max_chunk_points"`
	CacheSize      int           `yaml:"cache_size"`
	LogLevel       string        `yaml:"log_level"`
	LogFile        string        `yaml:"log_file"`
	MetricsAddress string        `yaml:"metrics_address"`
}

func defaultConfig() *config {
	return &config{
		BackendURL:     elevationprofile.DefaultBaseURL,
		Timeout:        30 * time.Second,
		MaxChunkPoints: elevationprofile.DefaultMaxChunkPoints,
		CacheSize:      256,
		LogLevel:       "warn",
	}
}

// loadConfig returns the default config overridden by the values in filename.
// An empty filename returns the default config.
func loadConfig(filename string) (*config, error) {
	cfg := defaultConfig()
	if filename == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if _, err := parseLogLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

func parseLogLevel(logLevel string) (slog.Level, error) {
	switch strings.ToLower(logLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%s: invalid log level", logLevel)
	}
}
