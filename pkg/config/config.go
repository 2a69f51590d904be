// Package config loads server configuration from environment variables,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Transport selects how the server talks to its client.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds all server settings.
type Config struct {
	// Transport selection and HTTP listen address.
	Transport string `env:"DOCKER_MCP_TRANSPORT"`
	HTTPAddr  string `env:"DOCKER_MCP_HTTP_ADDR"`

	// Logging.
	LogLevel string `env:"DOCKER_MCP_LOG_LEVEL"`

	// Deadlines for bounded engine operations. BuildTimeout is the
	// default only; build_image callers may override it per call.
	BuildTimeout time.Duration `env:"DOCKER_MCP_BUILD_TIMEOUT"`
	PullTimeout  time.Duration `env:"DOCKER_MCP_PULL_TIMEOUT"`
	PushTimeout  time.Duration `env:"DOCKER_MCP_PUSH_TIMEOUT"`
	ScoutTimeout time.Duration `env:"DOCKER_MCP_SCOUT_TIMEOUT"`

	// Bounds on one streaming stats invocation.
	StatsMaxSamples int           `env:"DOCKER_MCP_STATS_MAX_SAMPLES"`
	StatsWindow     time.Duration `env:"DOCKER_MCP_STATS_WINDOW"`

	// Service identification.
	ServiceName    string `env:"DOCKER_MCP_SERVICE_NAME"`
	ServiceVersion string `env:"DOCKER_MCP_SERVICE_VERSION"`
}

// Load builds the configuration from defaults, an optional env file and
// the process environment, in that order of increasing precedence.
func Load(envFile string) (*Config, error) {
	cfg := Default()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Transport:       TransportStdio,
		HTTPAddr:        ":8080",
		LogLevel:        "info",
		BuildTimeout:    time.Hour,
		PullTimeout:     10 * time.Minute,
		PushTimeout:     10 * time.Minute,
		ScoutTimeout:    5 * time.Minute,
		StatsMaxSamples: 10,
		StatsWindow:     30 * time.Second,
		ServiceName:     "docker-mcp-server",
		ServiceVersion:  "dev",
	}
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.Transport != TransportStdio && c.Transport != TransportHTTP {
		return fmt.Errorf("unknown transport %q (must be %q or %q)", c.Transport, TransportStdio, TransportHTTP)
	}
	if c.BuildTimeout <= 0 || c.PullTimeout <= 0 || c.PushTimeout <= 0 || c.ScoutTimeout <= 0 {
		return fmt.Errorf("operation timeouts must be positive")
	}
	if c.StatsMaxSamples < 1 {
		return fmt.Errorf("stats sample cap must be at least 1")
	}
	if c.StatsWindow <= 0 {
		return fmt.Errorf("stats window must be positive")
	}
	return nil
}

func loadFromEnv(cfg *Config) {
	setString(&cfg.Transport, "DOCKER_MCP_TRANSPORT")
	setString(&cfg.HTTPAddr, "DOCKER_MCP_HTTP_ADDR")
	setString(&cfg.LogLevel, "DOCKER_MCP_LOG_LEVEL")
	setDuration(&cfg.BuildTimeout, "DOCKER_MCP_BUILD_TIMEOUT")
	setDuration(&cfg.PullTimeout, "DOCKER_MCP_PULL_TIMEOUT")
	setDuration(&cfg.PushTimeout, "DOCKER_MCP_PUSH_TIMEOUT")
	setDuration(&cfg.ScoutTimeout, "DOCKER_MCP_SCOUT_TIMEOUT")
	setInt(&cfg.StatsMaxSamples, "DOCKER_MCP_STATS_MAX_SAMPLES")
	setDuration(&cfg.StatsWindow, "DOCKER_MCP_STATS_WINDOW")
	setString(&cfg.ServiceName, "DOCKER_MCP_SERVICE_NAME")
	setString(&cfg.ServiceVersion, "DOCKER_MCP_SERVICE_VERSION")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
