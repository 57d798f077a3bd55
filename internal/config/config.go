// Package config loads the server configuration from a YAML file.
//
// Example:
//
//	server:
//	  addr: "localhost:8080"
//	limiter:
//	  algorithm: token_bucket
//	  capacity: 100
//	  refill_interval: 200ms
//	  shards: 16
//	reaper:
//	  interval: 10m
//	  max_idle: 1h
//	extractor:
//	  headers: ["X-Forwarded-For"]
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/keyrate/rate-limiter-go/ratelimiter"
)

// Config is the top-level server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Limiter   LimiterConfig   `yaml:"limiter"`
	Reaper    ReaperConfig    `yaml:"reaper,omitempty"`
	Extractor ExtractorConfig `yaml:"extractor,omitempty"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LimiterConfig mirrors ratelimiter.Config with YAML-friendly duration
// strings. Only the fields for the selected algorithm need to be set.
type LimiterConfig struct {
	Algorithm      string `yaml:"algorithm"`
	Capacity       int    `yaml:"capacity,omitempty"`
	RefillInterval string `yaml:"refill_interval,omitempty"`
	MaxRequests    int    `yaml:"max_requests,omitempty"`
	Window         string `yaml:"window,omitempty"`
	Shards         int    `yaml:"shards,omitempty"`
}

// ReaperConfig enables background eviction of idle keys. Both fields must be
// set for the reaper to run.
type ReaperConfig struct {
	Interval string `yaml:"interval,omitempty"`
	MaxIdle  string `yaml:"max_idle,omitempty"`
}

// ExtractorConfig selects how the rate limiting key is derived from a
// request. With no headers configured the client address is used.
type ExtractorConfig struct {
	Headers []string `yaml:"headers,omitempty"`
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = "localhost:8080"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration without constructing anything. Limiter
// parameter bounds are enforced by the limiter constructors themselves; this
// only rejects values that cannot be interpreted at all.
func (c *Config) Validate() error {
	if c.Limiter.Algorithm == "" {
		return fmt.Errorf("limiter.algorithm is required")
	}
	for name, value := range map[string]string{
		"limiter.refill_interval": c.Limiter.RefillInterval,
		"limiter.window":          c.Limiter.Window,
		"reaper.interval":         c.Reaper.Interval,
		"reaper.max_idle":         c.Reaper.MaxIdle,
	} {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if (c.Reaper.Interval == "") != (c.Reaper.MaxIdle == "") {
		return fmt.Errorf("reaper.interval and reaper.max_idle must be set together")
	}
	return nil
}

// Build constructs the configured limiter.
func (c *LimiterConfig) Build(opts ...ratelimiter.Option) (ratelimiter.RateLimiter, error) {
	rc := ratelimiter.Config{
		Capacity:    c.Capacity,
		MaxRequests: c.MaxRequests,
	}
	var err error
	if c.RefillInterval != "" {
		if rc.RefillInterval, err = time.ParseDuration(c.RefillInterval); err != nil {
			return nil, fmt.Errorf("limiter.refill_interval: %w", err)
		}
	}
	if c.Window != "" {
		if rc.Window, err = time.ParseDuration(c.Window); err != nil {
			return nil, fmt.Errorf("limiter.window: %w", err)
		}
	}
	if c.Shards > 0 {
		opts = append(opts, ratelimiter.WithShardCount(c.Shards))
	}
	return ratelimiter.New(ratelimiter.Algorithm(c.Algorithm), rc, opts...)
}

// Limit returns the admit budget the limiter advertises to clients:
// the bucket capacity or the window maximum, depending on the algorithm.
func (c *LimiterConfig) Limit() int {
	if ratelimiter.Algorithm(c.Algorithm) == ratelimiter.SlidingWindow {
		return c.MaxRequests
	}
	return c.Capacity
}

// Enabled reports whether a reaper is configured.
func (c *ReaperConfig) Enabled() bool {
	return c.Interval != "" && c.MaxIdle != ""
}

// Durations returns the parsed reaper settings.
func (c *ReaperConfig) Durations() (interval, maxIdle time.Duration, err error) {
	if interval, err = time.ParseDuration(c.Interval); err != nil {
		return 0, 0, fmt.Errorf("reaper.interval: %w", err)
	}
	if maxIdle, err = time.ParseDuration(c.MaxIdle); err != nil {
		return 0, 0, fmt.Errorf("reaper.max_idle: %w", err)
	}
	return interval, maxIdle, nil
}
