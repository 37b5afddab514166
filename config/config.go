package config

import (
	"fmt"
	"time"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/redis"
	"github.com/kbukum/seqkit/validation"
)

// Config is the full configuration of a seqkit service.
type Config struct {
	BaseConfig `yaml:",inline" mapstructure:",squash"`
	Logging    logger.Config   `yaml:"logging" mapstructure:"logging"`
	Server     ServerConfig    `yaml:"server" mapstructure:"server"`
	Tracing    TracingConfig   `yaml:"tracing" mapstructure:"tracing"`
	Metrics    MetricsConfig   `yaml:"metrics" mapstructure:"metrics"`
	Pipelines  PipelinesConfig `yaml:"pipelines" mapstructure:"pipelines"`
	Redis      redis.Config    `yaml:"redis" mapstructure:"redis"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string `yaml:"host" mapstructure:"host"`
	Port         int    `yaml:"port" mapstructure:"port" validate:"gte=0,max=65535"`
	ReadTimeout  int    `yaml:"read_timeout" mapstructure:"read_timeout" validate:"gte=0"`   // seconds
	WriteTimeout int    `yaml:"write_timeout" mapstructure:"write_timeout" validate:"gte=0"` // seconds
	IdleTimeout  int    `yaml:"idle_timeout" mapstructure:"idle_timeout" validate:"gte=0"`   // seconds
	MaxBodyBytes int64  `yaml:"max_body_bytes" mapstructure:"max_body_bytes" validate:"gte=0"`
}

// TracingConfig controls OTLP trace export.
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint" validate:"required_if=Enabled true"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,max=1"`
}

// MetricsConfig controls OTLP metric export.
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" validate:"required_if=Enabled true"`
	Insecure bool   `yaml:"insecure" mapstructure:"insecure"`
	Interval int    `yaml:"interval" mapstructure:"interval" validate:"gte=0"` // seconds
}

// PipelinesConfig controls where definitions are loaded from and how far a
// single run may go.
type PipelinesConfig struct {
	Dirs []string `yaml:"dirs" mapstructure:"dirs"`
	// MaxElements caps the elements any run may produce. Unset takes the
	// default of 100000; -1 means unlimited.
	MaxElements int `yaml:"max_elements" mapstructure:"max_elements" validate:"gte=-1"`
	// MaxPulls caps the source elements any run may pull. Unset takes the
	// default of 10000000; -1 means unlimited.
	MaxPulls int `yaml:"max_pulls" mapstructure:"max_pulls" validate:"gte=-1"`
	// Timeout bounds a single run in seconds. Unset takes the default of 30;
	// -1 means no deadline.
	Timeout int `yaml:"timeout" mapstructure:"timeout" validate:"gte=-1"`
	// CacheTTL is how long cached results live in seconds when redis is
	// enabled. 0 keeps them until evicted.
	CacheTTL int `yaml:"cache_ttl" mapstructure:"cache_ttl" validate:"gte=0"`
}

// ElementLimit returns MaxElements for the runner, where 0 is unlimited.
func (p PipelinesConfig) ElementLimit() int { return max(p.MaxElements, 0) }

// PullLimit returns MaxPulls for the runner, where 0 is unlimited.
func (p PipelinesConfig) PullLimit() int { return max(p.MaxPulls, 0) }

// RunTimeout returns Timeout as a duration, where 0 is no deadline.
func (p PipelinesConfig) RunTimeout() time.Duration {
	return time.Duration(max(p.Timeout, 0)) * time.Second
}

// ApplyDefaults sets sensible default values for unset fields.
func (c *Config) ApplyDefaults() {
	c.BaseConfig.ApplyDefaults()
	c.Logging.ApplyDefaults()

	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = 1 << 20
	}

	if c.Tracing.Endpoint == "" {
		c.Tracing.Endpoint = "localhost:4318"
	}
	if c.Tracing.SampleRate == 0 {
		c.Tracing.SampleRate = 1.0
	}
	if c.Metrics.Endpoint == "" {
		c.Metrics.Endpoint = "localhost:4318"
	}
	if c.Metrics.Interval == 0 {
		c.Metrics.Interval = 15
	}

	if len(c.Pipelines.Dirs) == 0 {
		c.Pipelines.Dirs = []string{"./pipelines"}
	}
	if c.Pipelines.MaxElements == 0 {
		c.Pipelines.MaxElements = 100000
	}
	if c.Pipelines.MaxPulls == 0 {
		c.Pipelines.MaxPulls = 10_000_000
	}
	if c.Pipelines.Timeout == 0 {
		c.Pipelines.Timeout = 30
	}

	if c.Redis.Enabled {
		c.Redis.ApplyDefaults()
		if c.Pipelines.CacheTTL == 0 {
			c.Pipelines.CacheTTL = 300
		}
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if err := c.BaseConfig.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Redis.Validate(); err != nil {
		return fmt.Errorf("config.redis: %w", err)
	}
	return validation.ValidateAs(errors.ErrCodeInvalidArgument, c)
}

// Load reads configuration for serviceName, applies defaults and validates
// the result.
func Load(serviceName string, opts ...LoaderOption) (*Config, error) {
	cfg := &Config{}
	if err := LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = serviceName
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}
