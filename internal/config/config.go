package config

import (
	"fmt"
	"strings"
	"time"
)

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // text or json
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SourceConfig describes the upstream article feed. DetailURL and MediaURL
// contain an "{id}" placeholder.
type SourceConfig struct {
	ListURL           string  `mapstructure:"list_url"`
	DetailURL         string  `mapstructure:"detail_url"`
	MediaURL          string  `mapstructure:"media_url"`
	Timeout           string  `mapstructure:"timeout"` // duration string, e.g., "10s"
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// CollectorConfig controls the polling loop.
type CollectorConfig struct {
	Interval    string `mapstructure:"interval"` // duration string, e.g., "300s"
	Concurrency int    `mapstructure:"concurrency"`
}

// MappingConfig exposes the normalization policies.
type MappingConfig struct {
	LenientModificationDate bool `mapstructure:"lenient_modification_date"`
	RejectUnknownMedia      bool `mapstructure:"reject_unknown_media"`
}

// SinkConfig selects where assembled articles go.
type SinkConfig struct {
	Kinds        []string `mapstructure:"kinds"`  // stdout, redis
	Format       string   `mapstructure:"format"` // json or yaml, for stdout
	RedisChannel string   `mapstructure:"redis_channel"`
}

// Config is the top-level configuration structure.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Source    SourceConfig    `mapstructure:"source"`
	Collector CollectorConfig `mapstructure:"collector"`
	Mapping   MappingConfig   `mapstructure:"mapping"`
	Sink      SinkConfig      `mapstructure:"sink"`
}

const (
	DefaultListURL   = "https://mapping-test.fra1.digitaloceanspaces.com/data/list.json"
	DefaultDetailURL = "https://mapping-test.fra1.digitaloceanspaces.com/data/articles/{id}.json"
	DefaultMediaURL  = "https://mapping-test.fra1.digitaloceanspaces.com/data/media/{id}.json"
)

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.App.LogFormat == "" {
		c.App.LogFormat = "text"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.Source.ListURL == "" {
		c.Source.ListURL = DefaultListURL
	}
	if c.Source.DetailURL == "" {
		c.Source.DetailURL = DefaultDetailURL
	}
	if c.Source.MediaURL == "" {
		c.Source.MediaURL = DefaultMediaURL
	}
	if c.Source.Timeout == "" {
		c.Source.Timeout = "10s"
	}
	if c.Source.Burst <= 0 {
		c.Source.Burst = 1
	}
	if c.Collector.Interval == "" {
		c.Collector.Interval = "300s"
	}
	if c.Collector.Concurrency <= 0 {
		c.Collector.Concurrency = 1
	}
	if len(c.Sink.Kinds) == 0 {
		c.Sink.Kinds = []string{"stdout"}
	}
	for i, k := range c.Sink.Kinds {
		c.Sink.Kinds[i] = strings.ToLower(strings.TrimSpace(k))
	}
	if c.Sink.Format == "" {
		c.Sink.Format = "json"
	}
	c.Sink.Format = strings.ToLower(c.Sink.Format)
	if c.Sink.RedisChannel == "" {
		c.Sink.RedisChannel = "articles"
	}
}

// Validate reports settings that cannot be used. Call after FillDefaults.
func (c *Config) Validate() error {
	if _, err := c.Source.TimeoutDuration(); err != nil {
		return err
	}
	if _, err := c.Collector.IntervalDuration(); err != nil {
		return err
	}
	if c.Source.RequestsPerSecond < 0 {
		return fmt.Errorf("source.requests_per_second must be non-negative")
	}
	for _, u := range []string{c.Source.DetailURL, c.Source.MediaURL} {
		if !strings.Contains(u, "{id}") {
			return fmt.Errorf("source url %q has no {id} placeholder", u)
		}
	}
	for _, k := range c.Sink.Kinds {
		if k != "stdout" && k != "redis" {
			return fmt.Errorf("unknown sink kind %q (want stdout or redis)", k)
		}
	}
	if c.Sink.Format != "json" && c.Sink.Format != "yaml" {
		return fmt.Errorf("sink.format must be json or yaml, got %q", c.Sink.Format)
	}
	return nil
}

// TimeoutDuration parses Timeout.
func (s SourceConfig) TimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid source.timeout %q: %w", s.Timeout, err)
	}
	return d, nil
}

// IntervalDuration parses Interval.
func (c CollectorConfig) IntervalDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Interval)
	if err != nil {
		return 0, fmt.Errorf("invalid collector.interval %q: %w", c.Interval, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("collector.interval must be positive, got %s", d)
	}
	return d, nil
}

// HasSink reports whether kind is among the configured sinks.
func (s SinkConfig) HasSink(kind string) bool {
	for _, k := range s.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}
