// Package config centralises configuration parsing for the roster service.
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config captures runtime configuration values for the roster service.
type Config struct {
	HTTPAddress       string
	StaticDir         string
	CORSAllowedOrigin string
	LogLevel          string
	LogFormat         string
	KafkaBrokers      []string // Empty disables roster event publishing.
	RosterTopic       string
	SchemaRegistryURL string // Empty skips Schema Registry and frames events with schema id 0.
	EventBufferSize   int
	EventBatchSize    int
	EventFlushPeriod  time.Duration
	ConsumerGroupID   string
	MetricsAddress    string
	RateLimitPerSec   float64 // Zero or negative disables the mutation rate limiter.
	RateLimitBurst    int
}

// Load reads an optional .env file and environment variables into Config,
// applying sensible defaults for local dev.
func Load() Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("http_address", ":8080")
	v.SetDefault("static_dir", "static")
	v.SetDefault("cors_allowed_origin", "http://localhost:5173")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("kafka_brokers", "")
	v.SetDefault("roster_topic", "roster_events")
	v.SetDefault("schema_registry_url", "")
	v.SetDefault("event_buffer_size", 256)
	v.SetDefault("event_batch_size", 25)
	v.SetDefault("event_flush_period", 500*time.Millisecond)
	v.SetDefault("consumer_group_id", "roster-audit")
	v.SetDefault("metrics_address", ":9195")
	v.SetDefault("rate_limit_per_second", 5.0)
	v.SetDefault("rate_limit_burst", 10)

	return Config{
		HTTPAddress:       v.GetString("http_address"),
		StaticDir:         v.GetString("static_dir"),
		CORSAllowedOrigin: v.GetString("cors_allowed_origin"),
		LogLevel:          strings.ToLower(v.GetString("log_level")),
		LogFormat:         strings.ToLower(v.GetString("log_format")),
		KafkaBrokers:      splitAndTrim(v.GetString("kafka_brokers")),
		RosterTopic:       v.GetString("roster_topic"),
		SchemaRegistryURL: strings.TrimRight(v.GetString("schema_registry_url"), "/"),
		EventBufferSize:   positiveInt(v.GetInt("event_buffer_size"), 256),
		EventBatchSize:    positiveInt(v.GetInt("event_batch_size"), 25),
		EventFlushPeriod:  positiveDuration(v.GetDuration("event_flush_period"), 500*time.Millisecond),
		ConsumerGroupID:   v.GetString("consumer_group_id"),
		MetricsAddress:    v.GetString("metrics_address"),
		RateLimitPerSec:   v.GetFloat64("rate_limit_per_second"),
		RateLimitBurst:    positiveInt(v.GetInt("rate_limit_burst"), 10),
	}
}

// EventsEnabled reports whether roster events should be delivered to Kafka.
func (c Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func positiveInt(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}

func positiveDuration(value, fallback time.Duration) time.Duration {
	if value <= 0 {
		return fallback
	}
	return value
}
