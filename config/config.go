// Package config loads process-level configuration for the vecfed CLI
// from environment variables and an optional config file.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for a vecfed invocation.
type Config struct {
	// AWS region for the S3 Vectors and S3 clients.
	Region string `mapstructure:"region"`

	// Target index.
	Bucket string `mapstructure:"bucket"`
	Index  string `mapstructure:"index"`

	// Read shape.
	Columns []string `mapstructure:"columns"`
	Keys    []string `mapstructure:"keys"`
	Limit   int64    `mapstructure:"limit"`

	// Fetch tuning.
	KeyBatchSize int     `mapstructure:"key_batch_size"`
	PageSize     int     `mapstructure:"page_size"`
	Prefetch     bool    `mapstructure:"prefetch"`
	RateLimit    float64 `mapstructure:"rate_limit"`

	// Spill target; empty SpillBucket keeps rows in memory.
	SpillBucket      string `mapstructure:"spill_bucket"`
	SpillPrefix      string `mapstructure:"spill_prefix"`
	SpillCompression string `mapstructure:"spill_compression"`

	// Logging; LogFormat is "text" or "json".
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Load reads configuration from VECFED_* environment variables and an
// optional vecfed.yaml in the working directory. Environment variables
// take precedence over file values.
func Load() (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("VECFED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults also register the keys so AutomaticEnv values survive
	// Unmarshal.
	v.SetDefault("region", "")
	v.SetDefault("bucket", "")
	v.SetDefault("index", "")
	v.SetDefault("columns", []string{"vector_id", "embedding", "metadata"})
	v.SetDefault("keys", []string{})
	v.SetDefault("limit", 0)
	v.SetDefault("key_batch_size", 80)
	v.SetDefault("page_size", 0)
	v.SetDefault("prefetch", false)
	v.SetDefault("rate_limit", 0)
	v.SetDefault("spill_bucket", "")
	v.SetDefault("spill_prefix", "")
	v.SetDefault("spill_compression", "zstd")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	v.SetConfigName("vecfed")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
