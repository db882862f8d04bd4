// Package config loads process configuration from defaults, an optional .env
// file and the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	apperrors "mentor-ai/backend/internal/errors"
)

const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

type Config struct {
	AppPort        int    `mapstructure:"APP_PORT" validate:"gt=0,lte=65535"`
	DatabasePath   string `mapstructure:"DATABASE_PATH" validate:"required"`
	LogLevel       string `mapstructure:"LOG_LEVEL" validate:"oneof=DEBUG INFO WARN ERROR debug info warn error"`
	StorageBackend string `mapstructure:"STORAGE_BACKEND" validate:"oneof=sqlite redis"`
	RedisAddr      string `mapstructure:"REDIS_ADDR" validate:"required_if=StorageBackend redis"`

	MaxContextTokens     int `mapstructure:"MAX_CONTEXT_TOKENS" validate:"gt=0"`
	CompressionThreshold int `mapstructure:"COMPRESSION_THRESHOLD" validate:"gt=0,ltfield=MaxContextTokens"`
	MaxVersions          int `mapstructure:"MAX_VERSIONS" validate:"gt=0"`

	FallbackProviders  []string `mapstructure:"FALLBACK_PROVIDERS"`
	ProviderRateLimit  float64  `mapstructure:"PROVIDER_RATE_LIMIT" validate:"gte=0"`
	ProviderMaxRetries int      `mapstructure:"PROVIDER_MAX_RETRIES" validate:"gte=0"`

	KeyObfuscationSecret string `mapstructure:"KEY_OBFUSCATION_SECRET"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("DATABASE_PATH", "/data/mentor.db")
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("STORAGE_BACKEND", StorageSQLite)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("MAX_CONTEXT_TOKENS", 8000)
	viper.SetDefault("COMPRESSION_THRESHOLD", 6000)
	viper.SetDefault("MAX_VERSIONS", 50)
	viper.SetDefault("FALLBACK_PROVIDERS", "")
	viper.SetDefault("PROVIDER_RATE_LIMIT", 5)
	viper.SetDefault("PROVIDER_MAX_RETRIES", 3)
	viper.SetDefault("KEY_OBFUSCATION_SECRET", "mentor-ai")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("%w: read config file: %v", apperrors.ErrConfiguration, err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: decode config: %v", apperrors.ErrConfiguration, err)
	}
	cfg.FallbackProviders = splitList(cfg.FallbackProviders)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrConfiguration, err)
	}
	return &cfg, nil
}

// Watch calls onChange with the reloaded configuration whenever the .env file
// changes. It does nothing when no config file was found.
func Watch(onChange func(*Config)) {
	if viper.ConfigFileUsed() == "" {
		return
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		slog.Info("Configuration file changed", "file", e.Name, "op", e.Op.String())
		var cfg Config
		if err := viper.Unmarshal(&cfg); err != nil {
			slog.Error("Failed to decode changed configuration", "error", err)
			return
		}
		cfg.FallbackProviders = splitList(cfg.FallbackProviders)
		onChange(&cfg)
	})
	viper.WatchConfig()
}

// splitList trims entries and drops empty ones; env values arrive as a single
// comma-separated string.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
