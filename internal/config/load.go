package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the loader reads,
// e.g. SHELF_DATABASE_URL for database.url.
const EnvPrefix = "SHELF"

// keys lists every configuration key so each can be bound to its environment
// variable; viper only consults the environment for keys it knows about.
var keys = []string{
	"server.port",
	"server.log_level",
	"server.log_format",
	"database.driver",
	"database.url",
	"database.max_open_conns",
	"database.migrate_on_start",
	"loans.grace_days",
	"loans.daily_fee",
	"console.output",
}

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from the file.
// When path is empty, a file named shelf.yaml (or .json/.toml) in the working
// directory is used if present.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("shelf")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "text")
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.migrate_on_start", false)
	v.SetDefault("loans.grace_days", 7)
	v.SetDefault("loans.daily_fee", 0.5)
	v.SetDefault("console.output", "text")
}
