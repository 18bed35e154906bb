package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Loans    LoanConfig     `mapstructure:"loans" validate:"required"`
	Console  ConsoleConfig  `mapstructure:"console" validate:"required"`
}

// ServerConfig contains the HTTP surface and logging settings.
type ServerConfig struct {
	Port      int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel  string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"required,oneof=json text"`
}

// Database drivers understood by the application.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres memory"`
	// URL is only consulted by the postgres driver.
	URL            string `mapstructure:"url" validate:"required_if=Driver postgres"`
	MaxOpenConns   int    `mapstructure:"max_open_conns" validate:"gte=1"`
	MigrateOnStart bool   `mapstructure:"migrate_on_start"`
}

// LoanConfig holds the late fee policy applied when books come back.
type LoanConfig struct {
	GraceDays int     `mapstructure:"grace_days" validate:"gte=0"`
	DailyFee  float64 `mapstructure:"daily_fee" validate:"gte=0"`
}

// ConsoleConfig controls how the console renders operation results.
type ConsoleConfig struct {
	Output string `mapstructure:"output" validate:"required,oneof=text json"`
}
