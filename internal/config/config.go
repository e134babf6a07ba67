package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"vedur/internal/types"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	App       AppConfig
	Forecast  ForecastConfig
	Telemetry TelemetryConfig
	Locations []types.Location
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port    int
	GinMode string // debug, release, test
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Locale          string // BCP 47 tag used for date formatting
	DisplayTimezone string // empty shows times in the forecast location's zone
	ForecastDays    int
}

// ForecastConfig holds forecast provider configuration
type ForecastConfig struct {
	BaseURL string
	Timeout time.Duration
}

// TelemetryConfig holds tracing configuration; an empty endpoint disables export
type TelemetryConfig struct {
	Endpoint    string
	ServiceName string
}

// Load reads configuration from .env, config file and environment variables
func Load() (*Config, error) {
	// A missing .env is normal outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.vedur")

	setDefaults(v)

	v.SetEnvPrefix("VEDUR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return unmarshal(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("app.locale", "is-IS")
	v.SetDefault("app.displaytimezone", "")
	v.SetDefault("app.forecastdays", 1)
	v.SetDefault("forecast.baseurl", "https://api.open-meteo.com/v1/forecast")
	v.SetDefault("forecast.timeout", 15*time.Second)
	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.servicename", "vedur")
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.App.ForecastDays < 1 || cfg.App.ForecastDays > 16 {
		return nil, fmt.Errorf("app.forecastdays must be between 1 and 16, got %d", cfg.App.ForecastDays)
	}
	if cfg.Server.Port <= 0 {
		return nil, fmt.Errorf("server.port must be positive, got %d", cfg.Server.Port)
	}

	return &cfg, nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
