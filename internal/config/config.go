package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the FieldScout server.
type Config struct {
	Server   ServerConfig
	History  HistoryConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Weather  WeatherConfig
	Static   StaticConfig
	Rate     RateConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

type HistoryConfig struct {
	// File backs the history when no DATABASE_URL is set.
	File string
}

type DatabaseConfig struct {
	// URL is optional; when empty the file-backed history store is used.
	URL            string
	MigrationsPath string
}

type RedisConfig struct {
	// URL is optional; when empty caching and rate limiting are disabled.
	URL string
}

type WeatherConfig struct {
	BaseURL string
	Timeout time.Duration
}

type StaticConfig struct {
	// Dir is where analysis artifacts are written and served from.
	Dir string
}

type RateConfig struct {
	// RequestsPerMinute caps analyze requests per client. Zero disables
	// the limiter.
	RequestsPerMinute int
}

// Load reads configuration from environment variables and returns a validated Config.
// Returns an error with a descriptive message if any value is invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("FIELDSCOUT_PORT", 8080),
			Env:  envString("FIELDSCOUT_ENV", "development"),
		},
		History: HistoryConfig{
			File: envString("HISTORY_FILE", "analysis_history.json"),
		},
		Database: DatabaseConfig{
			URL:            os.Getenv("DATABASE_URL"),
			MigrationsPath: envString("MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Weather: WeatherConfig{
			BaseURL: envString("WEATHER_BASE_URL", "https://api.open-meteo.com"),
			Timeout: envDuration("WEATHER_TIMEOUT", 10*time.Second),
		},
		Static: StaticConfig{
			Dir: envString("STATIC_DIR", "static"),
		},
		Rate: RateConfig{
			RequestsPerMinute: envInt("RATE_LIMIT_PER_MINUTE", 60),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("FIELDSCOUT_PORT must be in 1-65535, got %d", c.Server.Port)
	}

	if !strings.HasPrefix(c.Weather.BaseURL, "http://") && !strings.HasPrefix(c.Weather.BaseURL, "https://") {
		return fmt.Errorf("WEATHER_BASE_URL must start with http:// or https://, got %q", c.Weather.BaseURL)
	}
	if c.Weather.Timeout <= 0 {
		return fmt.Errorf("WEATHER_TIMEOUT must be positive, got %s", c.Weather.Timeout)
	}

	if c.History.File == "" {
		return fmt.Errorf("HISTORY_FILE must not be empty")
	}
	if c.Static.Dir == "" {
		return fmt.Errorf("STATIC_DIR must not be empty")
	}

	if c.Rate.RequestsPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative, got %d", c.Rate.RequestsPerMinute)
	}

	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
