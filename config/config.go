package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devJWTSecret = "citysense-dev-secret"

// Config is the service configuration, read from the environment after
// an optional .env file.
type Config struct {
	Port        string
	Environment string
	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigins []string

	Redis struct {
		Address     string
		Password    string
		QueuePrefix string
	}
	IssueDailyLimit int

	Simulator struct {
		Interval       time.Duration
		NewIssueChance float64
		AdvanceChance  float64
	}

	Log struct {
		Level  string
		Format string
	}
}

// Production reports whether GO_ENV is production.
func (c *Config) Production() bool {
	return c.Environment == "production"
}

// RateLimitEnabled reports whether a Redis server is configured.
func (c *Config) RateLimitEnabled() bool {
	return c.Redis.Address != ""
}

// Load reads .env (when present) and the environment.
func Load() (*Config, error) {
	// a missing .env is fine, the environment may already be set
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.Environment = getEnv("GO_ENV", "development")

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		if cfg.Production() {
			return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
		}
		cfg.JWTSecret = devJWTSecret
	}

	var err error
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 72*time.Hour); err != nil {
		return nil, err
	}
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "*"))

	cfg.Redis.Address = os.Getenv("REDIS_ADDRESS")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	cfg.Redis.QueuePrefix = getEnv("REDIS_QUEUE_FOR_ISSUE_LIMIT", "issue-limit")
	if cfg.IssueDailyLimit, err = getInt("ISSUE_DAILY_LIMIT", 20); err != nil {
		return nil, err
	}

	if cfg.Simulator.Interval, err = getDuration("SIMULATOR_INTERVAL", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.Simulator.NewIssueChance, err = getFloat("SIMULATOR_NEW_ISSUE_CHANCE", 0.3); err != nil {
		return nil, err
	}
	if cfg.Simulator.AdvanceChance, err = getFloat("SIMULATOR_ADVANCE_CHANCE", 0.15); err != nil {
		return nil, err
	}

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if f < 0 || f > 1 {
		return 0, fmt.Errorf("%s: %v is not a probability", key, f)
	}
	return f, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
