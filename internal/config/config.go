package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Scraper ScraperConfig
	Session SessionConfig
	Logging LoggingConfig
}

type ScraperConfig struct {
	InputFile       string
	OutputFile      string
	RequestDelay    time.Duration
	RequestTimeout  time.Duration
	MinMatchScore   float64
	CheckpointEvery int
	CheckAuth       bool
}

// SessionConfig carries the store session cookies. SessionID and LoginSecure
// are required for an authenticated session; without them the scraper still
// runs but age-gated pages may not resolve.
type SessionConfig struct {
	SessionID          string
	LoginSecure        string
	Parental           string
	LastAgeCheckAge    string
	BirthTime          string
	WantsMatureContent string
	Language           string
	TimezoneOffset     string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Scraper: ScraperConfig{
			InputFile:       getEnvOrDefault("SCRAPER_INPUT_FILE", "games_list.txt"),
			OutputFile:      getEnvOrDefault("SCRAPER_OUTPUT_FILE", "steam_games.xlsx"),
			RequestDelay:    getDurationOrDefault("SCRAPER_REQUEST_DELAY", time.Second),
			RequestTimeout:  getDurationOrDefault("SCRAPER_REQUEST_TIMEOUT", 10*time.Second),
			MinMatchScore:   getFloatOrDefault("SCRAPER_MIN_MATCH_SCORE", 0.3),
			CheckpointEvery: getIntOrDefault("SCRAPER_CHECKPOINT_EVERY", 10),
			CheckAuth:       getBoolOrDefault("SCRAPER_CHECK_AUTH", false),
		},
		Session: SessionConfig{
			SessionID:          os.Getenv("STEAM_SESSIONID"),
			LoginSecure:        os.Getenv("STEAM_LOGIN_SECURE"),
			Parental:           os.Getenv("STEAM_PARENTAL"),
			LastAgeCheckAge:    os.Getenv("lastagecheckage"),
			BirthTime:          os.Getenv("birthtime"),
			WantsMatureContent: os.Getenv("wants_mature_content"),
			Language:           os.Getenv("STEAM_LANGUAGE"),
			TimezoneOffset:     os.Getenv("STEAM_TIMEZONE_OFFSET"),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
		},
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Scraper.InputFile == "" {
		return fmt.Errorf("SCRAPER_INPUT_FILE must not be empty")
	}

	if c.Scraper.OutputFile == "" {
		return fmt.Errorf("SCRAPER_OUTPUT_FILE must not be empty")
	}

	if c.Scraper.RequestDelay < 0 {
		return fmt.Errorf("SCRAPER_REQUEST_DELAY must not be negative")
	}

	if c.Scraper.MinMatchScore < 0 || c.Scraper.MinMatchScore > 1 {
		return fmt.Errorf("SCRAPER_MIN_MATCH_SCORE must be in [0,1]")
	}

	if c.Scraper.CheckpointEvery < 1 {
		return fmt.Errorf("SCRAPER_CHECKPOINT_EVERY must be at least 1")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
