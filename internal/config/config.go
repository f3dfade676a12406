package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ModePublic = "public"
	ModeMock   = "mock"

	DefaultFeedURL     = "https://itunes.apple.com/us/rss/topmovies/limit=50/json"
	DefaultUserAgent   = "showtime/1.0"
	DefaultLimit       = 10
	DefaultMinInterval = time.Duration(0)
	DefaultPort        = "8080"
)

// Config holds everything the shell needs to build a pipeline.
type Config struct {
	FeedURL     string
	UserAgent   string
	Mode        string
	Limit       int
	MinInterval time.Duration
	Port        string
	LogLevel    slog.Level
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, applying defaults for empty values.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		FeedURL:     orDefault(getenv("FEED_URL"), DefaultFeedURL),
		UserAgent:   orDefault(getenv("FEED_USER_AGENT"), DefaultUserAgent),
		Mode:        strings.ToLower(orDefault(getenv("COLLECTOR_MODE"), ModePublic)),
		Limit:       DefaultLimit,
		MinInterval: DefaultMinInterval,
		Port:        orDefault(getenv("PORT"), DefaultPort),
		LogLevel:    slog.LevelInfo,
	}

	if cfg.Mode != ModePublic && cfg.Mode != ModeMock {
		return Config{}, fmt.Errorf("unknown COLLECTOR_MODE: %s (use 'public' or 'mock')", cfg.Mode)
	}

	if v := strings.TrimSpace(getenv("FEED_LIMIT")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("FEED_LIMIT: %w", err)
		}
		if n < 0 {
			return Config{}, fmt.Errorf("FEED_LIMIT must not be negative, got %d", n)
		}
		cfg.Limit = n
	}

	if v := strings.TrimSpace(getenv("FEED_MIN_INTERVAL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("FEED_MIN_INTERVAL: %w", err)
		}
		cfg.MinInterval = d
	}

	if v := strings.TrimSpace(getenv("LOG_LEVEL")); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
		}
	}

	return cfg, nil
}

func orDefault(v, def string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}
