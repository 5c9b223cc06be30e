package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultPollTime is the inter-cycle sleep in seconds.
	DefaultPollTime = 5.0

	defaultServerHost  = "http://localhost:5600"
	testingServerHost  = "http://localhost:5666"
	credentialsHelpURL = "https://developer.spotify.com/dashboard"
)

// Config holds the application configuration.
type Config struct {
	PollTime float64
	AWHost   string
	Testing  bool
	LogLevel slog.Level
	Spotify  struct {
		Username     string
		ClientID     string
		ClientSecret string
		RefreshToken string
	}
}

// Load loads the configuration from environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := &Config{}

	cfg.Spotify.Username = os.Getenv("SPOTIFY_USERNAME")
	cfg.Spotify.ClientID = os.Getenv("SPOTIFY_CLIENT_ID")
	cfg.Spotify.ClientSecret = os.Getenv("SPOTIFY_CLIENT_SECRET")
	cfg.Spotify.RefreshToken = os.Getenv("SPOTIFY_REFRESH_TOKEN")

	if cfg.Spotify.Username == "" || cfg.Spotify.ClientID == "" ||
		cfg.Spotify.ClientSecret == "" || cfg.Spotify.RefreshToken == "" {
		return nil, fmt.Errorf(
			"SPOTIFY_USERNAME, SPOTIFY_CLIENT_ID, SPOTIFY_CLIENT_SECRET or SPOTIFY_REFRESH_TOKEN is not set; "+
				"register an application at %s to obtain credentials", credentialsHelpURL)
	}

	cfg.PollTime = DefaultPollTime
	if v := os.Getenv("POLL_TIME"); v != "" {
		pollTime, err := strconv.ParseFloat(v, 64)
		if err != nil || pollTime <= 0 {
			return nil, fmt.Errorf("POLL_TIME must be a positive number of seconds, got %q", v)
		}
		cfg.PollTime = pollTime
	}

	testing, err := strconv.ParseBool(os.Getenv("TESTING"))
	if err != nil {
		cfg.Testing = false
	} else {
		cfg.Testing = testing
	}

	cfg.AWHost = os.Getenv("AW_HOST")
	if cfg.AWHost == "" {
		if cfg.Testing {
			cfg.AWHost = testingServerHost
		} else {
			cfg.AWHost = defaultServerHost
		}
	}

	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		cfg.LogLevel = slog.LevelInfo
	}

	return cfg, nil
}
