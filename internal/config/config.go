package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mmuslimabdulj/goat-wolf/internal/domain"
	"github.com/mmuslimabdulj/goat-wolf/internal/game"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port string

	// Security
	AllowedOrigins []string

	// Rate Limiting
	RateLimitAPI rate.Limit
	RateLimitWS  rate.Limit

	// Logging
	LogLevel string

	// WebSocket
	MaxMessageSize int
	MaxHistorySize int

	// Game pacing
	NightActionWindow time.Duration
	DayVoteWindow     time.Duration
	PhaseDelay        time.Duration
	ResolveDelay      time.Duration
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Port:           "8080",
		AllowedOrigins: []string{"http://localhost:8080", "http://localhost:3000"},
		RateLimitAPI:   10,
		RateLimitWS:    5,
		LogLevel:       "info", // Options: debug, info, warn, error, silent

		MaxMessageSize: domain.MaxMessageSize,
		MaxHistorySize: domain.MaxHistorySize,

		NightActionWindow: domain.NightActionWindow,
		DayVoteWindow:     domain.DayVoteWindow,
		PhaseDelay:        domain.PhaseDelay,
		ResolveDelay:      domain.ResolveDelay,
	}
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	cfg := DefaultConfig()

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = parseOrigins(origins)
	}

	if rl := os.Getenv("RATE_LIMIT_API"); rl != "" {
		if val, err := strconv.Atoi(rl); err == nil && val > 0 {
			cfg.RateLimitAPI = rate.Limit(val)
		}
	}

	if rl := os.Getenv("RATE_LIMIT_WS"); rl != "" {
		if val, err := strconv.Atoi(rl); err == nil && val > 0 {
			cfg.RateLimitWS = rate.Limit(val)
		}
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	if size := os.Getenv("MAX_MESSAGE_SIZE"); size != "" {
		if val, err := strconv.Atoi(size); err == nil && val > 0 {
			cfg.MaxMessageSize = val
		}
	}

	if size := os.Getenv("MAX_HISTORY_SIZE"); size != "" {
		if val, err := strconv.Atoi(size); err == nil && val > 0 {
			cfg.MaxHistorySize = val
		}
	}

	if secs := envSeconds("NIGHT_ACTION_SECONDS"); secs > 0 {
		cfg.NightActionWindow = secs
	}
	if secs := envSeconds("DAY_VOTE_SECONDS"); secs > 0 {
		cfg.DayVoteWindow = secs
	}
	if secs := envSeconds("PHASE_DELAY_SECONDS"); secs > 0 {
		cfg.PhaseDelay = secs
	}

	return cfg
}

// GameConfig maps the pacing settings onto the engine's config
func (c *Config) GameConfig() game.Config {
	return game.Config{
		NightActionWindow: c.NightActionWindow,
		DayVoteWindow:     c.DayVoteWindow,
		PhaseDelay:        c.PhaseDelay,
		ResolveDelay:      c.ResolveDelay,
	}
}

func envSeconds(key string) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return 0
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return 0
	}
	return time.Duration(val) * time.Second
}

// parseOrigins parses comma-separated origins
func parseOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
