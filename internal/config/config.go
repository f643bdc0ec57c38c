// Package config provides configuration loading and validation for the
// agent service.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds everything the service reads from its environment. Only the
// Gemini key is strictly required; every boundary service degrades when its
// setting is absent.
type Config struct {
	// GeminiAPIKey authenticates LLM calls. Required.
	GeminiAPIKey string

	// ProfanityAPIKey authenticates the profanity check service. Empty
	// disables the check (the filter fails open).
	ProfanityAPIKey string

	// GibberishEndpoint is the gibberish classifier URL. Empty disables
	// the check.
	GibberishEndpoint string

	// DatabaseURL is the PostgreSQL connection string. Empty disables
	// conversation and profile persistence.
	DatabaseURL string

	// RedisAddr is the redis host:port used to cache platform session
	// tokens. Empty disables caching; tokens are fetched per request.
	RedisAddr string

	// Port is the HTTP listen port.
	Port int

	// Verbose enables per-step progress printing.
	Verbose bool
}

// FromEnv reads configuration from environment variables. Defaults are
// applied where a value is optional.
func FromEnv() (*Config, error) {
	cfg := &Config{
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		ProfanityAPIKey:   os.Getenv("PROFANITY_API_KEY"),
		GibberishEndpoint: os.Getenv("GIBBERISH_ENDPOINT"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		Port:              8080,
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}
	if verboseStr := os.Getenv("VERBOSE"); verboseStr != "" {
		verbose, err := strconv.ParseBool(verboseStr)
		if err != nil {
			return nil, fmt.Errorf("invalid VERBOSE: %v", err)
		}
		cfg.Verbose = verbose
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("config error: GEMINI_API_KEY is required but not set")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT must be between 1 and 65535, got %d", c.Port)
	}
	return nil
}
