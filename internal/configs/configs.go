/*
Package configs is responsible for loading and parsing the client's configuration settings.

It reads operating system environment variables (optionally seeded from a local .env file),
including the platform API base URL, HTTP timeouts, the bearer token file location,
and the outbound request rate limit.
*/
package configs

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig contains all configuration parameters required for the client to run.
// All configuration values are loaded from environment variables.
type AppConfig struct {
	// General Settings
	Environment string

	// API Settings
	BaseURL     *url.URL
	HTTPTimeout time.Duration

	// Session Settings
	TokenFile string

	// Outbound rate limit (requests per second / burst).
	RequestRate  float64
	RequestBurst int
}

// IsDevelopment reports whether the client runs in the development environment.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoadConfig reads and parses the client configuration from environment variables.
// A .env file in the working directory is loaded first when present; real environment
// variables always take precedence. It provides default values for each configuration
// item and performs necessary type conversions and validation.
// It returns a pointer to the AppConfig struct and any error encountered.
func LoadConfig() (*AppConfig, error) {
	// Missing .env is not an error; explicit env vars are the source of truth.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	// --- General Settings ---
	// Environment
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	// --- API Settings ---
	// BaseURL
	rawURL := os.Getenv("LEARNHUB_API_URL")
	if rawURL == "" {
		rawURL = "http://127.0.0.1:8000"
	}
	baseURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid LEARNHUB_API_URL environment variable: %w", err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("LEARNHUB_API_URL must use the http or https scheme, got %q", baseURL.Scheme)
	}
	if baseURL.Host == "" {
		return nil, fmt.Errorf("LEARNHUB_API_URL is missing a host")
	}
	cfg.BaseURL = baseURL

	// HTTPTimeout
	timeoutStr := os.Getenv("HTTP_TIMEOUT_SECONDS")
	if timeoutStr == "" {
		timeoutStr = "30"
	}
	timeoutSec, err := strconv.Atoi(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT_SECONDS environment variable: %w", err)
	}
	if timeoutSec <= 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT_SECONDS must be positive, got %d", timeoutSec)
	}
	cfg.HTTPTimeout = time.Duration(timeoutSec) * time.Second

	// --- Session Settings ---
	// TokenFile
	cfg.TokenFile = os.Getenv("TOKEN_FILE")
	if cfg.TokenFile == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("TOKEN_FILE not set and user config dir unavailable: %w", err)
		}
		cfg.TokenFile = filepath.Join(configDir, "learnhub", "token")
	}

	// --- Outbound Rate Limit ---
	// RequestRate
	rateStr := os.Getenv("REQUEST_RATE")
	if rateStr == "" {
		rateStr = "10"
	}
	requestRate, err := strconv.ParseFloat(rateStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_RATE environment variable: %w", err)
	}
	if requestRate <= 0 {
		return nil, fmt.Errorf("REQUEST_RATE must be positive, got %v", requestRate)
	}
	cfg.RequestRate = requestRate

	// RequestBurst
	burstStr := os.Getenv("REQUEST_BURST")
	if burstStr == "" {
		burstStr = "20"
	}
	requestBurst, err := strconv.Atoi(burstStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_BURST environment variable: %w", err)
	}
	if requestBurst < 1 {
		return nil, fmt.Errorf("REQUEST_BURST must be at least 1, got %d", requestBurst)
	}
	cfg.RequestBurst = requestBurst

	return cfg, nil
}
