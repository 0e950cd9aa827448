package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultBaseURL = "https://dummyjson.com"
	defaultTimeout = 10 * time.Second
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Load reads configuration from the environment (with .env support).
// Unset keys fall back to defaults.
func Load() Config {
	godotenv.Load(".env")

	cfg := Config{
		BaseURL: defaultBaseURL,
		Timeout: defaultTimeout,
	}
	if v := os.Getenv("DUMMYJSON_BASE_URL"); v != "" {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("DUMMYJSON_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.Timeout = time.Duration(ms) * time.Millisecond
		}
	}
	return cfg
}
