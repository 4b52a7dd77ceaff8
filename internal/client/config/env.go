package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables, first loading a .env
// file from the working directory when one exists. Unset variables leave the
// current values untouched.
//
// Recognised variables:
//
//	DEEPBRIEF_API_URL          base URL of the research service
//	DEEPBRIEF_CACHE_DSN        path of the local cache database
//	DEEPBRIEF_REQUEST_TIMEOUT  duration string, e.g. "90s"
func parseEnv(cfg *Config) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	if v := os.Getenv("DEEPBRIEF_API_URL"); v != "" {
		cfg.ServerEndpointAddr = v
	}
	if v := os.Getenv("DEEPBRIEF_CACHE_DSN"); v != "" {
		cfg.CacheDSN = v
	}
	if v := os.Getenv("DEEPBRIEF_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
