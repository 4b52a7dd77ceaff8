// Package config assembles runtime settings for the DeepBrief CLI from,
// in order of increasing precedence: defaults, a .env file / environment
// variables, an optional JSON file (-c/-config), and command-line flags.
package config

import "time"

// Config holds runtime settings for the DeepBrief CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the research service.
//   - CacheDSN: path of the local sqlite cache database.
//   - RequestTimeout: round-trip bound for generation calls. Reports are
//     synthesised per request, so this is deliberately generous.
//   - VerifyBackoff: initial delay between payment-verification polls.
//   - HistoryRetryDelay: initial delay between history-append retries.
type Config struct {
	ServerEndpointAddr string
	CacheDSN           string
	RequestTimeout     time.Duration
	VerifyBackoff      time.Duration
	HistoryRetryDelay  time.Duration
}

// LoadDefaults populates c with sensible defaults. The endpoint default
// matches the service's local development address.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://localhost:8000"
	c.CacheDSN = "deepbrief.db"
	c.RequestTimeout = 120 * time.Second
	c.VerifyBackoff = 1 * time.Second
	c.HistoryRetryDelay = 500 * time.Millisecond
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including a .env file when present), JSON (if a
// config file was named), and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
