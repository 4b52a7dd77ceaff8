package config

import (
	"encoding/json"
	"os"

	"github.com/deepbrief/deepbrief/internal/flagx"
	"github.com/deepbrief/deepbrief/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "90s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	CacheDSN           string         `json:"cache_dsn"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	VerifyBackoff      timex.Duration `json:"verify_backoff"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// the -c/-config flags. When no file is named, nothing happens. Read or
// unmarshal errors panic; the CLI treats a broken explicit config file as a
// startup failure.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.CacheDSN != "" {
		cfg.CacheDSN = jc.CacheDSN
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.VerifyBackoff.Duration != 0 {
		cfg.VerifyBackoff = jc.VerifyBackoff.Duration
	}
}
