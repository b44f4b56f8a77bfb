package config

import "time"

// Config holds runtime settings for the materials CLI.
//
// Fields:
//   - BaseURL: root URL of the backend REST API.
//   - Timeout: per-request timeout for JSON calls.
//   - UploadTimeout: per-request timeout for multipart uploads.
//   - PageSize: materials per catalog page.
//   - LocalDBPath: path of the local sqlite state database.
//   - RollbackOnFailure: revert optimistic counter mutations on API failure.
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	UploadTimeout     time.Duration
	PageSize          int
	LocalDBPath       string
	RollbackOnFailure bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8000"
	c.Timeout = 30 * time.Second
	c.UploadTimeout = 60 * time.Second
	c.PageSize = 12
	c.LocalDBPath = "materialhub.db"
	c.RollbackOnFailure = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
