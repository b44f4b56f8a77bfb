package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/msivanov/materialhub/internal/flagx"
	"github.com/msivanov/materialhub/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify timeouts either as
// strings like "30s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	BaseURL           string         `json:"base_url"`
	Timeout           timex.Duration `json:"timeout"`
	UploadTimeout     timex.Duration `json:"upload_timeout"`
	PageSize          int            `json:"page_size"`
	LocalDBPath       string         `json:"local_db_path"`
	RollbackOnFailure bool           `json:"rollback_on_failure"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies set fields into the provided Config; zero-valued fields keep
//     their current value so a partial file only overrides what it names.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
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

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.Timeout.Duration != 0 {
		cfg.Timeout = time.Duration(jc.Timeout.Duration)
	}
	if jc.UploadTimeout.Duration != 0 {
		cfg.UploadTimeout = time.Duration(jc.UploadTimeout.Duration)
	}
	if jc.PageSize != 0 {
		cfg.PageSize = jc.PageSize
	}
	if jc.LocalDBPath != "" {
		cfg.LocalDBPath = jc.LocalDBPath
	}
	if jc.RollbackOnFailure {
		cfg.RollbackOnFailure = true
	}
}
