package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:8000", c.BaseURL)
	assert.Equal(t, 30*time.Second, c.Timeout)
	assert.Equal(t, 60*time.Second, c.UploadTimeout)
	assert.Equal(t, 12, c.PageSize)
	assert.Equal(t, "materialhub.db", c.LocalDBPath)
	assert.False(t, c.RollbackOnFailure)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}
