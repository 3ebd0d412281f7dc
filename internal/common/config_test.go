package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/docledger")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg := LoadConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "gemini-1.5-flash", cfg.Gemini.Model)
	assert.Equal(t, 60*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, "./tmp", cfg.Upload.Dir)
	assert.False(t, cfg.Upload.RenderSpreadsheets)
	assert.Equal(t, "chromium", cfg.Renderer.ChromeBin)
}

func TestValidateMissingRequired(t *testing.T) {
	cfg := &Config{HTTP: HTTPConfig{Addr: ":8080"}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_URL")

	cfg.Database.DSN = "postgres://localhost/docledger"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")

	cfg.Gemini.APIKey = "k"
	assert.NoError(t, cfg.Validate())
}
