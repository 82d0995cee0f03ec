package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowcase/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "openai", cfg.Extractor.Provider)
	assert.Equal(t, "gpt-4.1", cfg.Extractor.Model)
	assert.Equal(t, int64(5), cfg.Extractor.MaxFileSizeMB)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Empty(t, cfg.S3.Bucket)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:3000")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FLOWCASE_SERVER_PORT", ":9090")
	t.Setenv("FLOWCASE_EXTRACTOR_MODEL", "gpt-4o-mini")
	t.Setenv("FLOWCASE_EXTRACTOR_API_KEY", "secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "gpt-4o-mini", cfg.Extractor.Model)
	assert.Equal(t, "secret", cfg.Extractor.APIKey)
}

func TestLoad_OpenAIKeyFallback(t *testing.T) {
	t.Setenv("FLOWCASE_EXTRACTOR_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "conventional")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "conventional", cfg.Extractor.APIKey)
}

func TestDSN(t *testing.T) {
	db := config.DBConfig{
		Host: "db", Port: 5432, User: "u", Password: "p", Name: "flowcase", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://u:p@db:5432/flowcase?sslmode=disable", db.DSN())
}
