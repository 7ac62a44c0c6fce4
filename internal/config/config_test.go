package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "artifacts/call_forecasting_model.json", cfg.ModelPath)
	assert.Equal(t, "artifacts/model_feature_columns.json", cfg.ColumnsPath)
	assert.Equal(t, "artifacts/hospital_directory.csv", cfg.DirectoryPath)
	assert.Empty(t, cfg.DirectoryDSN)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("ENV", "production")
	t.Setenv("MODEL_PATH", "/srv/model.json")
	t.Setenv("DIRECTORY_DSN", "postgres://localhost/callforecast")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "production", cfg.Env)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "/srv/model.json", cfg.ModelPath)
	assert.Equal(t, "postgres://localhost/callforecast", cfg.DirectoryDSN)
}

func TestLoad_RequiresArtifactPaths(t *testing.T) {
	t.Setenv("MODEL_PATH", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MODEL_PATH")
}

func TestLoad_RequiresDirectorySource(t *testing.T) {
	t.Setenv("DIRECTORY_PATH", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DIRECTORY_PATH")
}
