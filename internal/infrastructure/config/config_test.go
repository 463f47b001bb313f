package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/haulplan/internal/infrastructure/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	// Act
	cfg, err := config.LoadConfig("")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.Geocoding.BaseURL)
	assert.Equal(t, "haulplan/1.0", cfg.Geocoding.UserAgent)
	assert.Equal(t, 1*time.Second, cfg.Geocoding.RateInterval)
	assert.Equal(t, "https://router.project-osrm.org", cfg.Routing.BaseURL)
	assert.Equal(t, 6, cfg.Planning.StartHour)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, 9090, cfg.Metrics.Port)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadConfig_FromFile(t *testing.T) {
	// Arrange
	path := writeConfigFile(t, `
server:
  port: 9000
  read_timeout: 20s
geocoding:
  user_agent: "haulplan-test/0.1"
planning:
  start_hour: 8
metrics:
  enabled: true
logging:
  level: debug
  format: text
`)

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 20*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "haulplan-test/0.1", cfg.Geocoding.UserAgent)
	assert.Equal(t, 8, cfg.Planning.StartHour)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)

	// Values the file omits still get defaults
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.Geocoding.BaseURL)
}

func TestLoadConfig_PortEnvOverride(t *testing.T) {
	// Arrange
	t.Setenv("PORT", "3000")

	// Act
	cfg, err := config.LoadConfig("")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoadConfig_InvalidLoggingLevel(t *testing.T) {
	// Arrange
	path := writeConfigFile(t, `
logging:
  level: verbose
`)

	// Act
	_, err := config.LoadConfig(path)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed validation")
}

func TestLoadConfigOrDefault_FallsBackOnError(t *testing.T) {
	// Arrange
	path := writeConfigFile(t, `
logging:
  level: verbose
`)

	// Act
	cfg := config.LoadConfigOrDefault(path)

	// Assert
	require.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}
