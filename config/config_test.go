package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/logger"
)

func init() {
	logger.IsTest = true
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("AUTH_DEFAULT_ADMIN_PASSWORD", "bootstrap-pass")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "data", cfg.Storage.DataDir)
	assert.Equal(t, "users.json", cfg.Storage.UsersFile)
	assert.Equal(t, "travellers.json", cfg.Storage.TravellersFile)
	assert.Equal(t, "trips.json", cfg.Storage.TripsFile)
	assert.Equal(t, "invoices.json", cfg.Storage.InvoicesFile)
	assert.Equal(t, "admin", cfg.Auth.DefaultAdminUsername)
	assert.False(t, cfg.Auth.GenericLoginErrors)
	assert.Equal(t, "reports", cfg.Reports.OutputDir)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("AUTH_DEFAULT_ADMIN_PASSWORD", "bootstrap-pass")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DATA_DIR", "/var/lib/trips")
	t.Setenv("AUTH_GENERIC_LOGIN_ERRORS", "true")
	t.Setenv("REPORTS_OUTPUT_DIR", "/tmp/reports")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "/var/lib/trips", cfg.Storage.DataDir)
	assert.True(t, cfg.Auth.GenericLoginErrors)
	assert.Equal(t, "/tmp/reports", cfg.Reports.OutputDir)
}

func TestLoadConfigRequiresAdminPassword(t *testing.T) {
	t.Setenv("AUTH_DEFAULT_ADMIN_PASSWORD", "")

	_, err := LoadConfig()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "default admin password is required")
}

func TestLoadConfigRejectsShortAdminPassword(t *testing.T) {
	t.Setenv("AUTH_DEFAULT_ADMIN_PASSWORD", "short")

	_, err := LoadConfig()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 8 characters")
}
