package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Address)
	assert.Equal(t, time.Second, cfg.Interval)
	assert.Equal(t, 60, cfg.HistoryCapacity)
	assert.Equal(t, "/", cfg.DiskMount)
	assert.Equal(t, 10, cfg.TopProcesses)
	assert.Equal(t, 30, cfg.ProcessNameMax)
	assert.Equal(t, ThermalAuto, cfg.ThermalSource)
	assert.Equal(t, 2*time.Second, cfg.ThermalTimeout)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_ADDR", ":9100")
	t.Setenv("SCRAPE_INTERVAL", "250ms")
	t.Setenv("HISTORY_CAPACITY", "120")
	t.Setenv("THERMAL_SOURCE", "hwmon")
	t.Setenv("ALLOWED_ORIGINS", "http://a.local, http://b.local ,")
	t.Setenv("LOG_FORMAT", "JSON")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.Address)
	assert.Equal(t, 250*time.Millisecond, cfg.Interval)
	assert.Equal(t, 120, cfg.HistoryCapacity)
	assert.Equal(t, ThermalHwmon, cfg.ThermalSource)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.AllowedOrigins)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_IgnoresUnrelatedModeVariable(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MODE", "production")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ModeServe, cfg.Mode)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "pulse.yaml")
	require.NoError(t, os.WriteFile(path, []byte("disk_mount: /data\ntop_processes: 5\n"), 0o600))
	t.Setenv("TOP_PROCESSES", "7")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data", cfg.DiskMount)
	assert.Equal(t, 7, cfg.TopProcesses, "environment wins over the file")
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidInterval(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SCRAPE_INTERVAL", "0s")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Interval")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.ThermalSource = "lava-lamp"
	cfg.HistoryCapacity = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ThermalSource")
	assert.Contains(t, err.Error(), "HistoryCapacity")
}

func TestOriginAllowed(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.OriginAllowed("http://a.local"))

	cfg.AllowedOrigins = []string{"http://a.local"}
	assert.True(t, cfg.OriginAllowed("http://a.local"))
	assert.False(t, cfg.OriginAllowed("http://b.local"))

	cfg.AllowedOrigins = []string{"*"}
	assert.True(t, cfg.OriginAllowed("http://b.local"))
}
