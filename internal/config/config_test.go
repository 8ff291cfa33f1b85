package config_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/config"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "ledger", cfg.Oracles.Source)
	assert.Equal(t, 20, cfg.Oracles.Offset)
	assert.Equal(t, 20, cfg.Oracles.Count)
	assert.Equal(t, "1000000000000000000", cfg.Oracles.Stake)
	assert.Equal(t, 4, cfg.Dispatch.MaxInFlight)
	assert.Equal(t, 15*time.Second, cfg.Dispatch.SubmitTimeout)
	assert.Equal(t, config.DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, 3, cfg.Retry.MaxRetries)
	assert.Equal(t, time.Second, cfg.Retry.BaseDelay)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("COORDINATOR_LEDGER__BASE_URL", "http://ledger.internal:9000")
	t.Setenv("COORDINATOR_LEDGER__FROM_OFFSET", "42")
	t.Setenv("COORDINATOR_DISPATCH__MAX_IN_FLIGHT", "8")
	t.Setenv("COORDINATOR_DISPATCH__SUBMIT_TIMEOUT", "3s")
	t.Setenv("COORDINATOR_STORAGE__DRIVER", "memory")
	t.Setenv("COORDINATOR_LOGGER__FORMAT", "json")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://ledger.internal:9000", cfg.Ledger.BaseURL)
	assert.Equal(t, uint64(42), cfg.Ledger.FromOffset)
	assert.Equal(t, 8, cfg.Dispatch.MaxInFlight)
	assert.Equal(t, 3*time.Second, cfg.Dispatch.SubmitTimeout)
	assert.Equal(t, config.DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown driver", "COORDINATOR_STORAGE__DRIVER", "mongo"},
		{"zero in flight", "COORDINATOR_DISPATCH__MAX_IN_FLIGHT", "0"},
		{"bad stake", "COORDINATOR_ORACLES__STAKE", "one ether"},
		{"bad source", "COORDINATOR_ORACLES__SOURCE", "vault"},
		{"file source without path", "COORDINATOR_ORACLES__SOURCE", "file"},
		{"bad log format", "COORDINATOR_LOGGER__FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := config.LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoggerConfig_NewLoggerTo(t *testing.T) {
	var buf bytes.Buffer
	logger := config.LoggerConfig{Level: "warn", Format: "json"}.NewLoggerTo(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "oracle", "0xabc")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"oracle":"0xabc"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, config.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, config.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, config.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, config.ParseLevel(""))
}

func TestLoadIdentityPool(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.yaml")
	content := "identities:\n  - \"0xF17F52151EBEF6C7334FAD080C5704D77216B732\"\n  - \"\"\n  - \"0x627306090abab3a6e1400e9345bc60c78a8bef57\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	addrs, err := config.LoadIdentityPool(path)
	require.NoError(t, err)

	assert.Equal(t, []domain.Address{
		"0xf17f52151ebef6c7334fad080c5704d77216b732",
		"0x627306090abab3a6e1400e9345bc60c78a8bef57",
	}, addrs)
}

func TestLoadIdentityPool_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := config.LoadIdentityPool(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("identities: []\n"), 0o600))
	_, err = config.LoadIdentityPool(empty)
	assert.Error(t, err)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("identities: [\n"), 0o600))
	_, err = config.LoadIdentityPool(broken)
	assert.Error(t, err)
}
