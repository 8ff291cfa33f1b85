package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

const envPrefix = "COORDINATOR_"

type Config struct {
	Primary  Primary        `koanf:"primary"`
	Server   ServerConfig   `koanf:"server"`
	Ledger   LedgerConfig   `koanf:"ledger"`
	Retry    RetryConfig    `koanf:"retry"`
	Oracles  OraclesConfig  `koanf:"oracles"`
	Dispatch DispatchConfig `koanf:"dispatch"`
	Storage  StorageConfig  `koanf:"storage"`
	Database DatabaseConfig `koanf:"database"`
	Logger   LoggerConfig   `koanf:"logger"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"required"`
}

// LedgerConfig points at the ledger gateway and tunes the event stream.
type LedgerConfig struct {
	BaseURL     string        `koanf:"base_url" validate:"required,url"`
	ConnTimeout time.Duration `koanf:"conn_timeout" validate:"required"`
	// FromOffset is where the event stream starts when no checkpoint exists.
	FromOffset    uint64        `koanf:"from_offset"`
	PollLimit     int           `koanf:"poll_limit" validate:"min=1"`
	PollInterval  time.Duration `koanf:"poll_interval" validate:"required"`
	ReconnectBase time.Duration `koanf:"reconnect_base" validate:"required"`
	ReconnectMax  time.Duration `koanf:"reconnect_max" validate:"required"`
}

type RetryConfig struct {
	BaseDelay  time.Duration `koanf:"base_delay"`
	MaxRetries int           `koanf:"max_retries" validate:"min=1"`
}

type OraclesConfig struct {
	Source              string `koanf:"source" validate:"oneof=ledger file"`
	Offset              int    `koanf:"offset" validate:"min=0"`
	Count               int    `koanf:"count" validate:"min=1"`
	PoolFile            string `koanf:"pool_file"`
	Stake               string `koanf:"stake" validate:"required,numeric"`
	RegisterConcurrency int    `koanf:"register_concurrency" validate:"min=1"`
}

type DispatchConfig struct {
	MaxInFlight int `koanf:"max_in_flight" validate:"min=1"`
	// SubmitRate is submissions per second across all oracles; 0 disables
	// throttling.
	SubmitRate    float64       `koanf:"submit_rate" validate:"min=0"`
	SubmitBurst   int           `koanf:"submit_burst" validate:"min=1"`
	SubmitTimeout time.Duration `koanf:"submit_timeout" validate:"required"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type StorageConfig struct {
	Driver     string `koanf:"driver" validate:"oneof=postgres sqlite memory"`
	SQLitePath string `koanf:"sqlite_path"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	User            string        `koanf:"user"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name"`
	SSLMode         string        `koanf:"ssl_mode"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

type LoggerConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"primary.env": "development",

		"server.port":          "8080",
		"server.read_timeout":  "15s",
		"server.write_timeout": "15s",
		"server.idle_timeout":  "60s",

		"ledger.base_url":       "http://localhost:3000",
		"ledger.conn_timeout":   "10s",
		"ledger.from_offset":    0,
		"ledger.poll_limit":     100,
		"ledger.poll_interval":  "1s",
		"ledger.reconnect_base": "500ms",
		"ledger.reconnect_max":  "30s",

		"retry.base_delay":  "1s",
		"retry.max_retries": 3,

		"oracles.source":               "ledger",
		"oracles.offset":               20,
		"oracles.count":                20,
		"oracles.stake":                "1000000000000000000",
		"oracles.register_concurrency": 4,

		"dispatch.max_in_flight":  4,
		"dispatch.submit_rate":    50,
		"dispatch.submit_burst":   10,
		"dispatch.submit_timeout": "15s",

		"storage.driver":      DriverSQLite,
		"storage.sqlite_path": "coordinator.db",

		"database.host":               "localhost",
		"database.port":               5432,
		"database.user":               "postgres",
		"database.name":               "coordinator",
		"database.ssl_mode":           "disable",
		"database.max_open_conns":     10,
		"database.max_idle_conns":     2,
		"database.conn_max_lifetime":  "1h",
		"database.conn_max_idle_time": "10m",

		"logger.level":  "info",
		"logger.format": "text",
	}
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		logger.Error("failed to load default config", "error", err)
		return nil, err
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	if err := mainConfig.Validate(); err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

// Validate checks struct tags and the rules that span sections.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.Oracles.Source == "file" && c.Oracles.PoolFile == "" {
		return fmt.Errorf("oracles.pool_file is required when oracles.source is file")
	}

	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.Name == "" || c.Database.User == "" {
			return fmt.Errorf("database host, name and user are required for the postgres driver")
		}
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("storage.sqlite_path is required for the sqlite driver")
		}
	}

	return nil
}
