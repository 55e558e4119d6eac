package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/env"
)

type Config struct {
	Primary  Primary        `koanf:"primary"`
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Agent    AgentConfig    `koanf:"agent"`
	Upstream UpstreamConfig `koanf:"upstream"`
	Cache    CacheConfig    `koanf:"cache"`
	Sync     SyncConfig     `koanf:"sync"`
	App      AppConfig      `koanf:"app"`
	Logger   LoggerConfig   `koanf:"logger"`
}

// AppConfig is the public client configuration served on /api/config.
type AppConfig struct {
	ID           string `koanf:"id"`
	Announcement string `koanf:"announcement"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"required"`
	AdminToken   string        `koanf:"admin_token"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"required"`
}

// AgentConfig configures the offline edge agent that fronts kiosk devices.
type AgentConfig struct {
	Port         string `koanf:"port" validate:"required"`
	DataDir      string `koanf:"data_dir" validate:"required"`
	CacheVersion string `koanf:"cache_version"`
}

type UpstreamConfig struct {
	BaseURL     string        `koanf:"base_url" validate:"required"`
	ConnTimeout time.Duration `koanf:"conn_timeout"`
}

type CacheConfig struct {
	APITTL   time.Duration `koanf:"api_ttl"`
	DedupTTL time.Duration `koanf:"dedup_ttl"`
}

type SyncConfig struct {
	Interval      time.Duration `koanf:"interval"`
	ProbeInterval time.Duration `koanf:"probe_interval"`
}

type LoggerConfig struct {
	Level string `koanf:"level"`
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	err := k.Load(env.Provider("TEMPTRACKER_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "TEMPTRACKER_")),
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

	mainConfig.applyDefaults()

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

func (c *Config) applyDefaults() {
	if c.Upstream.ConnTimeout == 0 {
		c.Upstream.ConnTimeout = 10 * time.Second
	}
	if c.Cache.APITTL == 0 {
		c.Cache.APITTL = time.Hour
	}
	if c.Cache.DedupTTL == 0 {
		c.Cache.DedupTTL = 30 * time.Second
	}
	if c.Sync.Interval == 0 {
		c.Sync.Interval = time.Minute
	}
	if c.Sync.ProbeInterval == 0 {
		c.Sync.ProbeInterval = 15 * time.Second
	}
	if c.Agent.CacheVersion == "" {
		c.Agent.CacheVersion = "v1"
	}
}
