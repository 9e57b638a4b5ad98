package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

var (
	ErrInvalidFeePercent = errors.New("fee percent must be in 0..100")
	ErrUnknownStorage    = errors.New("unknown storage")
	ErrMissingDSN        = errors.New("postgres storage requires PG_DSN")
	ErrMissingPlatform   = errors.New("platform account is required")
	ErrMissingTelegram   = errors.New("telegram notifications require bot token and chat id")
	ErrMissingRedis      = errors.New("redis notifications require REDIS_ADDRESS")
)

type Config struct {
	App      App
	Log      Log
	Engine   Engine
	Postgres Postgres
	Redis    Redis
	Notify   Notify
}

type App struct {
	Name                 string        `env:"APP_NAME" envDefault:"dutch-market"`
	Version              string        `env:"APP_VERSION" envDefault:"dev"`
	ListenAddress        string        `env:"APP_LISTEN_ADDRESS" envDefault:":8080"`
	ProbeListenAddress   string        `env:"APP_PROBE_LISTEN_ADDRESS" envDefault:":8081"`
	MetricsListenAddress string        `env:"APP_METRICS_LISTEN_ADDRESS" envDefault:":9090"`
	ShutdownTimeout      time.Duration `env:"APP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty bool   `env:"LOG_PRETTY" envDefault:"false"`
	// HTTPBodies включает журналирование тел HTTP запросов и ответов.
	HTTPBodies     bool `env:"LOG_HTTP_BODIES" envDefault:"false"`
	FieldMaxLength int  `env:"LOG_FIELD_MAX_LENGTH" envDefault:"4096"`
}

type Engine struct {
	FeePercent      uint64 `env:"ENGINE_FEE_PERCENT" envDefault:"10"`
	PlatformAccount string `env:"ENGINE_PLATFORM_ACCOUNT" envDefault:"platform"`
	Storage         string `env:"ENGINE_STORAGE" envDefault:"memory"`
	// Migrate применяет схему при старте, если выбран postgres.
	Migrate bool `env:"ENGINE_MIGRATE" envDefault:"true"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	config.Engine.Storage = strings.ToLower(strings.TrimSpace(config.Engine.Storage))
	config.Notify.TelegramToken = correctNewlines(config.Notify.TelegramToken)

	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("config.Validate: %w", err)
	}

	return config, nil
}

func (c Config) Validate() error {
	if c.Engine.FeePercent > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidFeePercent, c.Engine.FeePercent)
	}

	if strings.TrimSpace(c.Engine.PlatformAccount) == "" {
		return ErrMissingPlatform
	}

	switch c.Engine.Storage {
	case StorageMemory:
	case StoragePostgres:
		if c.Postgres.DSN == "" {
			return ErrMissingDSN
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorage, c.Engine.Storage)
	}

	if (c.Notify.RedisEnabled || c.Notify.QueueEnabled) && c.Redis.Address == "" {
		return ErrMissingRedis
	}

	if c.Notify.QueueEnabled && (c.Notify.TelegramToken == "" || c.Notify.TelegramChatID == 0) {
		return ErrMissingTelegram
	}

	return nil
}

func correctNewlines(s string) string {
	return strings.NewReplacer(`"`, "", `\n`, "\n").Replace(s)
}
