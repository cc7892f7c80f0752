package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Redis    RedisConfig
	Admin    AdminConfig
	Password PasswordConfig
	Notify   NotifyConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"RIVAYA_APP_ENV" default:"development"`
	Port         string `envconfig:"RIVAYA_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"RIVAYA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RIVAYA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig selects the KV backend. "memory" keeps everything in
// process and is meant for local runs and tests.
type StoreConfig struct {
	Backend string `envconfig:"RIVAYA_STORE_BACKEND" default:"redis"`
}

func (s StoreConfig) validate() error {
	switch strings.ToLower(s.Backend) {
	case "redis", "memory":
		return nil
	}
	return fmt.Errorf("unsupported store backend %q", s.Backend)
}

func (s StoreConfig) UseMemory() bool {
	return strings.EqualFold(s.Backend, "memory")
}

type RedisConfig struct {
	URL          string        `envconfig:"RIVAYA_REDIS_URL"`
	Address      string        `envconfig:"RIVAYA_REDIS_ADDR"`
	Password     string        `envconfig:"RIVAYA_REDIS_PASSWORD"`
	DB           int           `envconfig:"RIVAYA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RIVAYA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RIVAYA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RIVAYA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RIVAYA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RIVAYA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// AdminConfig seeds the stored admin credential on first boot. When
// PasswordHash is set it takes precedence over Password and the login
// check verifies against the Argon2id hash instead of plain equality.
type AdminConfig struct {
	Username     string `envconfig:"RIVAYA_ADMIN_USERNAME" default:"admin"`
	Password     string `envconfig:"RIVAYA_ADMIN_PASSWORD" default:"admin123"`
	PasswordHash string `envconfig:"RIVAYA_ADMIN_PASSWORD_HASH"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"RIVAYA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"RIVAYA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"RIVAYA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"RIVAYA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"RIVAYA_ARGON_KEY_LEN" default:"32"`
}

type NotifyConfig struct {
	BaseURL string        `envconfig:"RIVAYA_NOTIFY_BASE_URL" default:"https://api.callmebot.com"`
	Timeout time.Duration `envconfig:"RIVAYA_NOTIFY_TIMEOUT" default:"10s"`
}
