package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Environment string
	Port        string

	DatabaseDriver string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	Timezone  string
	JWTSecret string

	CacheDriver string
	RedisAddr   string

	LokiURL      string
	OTLPEndpoint string
	MetricsPort  string

	EnforceHTTPS bool

	RateLimitEnabled bool
	RateLimitConfigs map[string]RateLimitConfig

	CacheEnabled bool
	CacheConfigs map[string]CacheConfig
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type CacheConfig struct {
	TTL     time.Duration
	Enabled bool
}

// LoadConfig reads config.yaml when present and lets environment variables
// override every key.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()

	v.SetDefault("environment", "development")
	v.SetDefault("port", "8080")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "ziluri.db")
	v.SetDefault("database.url", "")
	v.SetDefault("database.migrations_path", "db/migrations")
	v.SetDefault("timezone", "Local")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("cache.driver", "memory")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("loki.url", "http://localhost:3100")
	v.SetDefault("otlp.endpoint", "localhost:4317")
	v.SetDefault("metrics.port", "9091")
	v.SetDefault("enforce_https", false)
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("cache.enabled", true)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && path != "" {
			return nil, err
		}
	}

	cfg := &AppConfig{
		Environment:      v.GetString("environment"),
		Port:             v.GetString("port"),
		DatabaseDriver:   v.GetString("database.driver"),
		DatabasePath:     v.GetString("database.path"),
		DatabaseURL:      v.GetString("database.url"),
		MigrationsPath:   v.GetString("database.migrations_path"),
		Timezone:         v.GetString("timezone"),
		JWTSecret:        v.GetString("jwt_secret"),
		CacheDriver:      v.GetString("cache.driver"),
		RedisAddr:        v.GetString("redis.addr"),
		LokiURL:          v.GetString("loki.url"),
		OTLPEndpoint:     v.GetString("otlp.endpoint"),
		MetricsPort:      v.GetString("metrics.port"),
		EnforceHTTPS:     v.GetBool("enforce_https"),
		RateLimitEnabled: v.GetBool("rate_limit.enabled"),
		CacheEnabled:     v.GetBool("cache.enabled"),
	}

	cfg.RateLimitConfigs = defaultRateLimits()
	cfg.CacheConfigs = defaultCacheConfigs()

	return cfg, nil
}

func GetDefaultConfig() *AppConfig {
	cfg, _ := LoadConfig("")
	return cfg
}

func defaultRateLimits() map[string]RateLimitConfig {
	return map[string]RateLimitConfig{
		"/session": {
			Requests: 10,
			Window:   time.Minute,
		},
		"/todos": {
			Requests: 100,
			Window:   time.Minute,
		},
		"/memos": {
			Requests: 100,
			Window:   time.Minute,
		},
	}
}

func defaultCacheConfigs() map[string]CacheConfig {
	return map[string]CacheConfig{
		"/calendar/month": {
			TTL:     3 * time.Second,
			Enabled: true,
		},
		"/calendar/week": {
			TTL:     3 * time.Second,
			Enabled: true,
		},
		"default": {
			TTL:     1 * time.Second,
			Enabled: true,
		},
	}
}
