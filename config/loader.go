package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const defaultConfigPath = "env.yaml"

// ResolvePath returns CONFIG_PATH when set, the given fallback otherwise.
func ResolvePath(fallback string) string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	if fallback == "" {
		return defaultConfigPath
	}
	return fallback
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// default first
	setDefaults(v)

	// File Config
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Env Config
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read File
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Validate
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("service_name", "statuspage-api")
	v.SetDefault("port", 8080)
	v.SetDefault("request_timeout", "30s")

	v.SetDefault("auth.token_ttl", "30m")

	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("redis.write_timeout", "3s")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 5)
	v.SetDefault("redis.conn_max_lifetime", "2m")
	v.SetDefault("redis.conn_max_idle_time", "30s")

	v.SetDefault("db.max_open_conns", 50)
	v.SetDefault("db.min_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "1h")
	v.SetDefault("db.conn_max_idle_time", "30m")
	v.SetDefault("db.health_timeout", "5s")
	v.SetDefault("db.run_migrations", true)

	v.SetDefault("rabbitmq.exchange_name", "statuspage.events")
	v.SetDefault("rabbitmq.exchange_type", "topic")
	v.SetDefault("rabbitmq.queue_name", "statuspage.cache-invalidation")
	v.SetDefault("rabbitmq.binding_keys", []string{"incident.*", "service.*", "settings.*", "organization.*"})
	v.SetDefault("rabbitmq.prefetch", 20)
	v.SetDefault("rabbitmq.worker_count", 4)

	v.SetDefault("cache.status_ttl", "60s")
	v.SetDefault("cache.directory_ttl", "2m")
	v.SetDefault("cache.stream_interval", "30s")

	v.SetDefault("events.workers", 4)
	v.SetDefault("events.buffer_size", 256)
	v.SetDefault("events.publish_timeout", "5s")

	v.SetDefault("reconciler.enabled", true)
	v.SetDefault("reconciler.interval", "1m")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.addr", ":9090")

	v.SetDefault("timeline.default_days", 30)
	v.SetDefault("timeline.max_days", 365)
}

func validateConfig(cfg *Config) error {

	validate := validator.New()

	if err := validate.Struct(cfg); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return formatValidationErrors(ve)
		}
		return err
	}
	return nil
}

func formatValidationErrors(ve validator.ValidationErrors) error {
	var sb strings.Builder
	sb.WriteString("config validation failed:\n")

	for _, fe := range ve {
		fmt.Fprintf(&sb, "- field '%s' failed on '%s'\n", fe.Namespace(), fe.Tag())
	}
	return errors.New(sb.String())
}
