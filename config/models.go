package config

import "time"

type AuthConfig struct {
	Secret   string        `mapstructure:"secret" validate:"required,min=16"`
	TokenTTL time.Duration `mapstructure:"token_ttl" validate:"required"`
}

type DBConfig struct {
	URL             string        `mapstructure:"url" validate:"required"`
	MaxOpenConns    int32         `mapstructure:"max_open_conns" validate:"gte=1"`
	MinIdleConns    int32         `mapstructure:"min_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	HealthTimeout   time.Duration `mapstructure:"health_timeout"`
	RunMigrations   bool          `mapstructure:"run_migrations"`
}

type RedisConfig struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	Password        string        `mapstructure:"password"`
	DB              int           `mapstructure:"db"`
	DialTimeout     time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	PoolSize        int           `mapstructure:"pool_size"`
	MinIdleConns    int           `mapstructure:"min_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

type RabbitMQConfig struct {
	URL          string   `mapstructure:"url" validate:"required"`
	ExchangeName string   `mapstructure:"exchange_name" validate:"required"`
	ExchangeType string   `mapstructure:"exchange_type" validate:"oneof=topic direct fanout"`
	QueueName    string   `mapstructure:"queue_name" validate:"required"`
	BindingKeys  []string `mapstructure:"binding_keys" validate:"min=1"`
	Prefetch     int      `mapstructure:"prefetch" validate:"gte=1"`
	WorkerCount  int      `mapstructure:"worker_count" validate:"gte=1"`
}

// CacheConfig controls the public status cache and the live stream.
type CacheConfig struct {
	StatusTTL      time.Duration `mapstructure:"status_ttl" validate:"gt=0"`
	DirectoryTTL   time.Duration `mapstructure:"directory_ttl" validate:"gt=0"`
	StreamInterval time.Duration `mapstructure:"stream_interval" validate:"required"`
}

type EventsConfig struct {
	Workers        int           `mapstructure:"workers" validate:"gte=1"`
	BufferSize     int           `mapstructure:"buffer_size" validate:"gte=1"`
	PublishTimeout time.Duration `mapstructure:"publish_timeout"`
}

type ReconcilerConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

type TimelineConfig struct {
	DefaultDays int `mapstructure:"default_days" validate:"gte=1,lte=365,ltefield=MaxDays"`
	MaxDays     int `mapstructure:"max_days" validate:"gte=1,lte=365"`
}

type Config struct {
	Env            string            `mapstructure:"env" validate:"required"`
	ServiceName    string            `mapstructure:"service_name" validate:"required"`
	Port           int               `mapstructure:"port" validate:"gte=1,lte=65535"`
	RequestTimeout time.Duration     `mapstructure:"request_timeout"`
	DB             *DBConfig         `mapstructure:"db" validate:"required"`
	Redis          *RedisConfig      `mapstructure:"redis" validate:"required"`
	RabbitMQ       *RabbitMQConfig   `mapstructure:"rabbitmq" validate:"required"`
	Auth           *AuthConfig       `mapstructure:"auth" validate:"required"`
	Cache          *CacheConfig      `mapstructure:"cache" validate:"required"`
	Events         *EventsConfig     `mapstructure:"events" validate:"required"`
	Reconciler     *ReconcilerConfig `mapstructure:"reconciler" validate:"required"`
	Metrics        *MetricsConfig    `mapstructure:"metrics" validate:"required"`
	Timeline       *TimelineConfig   `mapstructure:"timeline" validate:"required"`
}
