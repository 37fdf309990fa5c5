package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	App     AppConfig     `yaml:"app"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"             env:"HOST"             env-default:"127.0.0.1"`
	Port            int           `yaml:"port"             env:"PORT"             env-default:"8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	BodyLimitBytes  int           `yaml:"body_limit_bytes" env:"BODY_LIMIT_BYTES" env-default:"4194304"`
}

type StorageConfig struct {
	DBPath string `yaml:"db_path" env:"DB_PATH" env-default:"data/herflow.db"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
}

// AppConfig holds per-device defaults.
type AppConfig struct {
	TimeZone     string `yaml:"time_zone"     env:"TZ"            env-default:"UTC"`
	DefaultTheme string `yaml:"default_theme" env:"DEFAULT_THEME" env-default:"modern"`
}
