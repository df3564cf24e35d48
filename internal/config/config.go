package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Scheduler SchedulerConfig
	Notifier  NotifierConfig
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	RateLimitRPS   int `mapstructure:"rate_limit_rps"`
	RateLimitBurst int `mapstructure:"rate_limit_burst"`
}

type StorageConfig struct {
	// Backend is one of file, sqlite, redis, memory.
	Backend    string `mapstructure:"backend"`
	Dir        string `mapstructure:"dir"`
	SQLitePath string `mapstructure:"sqlite_path"`
	RedisURL   string `mapstructure:"redis_url"`
}

type SchedulerConfig struct {
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	SnoozeDelay    time.Duration `mapstructure:"snooze_delay"`
	DailyFireGuard bool          `mapstructure:"daily_fire_guard"`
}

type NotifierConfig struct {
	ToastTTL   time.Duration `mapstructure:"toast_ttl"`
	PopupTTL   time.Duration `mapstructure:"popup_ttl"`
	Permission string        `mapstructure:"permission"`
	Email      EmailConfig   `mapstructure:"email"`
}

type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetEnvPrefix("meditrack")
	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.timeout_seconds", 30)
	viper.SetDefault("server.rate_limit_rps", 50)
	viper.SetDefault("server.rate_limit_burst", 100)
	viper.SetDefault("storage.backend", "file")
	viper.SetDefault("storage.dir", "./data")
	viper.SetDefault("storage.sqlite_path", "./data/meditrack.db")
	viper.SetDefault("storage.redis_url", "redis://localhost:6379/0")
	viper.SetDefault("scheduler.poll_interval", "30s")
	viper.SetDefault("scheduler.snooze_delay", "5m")
	viper.SetDefault("scheduler.daily_fire_guard", true)
	viper.SetDefault("notifier.toast_ttl", "5s")
	viper.SetDefault("notifier.popup_ttl", "2m")
	viper.SetDefault("notifier.permission", "default")
	viper.SetDefault("notifier.email.enabled", false)
	viper.SetDefault("notifier.email.host", "localhost")
	viper.SetDefault("notifier.email.port", 587)

	// Running without a config file is fine; defaults cover everything.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
