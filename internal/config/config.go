package config

import (
	"fmt"
	"time"

	"github.com/adb-reso/adb-reso-go/internal/dpi"
	"github.com/adb-reso/adb-reso-go/internal/retry"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Session  SessionConfig  `mapstructure:"session"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Storage  StorageConfig  `mapstructure:"storage"`
	DPI      DPIConfig      `mapstructure:"dpi"`
}

type ServerConfig struct {
	Port           int     `mapstructure:"port"`
	Mode           string  `mapstructure:"mode"`             // debug, release
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`   // 每个客户端 IP，<= 0 关闭
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

type DatabaseConfig struct {
	Type     string `mapstructure:"type"` // sqlite, mysql
	Path     string `mapstructure:"path"` // sqlite 文件路径
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"db_name"`

	RetryStrategy string `mapstructure:"retry_strategy"` // fixed, linear, exponential
	RetryAttempts int    `mapstructure:"retry_attempts"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// SessionConfig 会话过期配置
type SessionConfig struct {
	TTLMinutes             int `mapstructure:"ttl_minutes"`
	JanitorIntervalSeconds int `mapstructure:"janitor_interval_seconds"`
}

// TTL 会话空闲过期时间
func (c SessionConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// JanitorInterval 清理间隔
func (c SessionConfig) JanitorInterval() time.Duration {
	return time.Duration(c.JanitorIntervalSeconds) * time.Second
}

type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// StorageConfig 持久化设置
type StorageConfig struct {
	SettingsKey string `mapstructure:"settings_key"` // 自动应用开关的键名
}

// DPIConfig 可选的分级表覆盖，为空时使用 dpi.DefaultTable
type DPIConfig struct {
	Tiers []dpi.TierInfo `mapstructure:"tiers"`
}

// Table 返回生效的分级表
func (c DPIConfig) Table() (dpi.Table, error) {
	if len(c.Tiers) == 0 {
		return dpi.DefaultTable, nil
	}
	t, err := dpi.NewTable(c.Tiers)
	if err != nil {
		return nil, fmt.Errorf("invalid dpi.tiers: %w", err)
	}
	return t, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.rate_limit_rps", 20)
	v.SetDefault("server.rate_limit_burst", 40)

	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.path", "./data/adb-reso.db")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.retry_strategy", "exponential")
	v.SetDefault("database.retry_attempts", 5)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("session.ttl_minutes", 60)
	v.SetDefault("session.janitor_interval_seconds", 60)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "adb_reso")

	v.SetDefault("storage.settings_key", "toggleState")
}

// Load 读取配置文件；path 为空时只使用默认值和环境变量
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// 环境变量覆盖（支持嵌套配置）
	v.AutomaticEnv()

	// Database
	v.BindEnv("database.type", "DB_TYPE")
	v.BindEnv("database.path", "SQLITE_PATH")
	v.BindEnv("database.host", "MYSQL_HOST")
	v.BindEnv("database.port", "MYSQL_PORT")
	v.BindEnv("database.user", "MYSQL_USER")
	v.BindEnv("database.password", "MYSQL_PASS")
	v.BindEnv("database.db_name", "MYSQL_DB")

	v.BindEnv("server.port", "PORT")
	v.BindEnv("log.level", "LOG_LEVEL")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if _, err := cfg.DPI.Table(); err != nil {
		return nil, err
	}
	if _, err := retry.ParseStrategy(cfg.Database.RetryStrategy); err != nil {
		return nil, fmt.Errorf("invalid database.retry_strategy: %w", err)
	}

	return &cfg, nil
}
