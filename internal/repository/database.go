package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adb-reso/adb-reso-go/internal/config"
	"github.com/adb-reso/adb-reso-go/internal/domain"
	"github.com/adb-reso/adb-reso-go/internal/retry"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 初始化数据库连接，启动时数据库未就绪会重试
func InitDB(ctx context.Context, cfg *config.DatabaseConfig, log *logrus.Logger) (*gorm.DB, error) {
	dialector, err := newDialector(cfg)
	if err != nil {
		return nil, err
	}

	// 内存 sqlite 每个连接是独立的库
	maxOpen := 4
	if cfg.Path == ":memory:" {
		maxOpen = 1
	}

	rc, err := retryConfig(cfg, log)
	if err != nil {
		return nil, err
	}

	db, err := retry.DoWithResult(ctx, rc, func(ctx context.Context) (*gorm.DB, error) {
		return open(ctx, dialector, maxOpen)
	})
	if err != nil {
		return nil, err
	}

	if err := autoMigrate(db, log); err != nil {
		return nil, err
	}

	return db, nil
}

// retryConfig 连接重试按配置覆盖策略和次数
func retryConfig(cfg *config.DatabaseConfig, log *logrus.Logger) (*retry.Config, error) {
	rc := retry.DefaultConfig("database connect", log)
	strategy, err := retry.ParseStrategy(cfg.RetryStrategy)
	if err != nil {
		return nil, err
	}
	rc.Strategy = strategy
	if cfg.RetryAttempts > 0 {
		rc.MaxAttempts = cfg.RetryAttempts
	}
	return rc, nil
}

func newDialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Type {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName)
		return mysql.Open(dsn), nil
	case "sqlite", "":
		path := cfg.Path
		if path == "" {
			path = "./data/adb-reso.db"
		}
		if path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		return sqlite.Open(path), nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}
}

func open(ctx context.Context, dialector gorm.Dialector, maxOpen int) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return db, nil
}

func autoMigrate(db *gorm.DB, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	if err := db.AutoMigrate(&domain.Setting{}); err != nil {
		return fmt.Errorf("failed to migrate settings: %w", err)
	}

	log.Info("Database migrations completed")
	return nil
}
