package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adb-reso/adb-reso-go/internal/api"
	"github.com/adb-reso/adb-reso-go/internal/config"
	"github.com/adb-reso/adb-reso-go/internal/middleware"
	"github.com/adb-reso/adb-reso-go/internal/notify"
	"github.com/adb-reso/adb-reso-go/internal/repository"
	"github.com/adb-reso/adb-reso-go/internal/service"
	"github.com/adb-reso/adb-reso-go/internal/session"
	"github.com/sirupsen/logrus"
)

var (
	Version   = "1.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// 1. 打印版本信息
	fmt.Printf("ADB Resolution Changer - Go Version\n")
	fmt.Printf("Version: %s\n", Version)
	fmt.Printf("Build Time: %s\n", BuildTime)
	fmt.Printf("Git Commit: %s\n\n", GitCommit)

	// 2. 加载配置
	configPath := "./configs/config.yaml"
	if len(os.Args) > 1 && os.Args[1] == "--config" && len(os.Args) > 2 {
		configPath = os.Args[2]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 3. 初始化日志
	logger := config.InitLogger(&cfg.Log)
	logger.Infof("Starting ADB Resolution Changer %s", Version)
	logger.Infof("Config loaded from: %s", configPath)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 4. 初始化数据库（只保存自动应用开关）
	db, err := repository.InitDB(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Fatalf("Failed to init database: %v", err)
	}
	logger.WithField("type", cfg.Database.Type).Info("Database connected successfully")

	settingRepo := repository.NewSettingRepository(db, cfg.Storage.SettingsKey)

	// 5. Prometheus 指标
	var promMetrics *middleware.PrometheusMetrics
	var metrics service.Metrics
	if cfg.Metrics.Enabled {
		promMetrics = middleware.NewPrometheusMetrics(logger, cfg.Metrics.Namespace)
		metrics = promMetrics
		logger.Info("Prometheus metrics enabled at /metrics/prometheus")
	}

	// 6. 会话存储与引擎服务
	tiers, err := cfg.DPI.Table()
	if err != nil {
		logger.Fatalf("Invalid DPI tiers: %v", err)
	}

	store := session.NewStore(cfg.Session.TTL(), logger)
	svc := service.NewEngineService(store, settingRepo, metrics, tiers, logger)
	if err := svc.LoadSettings(ctx); err != nil {
		logger.WithError(err).Warn("Failed to load settings, auto apply starts disabled")
	}

	// 7. 会话过期清理
	var onSweep func(int)
	if promMetrics != nil {
		onSweep = promMetrics.SetActiveSessions
	}
	go store.StartJanitor(ctx, cfg.Session.JanitorInterval(), onSweep)
	logger.WithFields(logrus.Fields{
		"ttl":      cfg.Session.TTL().String(),
		"interval": cfg.Session.JanitorInterval().String(),
	}).Info("Session janitor started")

	// 8. WebSocket 通知
	hub := notify.NewHub(logger)
	go hub.Run(ctx)

	// 9. 配置热更新
	if watcher, err := config.NewWatcher(configPath, logger); err != nil {
		logger.WithError(err).Warn("Config watcher disabled")
	} else {
		watcher.OnReload(func(next *config.Config) {
			store.SetTTL(next.Session.TTL())
			logger.WithField("ttl", next.Session.TTL().String()).Info("Session TTL reloaded")
		})
		go watcher.Run(ctx)
	}

	// 10. 设置 HTTP Server
	router := api.SetupRouter(cfg, logger, svc, hub, promMetrics)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 11. 启动 HTTP Server
	go func() {
		logger.Infof("HTTP server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("HTTP server error: %v", err)
		}
	}()

	// 12. 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully...")

	// 13. 优雅关闭 (30秒超时)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("HTTP server shutdown error: %v", err)
	}

	// 停止 janitor、hub 和 watcher
	stop()

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Info("Server stopped")
}
