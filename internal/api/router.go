package api

import (
	"time"

	"github.com/adb-reso/adb-reso-go/internal/api/handlers"
	"github.com/adb-reso/adb-reso-go/internal/config"
	"github.com/adb-reso/adb-reso-go/internal/middleware"
	"github.com/adb-reso/adb-reso-go/internal/notify"
	"github.com/adb-reso/adb-reso-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Version 健康检查返回的版本号
const Version = "1.0.0"

func SetupRouter(cfg *config.Config, logger *logrus.Logger, svc service.EngineService, hub *notify.Hub, promMetrics *middleware.PrometheusMetrics) *gin.Engine {
	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// 全局中间件
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(logger))
	r.Use(CORSMiddleware())

	// Prometheus 监控中间件
	if promMetrics != nil {
		r.Use(promMetrics.HTTPMiddleware())
		r.GET("/metrics/prometheus", promMetrics.Handler())
	}

	var pub handlers.Publisher
	if hub != nil {
		pub = hub
		r.GET("/ws/sessions/:id", hub.HandleWebSocket)
	}

	sessionHandler := handlers.NewSessionHandler(svc, pub, logger)
	engineHandler := handlers.NewEngineHandler(svc, pub, logger)
	scriptHandler := handlers.NewScriptHandler(svc, pub, logger)
	settingsHandler := handlers.NewSettingsHandler(svc, pub, logger)

	v1 := r.Group("/api")
	if cfg.Server.RateLimitRPS > 0 {
		v1.Use(middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst, logger).Middleware())
	}
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"version": Version,
			})
		})

		// 会话
		v1.POST("/sessions", sessionHandler.CreateSession)
		v1.GET("/sessions/:id", sessionHandler.GetSession)
		v1.DELETE("/sessions/:id", sessionHandler.ResetSession)
		v1.DELETE("/sessions/:id/outputs/:page", sessionHandler.ClearOutput)

		// 自定义分辨率
		v1.POST("/resolution", engineHandler.GenerateResolution)

		// 游戏/通用预设
		v1.GET("/presets", engineHandler.ListPresets)
		v1.DELETE("/presets/selection", engineHandler.ClearPreset) // 必须在 :id 之前
		v1.POST("/presets/:id/select", engineHandler.SelectPreset)

		// DPI 计算器
		v1.POST("/dpi/calculate", engineHandler.CalculateDPI)
		v1.GET("/dpi/presets", engineHandler.ListDensityPresets)
		v1.POST("/dpi/presets/:dpi/apply", engineHandler.ApplyDensityPreset)
		v1.GET("/dpi/tiers", engineHandler.ListTiers)

		// ADB 命令参考
		v1.GET("/commands", engineHandler.ListCommands)
		v1.DELETE("/commands/selection", engineHandler.ClearCommand)
		v1.POST("/commands/:id/select", engineHandler.SelectCommand)

		// 执行方式与脚本
		v1.GET("/methods", scriptHandler.ListMethods)
		v1.POST("/methods/:id/select", scriptHandler.SelectMethod)
		v1.POST("/scripts", scriptHandler.GenerateScript)
		v1.GET("/scripts/:method/download", scriptHandler.DownloadScript)

		// 自动应用
		v1.GET("/settings/auto-apply", settingsHandler.GetAutoApply)
		v1.POST("/settings/auto-apply/toggle", settingsHandler.ToggleAutoApply)
		v1.POST("/apply", settingsHandler.Apply)
	}

	return r
}

// LoggerMiddleware 日志中间件
func LoggerMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		logger.WithFields(logrus.Fields{
			"status":  c.Writer.Status(),
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"latency": time.Since(startTime).Milliseconds(),
		}).Info("HTTP Request")
	}
}

// CORSMiddleware CORS 中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
