package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// PrometheusMetrics Prometheus 指标收集器
type PrometheusMetrics struct {
	logger *logrus.Logger

	// HTTP 请求指标
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// 业务指标
	commandsGenerated  *prometheus.CounterVec
	scriptsGenerated   *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	autoApplyEnabled   prometheus.Gauge
	activeSessions     prometheus.Gauge
}

// NewPrometheusMetrics 创建 Prometheus 指标收集器
func NewPrometheusMetrics(logger *logrus.Logger, namespace string) *PrometheusMetrics {
	if namespace == "" {
		namespace = "adb_reso"
	}

	pm := &PrometheusMetrics{
		logger: logger,

		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latencies in seconds",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"method", "path"},
		),

		commandsGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_generated_total",
				Help:      "Total number of composed command blocks",
			},
			[]string{"kind"}, // resolution, preset, dpi, catalog
		),
		scriptsGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scripts_generated_total",
				Help:      "Total number of generated shell scripts",
			},
			[]string{"method"},
		),
		validationFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_failures_total",
				Help:      "Total number of rejected requests by error kind",
			},
			[]string{"kind"},
		),
		autoApplyEnabled: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "auto_apply_enabled",
				Help:      "1 when the auto-apply toggle is on",
			},
		),
		activeSessions: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_sessions",
				Help:      "Number of live client sessions",
			},
		),
	}

	logger.Info("Prometheus metrics initialized")
	return pm
}

// HTTPMiddleware HTTP 请求监控中间件
func (pm *PrometheusMetrics) HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		pm.httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		pm.httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
	}
}

// Handler 返回 Prometheus HTTP Handler
func (pm *PrometheusMetrics) Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// RecordCommandGenerated 记录生成的命令块
func (pm *PrometheusMetrics) RecordCommandGenerated(kind string) {
	pm.commandsGenerated.WithLabelValues(kind).Inc()
}

// RecordScriptGenerated 记录生成的脚本
func (pm *PrometheusMetrics) RecordScriptGenerated(method string) {
	pm.scriptsGenerated.WithLabelValues(method).Inc()
}

// RecordValidationFailure 记录被拒绝的请求
func (pm *PrometheusMetrics) RecordValidationFailure(kind string) {
	pm.validationFailures.WithLabelValues(kind).Inc()
}

// SetAutoApply 更新自动应用开关状态
func (pm *PrometheusMetrics) SetAutoApply(on bool) {
	if on {
		pm.autoApplyEnabled.Set(1)
		return
	}
	pm.autoApplyEnabled.Set(0)
}

// SetActiveSessions 更新会话数
func (pm *PrometheusMetrics) SetActiveSessions(n int) {
	pm.activeSessions.Set(float64(n))
}
