package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// setupTestMetrics 创建测试用的 Prometheus 指标收集器
func setupTestMetrics(t *testing.T) *PrometheusMetrics {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	// 使用唯一的 namespace 避免重复注册
	namespace := "test_" + t.Name() + "_" + time.Now().Format("20060102150405999999999")
	return NewPrometheusMetrics(logger, namespace)
}

// TestHTTPMiddleware 测试 HTTP 中间件
func TestHTTPMiddleware(t *testing.T) {
	pm := setupTestMetrics(t)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(pm.HTTPMiddleware())
	router.GET("/api/presets", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"presets": []string{}})
	})

	req := httptest.NewRequest("GET", "/api/presets", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, testutil.CollectAndCount(pm.httpRequestsTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(pm.httpRequestsTotal.WithLabelValues("GET", "/api/presets", "200")))
}

// TestHTTPMiddleware_UnmatchedPath 未匹配路由归为一个标签
func TestHTTPMiddleware_UnmatchedPath(t *testing.T) {
	pm := setupTestMetrics(t)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(pm.HTTPMiddleware())

	for _, p := range []string{"/a", "/b"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", p, nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(pm.httpRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestRecordEngineMetrics(t *testing.T) {
	pm := setupTestMetrics(t)

	pm.RecordCommandGenerated("resolution")
	pm.RecordCommandGenerated("resolution")
	pm.RecordCommandGenerated("preset")
	pm.RecordScriptGenerated("termux")
	pm.RecordValidationFailure("non_numeric_input")

	assert.Equal(t, float64(2), testutil.ToFloat64(pm.commandsGenerated.WithLabelValues("resolution")))
	assert.Equal(t, 2, testutil.CollectAndCount(pm.commandsGenerated))
	assert.Equal(t, float64(1), testutil.ToFloat64(pm.scriptsGenerated.WithLabelValues("termux")))
	assert.Equal(t, float64(1), testutil.ToFloat64(pm.validationFailures.WithLabelValues("non_numeric_input")))
}

func TestGauges(t *testing.T) {
	pm := setupTestMetrics(t)

	pm.SetAutoApply(true)
	assert.Equal(t, float64(1), testutil.ToFloat64(pm.autoApplyEnabled))
	pm.SetAutoApply(false)
	assert.Equal(t, float64(0), testutil.ToFloat64(pm.autoApplyEnabled))

	pm.SetActiveSessions(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(pm.activeSessions))
}

// TestMetricsHandler 测试指标导出
func TestMetricsHandler(t *testing.T) {
	pm := setupTestMetrics(t)
	pm.RecordScriptGenerated("ladb")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/metrics/prometheus", pm.Handler())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics/prometheus", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "scripts_generated_total")
}
