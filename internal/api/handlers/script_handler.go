package handlers

import (
	"fmt"
	"net/http"

	"github.com/adb-reso/adb-reso-go/internal/catalog"
	"github.com/adb-reso/adb-reso-go/internal/domain"
	"github.com/adb-reso/adb-reso-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ScriptHandler 执行方式与脚本生成
type ScriptHandler struct {
	svc    service.EngineService
	pub    Publisher
	logger *logrus.Logger
}

// NewScriptHandler 创建脚本处理器
func NewScriptHandler(svc service.EngineService, pub Publisher, logger *logrus.Logger) *ScriptHandler {
	if pub == nil {
		pub = nopPublisher{}
	}
	return &ScriptHandler{svc: svc, pub: pub, logger: logger}
}

type scriptRequest struct {
	SessionID string          `json:"session_id"`
	Method    domain.MethodID `json:"method"`
}

// ListMethods GET /api/methods
func (h *ScriptHandler) ListMethods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"methods": catalog.Methods()})
}

// SelectMethod POST /api/methods/:id/select
func (h *ScriptHandler) SelectMethod(c *gin.Context) {
	sid, err := bindSessionID(c)
	if err != nil {
		respondError(c, h.logger, h.pub, "", err)
		return
	}

	res, err := h.svc.SelectMethod(sid, domain.MethodID(c.Param("id")))
	if err != nil {
		respondError(c, h.logger, h.pub, sid, err)
		return
	}
	h.pub.Publish(res.Notification)
	c.JSON(http.StatusOK, res)
}

// GenerateScript POST /api/scripts
// method 为空时使用会话中已选择的执行方式
func (h *ScriptHandler) GenerateScript(c *gin.Context) {
	var req scriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, h.pub, "", fmt.Errorf("%w: %v", domain.ErrBadRequest, err))
		return
	}
	if req.SessionID == "" {
		respondError(c, h.logger, h.pub, "", domain.NewInputError("session_id", "", domain.ErrMissingInput))
		return
	}

	res, err := h.svc.GenerateScript(req.SessionID, req.Method)
	if err != nil {
		respondError(c, h.logger, h.pub, req.SessionID, err)
		return
	}
	h.pub.Publish(res.Notification)
	c.JSON(http.StatusOK, res)
}

// DownloadScript GET /api/scripts/:method/download?session_id=
func (h *ScriptHandler) DownloadScript(c *gin.Context) {
	sid := c.Query("session_id")
	if sid == "" {
		respondError(c, h.logger, h.pub, "", domain.NewInputError("session_id", "", domain.ErrMissingInput))
		return
	}

	res, err := h.svc.GenerateScript(sid, domain.MethodID(c.Param("method")))
	if err != nil {
		respondError(c, h.logger, h.pub, sid, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, res.FileName))
	c.Data(http.StatusOK, "text/x-shellscript; charset=utf-8", []byte(res.Script))
}
