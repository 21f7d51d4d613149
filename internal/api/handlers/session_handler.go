package handlers

import (
	"net/http"

	"github.com/adb-reso/adb-reso-go/internal/domain"
	"github.com/adb-reso/adb-reso-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SessionHandler 会话处理器
type SessionHandler struct {
	svc    service.EngineService
	pub    Publisher
	logger *logrus.Logger
}

// NewSessionHandler 创建会话处理器
func NewSessionHandler(svc service.EngineService, pub Publisher, logger *logrus.Logger) *SessionHandler {
	if pub == nil {
		pub = nopPublisher{}
	}
	return &SessionHandler{svc: svc, pub: pub, logger: logger}
}

// CreateSession POST /api/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	v := h.svc.CreateSession()
	c.JSON(http.StatusCreated, gin.H{
		"session_id": v.ID,
		"session":    v,
		"auto_apply": h.svc.AutoApply(),
	})
}

// GetSession GET /api/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	id := c.Param("id")
	v, err := h.svc.GetSession(id)
	if err != nil {
		respondError(c, h.logger, h.pub, id, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": v})
}

// ResetSession DELETE /api/sessions/:id
// 清空所有选择和输出（页面上的 Escape）
func (h *SessionHandler) ResetSession(c *gin.Context) {
	id := c.Param("id")
	v, err := h.svc.ResetSession(id)
	if err != nil {
		respondError(c, h.logger, h.pub, id, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": v})
}

// ClearOutput DELETE /api/sessions/:id/outputs/:page
func (h *SessionHandler) ClearOutput(c *gin.Context) {
	id := c.Param("id")
	page, ok := domain.ParsePage(c.Param("page"))
	if !ok {
		respondError(c, h.logger, h.pub, id, domain.NewInputError("page", c.Param("page"), domain.ErrNotFound))
		return
	}

	v, err := h.svc.ClearOutput(id, page)
	if err != nil {
		respondError(c, h.logger, h.pub, id, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": v})
}
