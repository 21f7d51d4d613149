package handlers

import (
	"fmt"
	"net/http"

	"github.com/adb-reso/adb-reso-go/internal/domain"
	"github.com/adb-reso/adb-reso-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SettingsHandler 自动应用开关和一键应用
type SettingsHandler struct {
	svc    service.EngineService
	pub    Publisher
	logger *logrus.Logger
}

// NewSettingsHandler 创建处理器实例
func NewSettingsHandler(svc service.EngineService, pub Publisher, logger *logrus.Logger) *SettingsHandler {
	if pub == nil {
		pub = nopPublisher{}
	}
	return &SettingsHandler{svc: svc, pub: pub, logger: logger}
}

type pageRequest struct {
	SessionID string `json:"session_id"`
	Page      string `json:"page"`
}

func (r pageRequest) page() (domain.Page, error) {
	if r.Page == "" {
		return "", nil
	}
	p, ok := domain.ParsePage(r.Page)
	if !ok {
		return "", domain.NewInputError("page", r.Page, domain.ErrNotFound)
	}
	return p, nil
}

// GetAutoApply GET /api/settings/auto-apply
func (h *SettingsHandler) GetAutoApply(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"enabled": h.svc.AutoApply()})
}

// ToggleAutoApply POST /api/settings/auto-apply/toggle
// 打开开关时如果给出 page，会立即为该页生成 ApplyPlan
func (h *SettingsHandler) ToggleAutoApply(c *gin.Context) {
	var req pageRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, h.logger, h.pub, "", fmt.Errorf("%w: %v", domain.ErrBadRequest, err))
			return
		}
	}
	page, err := req.page()
	if err != nil {
		respondError(c, h.logger, h.pub, req.SessionID, err)
		return
	}

	res, err := h.svc.ToggleAutoApply(c.Request.Context(), req.SessionID, page)
	if err != nil {
		respondError(c, h.logger, h.pub, req.SessionID, err)
		return
	}
	h.pub.Publish(res.Notification)
	c.JSON(http.StatusOK, res)
}

// Apply POST /api/apply
func (h *SettingsHandler) Apply(c *gin.Context) {
	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, h.pub, "", fmt.Errorf("%w: %v", domain.ErrBadRequest, err))
		return
	}
	if req.SessionID == "" {
		respondError(c, h.logger, h.pub, "", domain.NewInputError("session_id", "", domain.ErrMissingInput))
		return
	}
	page, err := req.page()
	if err == nil && page == "" {
		err = domain.NewInputError("page", "", domain.ErrMissingInput)
	}
	if err != nil {
		respondError(c, h.logger, h.pub, req.SessionID, err)
		return
	}

	plan, err := h.svc.Apply(c.Request.Context(), req.SessionID, page)
	if err != nil {
		respondError(c, h.logger, h.pub, req.SessionID, err)
		return
	}
	h.pub.Publish(plan.Notification)
	c.JSON(http.StatusOK, plan)
}
