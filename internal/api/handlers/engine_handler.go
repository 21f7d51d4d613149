package handlers

import (
	"fmt"
	"net/http"

	"github.com/adb-reso/adb-reso-go/internal/catalog"
	"github.com/adb-reso/adb-reso-go/internal/domain"
	"github.com/adb-reso/adb-reso-go/internal/service"
	"github.com/adb-reso/adb-reso-go/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// EngineHandler 分辨率/预设/DPI/命令参考的处理器
type EngineHandler struct {
	svc    service.EngineService
	pub    Publisher
	logger *logrus.Logger
}

// NewEngineHandler 创建处理器实例
func NewEngineHandler(svc service.EngineService, pub Publisher, logger *logrus.Logger) *EngineHandler {
	if pub == nil {
		pub = nopPublisher{}
	}
	return &EngineHandler{svc: svc, pub: pub, logger: logger}
}

// GenerateResolution POST /api/resolution
// {"session_id": "...", "width": 1080, "height": 2400, "auto_dpi": true}
func (h *EngineHandler) GenerateResolution(c *gin.Context) {
	var req service.ResolutionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, h.pub, req.SessionID, fmt.Errorf("%w: %v", domain.ErrBadRequest, err))
		return
	}

	if req.SessionID == "" {
		respondError(c, h.logger, h.pub, "", domain.NewInputError("session_id", "", domain.ErrMissingInput))
		return
	}

	res, err := h.svc.GenerateResolution(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, h.pub, req.SessionID, err)
		return
	}
	h.pub.Publish(res.Notification)
	c.JSON(http.StatusOK, res)
}

// ListPresets GET /api/presets
func (h *EngineHandler) ListPresets(c *gin.Context) {
	presets := catalog.Presets()
	items := make([]gin.H, 0, len(presets))
	for _, p := range presets {
		items = append(items, gin.H{
			"preset": p,
			"tip":    catalog.PresetTip(p),
			"tier":   h.svc.Tiers().Classify(p.Density),
		})
	}
	c.JSON(http.StatusOK, gin.H{"presets": items, "total": len(items)})
}

// SelectPreset POST /api/presets/:id/select
func (h *EngineHandler) SelectPreset(c *gin.Context) {
	sid, err := bindSessionID(c)
	if err != nil {
		respondError(c, h.logger, h.pub, "", err)
		return
	}

	res, err := h.svc.SelectPreset(c.Request.Context(), sid, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, h.pub, sid, err)
		return
	}
	h.pub.Publish(res.Notification)
	c.JSON(http.StatusOK, res)
}

// ClearPreset DELETE /api/presets/selection
func (h *EngineHandler) ClearPreset(c *gin.Context) {
	h.clear(c, session.CategoryPreset)
}

// CalculateDPI POST /api/dpi/calculate
func (h *EngineHandler) CalculateDPI(c *gin.Context) {
	var req service.DPIInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, h.pub, req.SessionID, fmt.Errorf("%w: %v", domain.ErrBadRequest, err))
		return
	}

	if req.SessionID == "" {
		respondError(c, h.logger, h.pub, "", domain.NewInputError("session_id", "", domain.ErrMissingInput))
		return
	}

	res, err := h.svc.CalculateDPI(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, h.pub, req.SessionID, err)
		return
	}
	h.pub.Publish(res.Notification)
	c.JSON(http.StatusOK, res)
}

// ListDensityPresets GET /api/dpi/presets
func (h *EngineHandler) ListDensityPresets(c *gin.Context) {
	presets := catalog.DensityPresets()
	items := make([]gin.H, 0, len(presets))
	for _, p := range presets {
		items = append(items, gin.H{
			"density":     p.Density,
			"description": p.Description,
			"tier":        h.svc.Tiers().Classify(p.Density),
		})
	}
	c.JSON(http.StatusOK, gin.H{"presets": items})
}

// ListTiers GET /api/dpi/tiers
func (h *EngineHandler) ListTiers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tiers": h.svc.Tiers()})
}

// ApplyDensityPreset POST /api/dpi/presets/:dpi/apply
func (h *EngineHandler) ApplyDensityPreset(c *gin.Context) {
	sid, err := bindSessionID(c)
	if err != nil {
		respondError(c, h.logger, h.pub, "", err)
		return
	}

	res, err := h.svc.ApplyDensityPreset(c.Request.Context(), sid, c.Param("dpi"))
	if err != nil {
		respondError(c, h.logger, h.pub, sid, err)
		return
	}
	h.pub.Publish(res.Notification)
	c.JSON(http.StatusOK, res)
}

// ListCommands GET /api/commands
func (h *EngineHandler) ListCommands(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"groups": catalog.CommandGroups()})
}

// SelectCommand POST /api/commands/:id/select
func (h *EngineHandler) SelectCommand(c *gin.Context) {
	sid, err := bindSessionID(c)
	if err != nil {
		respondError(c, h.logger, h.pub, "", err)
		return
	}

	res, err := h.svc.SelectCommand(c.Request.Context(), sid, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, h.pub, sid, err)
		return
	}
	h.pub.Publish(res.Notification)
	c.JSON(http.StatusOK, res)
}

// ClearCommand DELETE /api/commands/selection
func (h *EngineHandler) ClearCommand(c *gin.Context) {
	h.clear(c, session.CategoryCommand)
}

func (h *EngineHandler) clear(c *gin.Context, category session.Category) {
	sid, err := bindSessionID(c)
	if err != nil {
		respondError(c, h.logger, h.pub, "", err)
		return
	}

	v, err := h.svc.ClearSelection(sid, category)
	if err != nil {
		respondError(c, h.logger, h.pub, sid, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": v})
}
