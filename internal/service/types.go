package service

import (
	"context"

	"github.com/adb-reso/adb-reso-go/internal/dpi"
	"github.com/adb-reso/adb-reso-go/internal/domain"
	"github.com/adb-reso/adb-reso-go/internal/session"
	"github.com/adb-reso/adb-reso-go/internal/validation"
)

// SettingRepository 自动应用开关的存储
type SettingRepository interface {
	AutoApply(ctx context.Context) (bool, error)
	SetAutoApply(ctx context.Context, on bool) error
}

// Metrics 业务指标
type Metrics interface {
	RecordCommandGenerated(kind string)
	RecordScriptGenerated(method string)
	RecordValidationFailure(kind string)
	SetAutoApply(on bool)
	SetActiveSessions(n int)
}

type noopMetrics struct{}

func (noopMetrics) RecordCommandGenerated(string)  {}
func (noopMetrics) RecordScriptGenerated(string)   {}
func (noopMetrics) RecordValidationFailure(string) {}
func (noopMetrics) SetAutoApply(bool)              {}
func (noopMetrics) SetActiveSessions(int)          {}

// ResolutionInput 自定义分辨率表单
type ResolutionInput struct {
	SessionID string          `json:"session_id"`
	Width     validation.Text `json:"width"`
	Height    validation.Text `json:"height"`
	AutoDPI   bool            `json:"auto_dpi"`
}

// DPIInput DPI 计算器表单
type DPIInput struct {
	SessionID   string          `json:"session_id"`
	NativeWidth validation.Text `json:"native_width"`
	NativeDPI   validation.Text `json:"native_dpi"`
	TargetWidth validation.Text `json:"target_width"`
}

// CommandResult 生成命令块的结果
type CommandResult struct {
	Session      session.View        `json:"session"`
	Page         domain.Page         `json:"page"`
	Output       string              `json:"output"`
	Notification domain.Notification `json:"notification"`
	// 自动应用开启时附带
	Apply *ApplyPlan `json:"apply,omitempty"`
}

// DPIResult DPI 计算或快捷预设的结果
type DPIResult struct {
	CommandResult
	Density     int          `json:"density"`
	ScaleFactor string       `json:"scale_factor,omitempty"`
	Tier        dpi.TierInfo `json:"tier"`
	Description string       `json:"description"`
}

// MethodResult 选择执行方式的结果
type MethodResult struct {
	Session      session.View           `json:"session"`
	Method       domain.ExecutionMethod `json:"method"`
	Script       *ScriptResult          `json:"script,omitempty"`
	Notification domain.Notification    `json:"notification"`
}

// ScriptResult 生成的脚本
type ScriptResult struct {
	Method       domain.MethodID     `json:"method"`
	FileName     string              `json:"file_name"`
	Script       string              `json:"script"`
	SourcePage   domain.Page         `json:"source_page"`
	Notification domain.Notification `json:"notification"`
}

// ToggleResult 切换自动应用的结果
type ToggleResult struct {
	Enabled      bool                `json:"enabled"`
	Apply        *ApplyPlan          `json:"apply,omitempty"`
	Notification domain.Notification `json:"notification"`
}
