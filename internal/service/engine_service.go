package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/adb-reso/adb-reso-go/internal/catalog"
	"github.com/adb-reso/adb-reso-go/internal/composer"
	"github.com/adb-reso/adb-reso-go/internal/domain"
	"github.com/adb-reso/adb-reso-go/internal/dpi"
	"github.com/adb-reso/adb-reso-go/internal/session"
	"github.com/adb-reso/adb-reso-go/internal/validation"
	"github.com/sirupsen/logrus"
)

// EngineService 页面操作的编排层
type EngineService interface {
	// 会话
	CreateSession() session.View
	GetSession(id string) (session.View, error)
	ResetSession(id string) (session.View, error)
	EndSession(id string) error
	SweepSessions() int

	// 命令生成
	GenerateResolution(ctx context.Context, in ResolutionInput) (*CommandResult, error)
	SelectPreset(ctx context.Context, sessionID, presetID string) (*CommandResult, error)
	CalculateDPI(ctx context.Context, in DPIInput) (*DPIResult, error)
	ApplyDensityPreset(ctx context.Context, sessionID, density string) (*DPIResult, error)
	SelectCommand(ctx context.Context, sessionID, commandID string) (*CommandResult, error)
	ClearSelection(sessionID string, category session.Category) (session.View, error)
	ClearOutput(sessionID string, page domain.Page) (session.View, error)

	// 脚本
	SelectMethod(sessionID string, method domain.MethodID) (*MethodResult, error)
	GenerateScript(sessionID string, method domain.MethodID) (*ScriptResult, error)

	// 自动应用
	LoadSettings(ctx context.Context) error
	AutoApply() bool
	ToggleAutoApply(ctx context.Context, sessionID string, page domain.Page) (*ToggleResult, error)
	Apply(ctx context.Context, sessionID string, page domain.Page) (*ApplyPlan, error)

	// DPI 分级表
	Tiers() dpi.Table
}

type engineService struct {
	store    *session.Store
	settings SettingRepository
	metrics  Metrics
	tiers    dpi.Table
	logger   *logrus.Logger

	mu        sync.RWMutex
	autoApply bool
}

// NewEngineService 创建服务实例；metrics 可为 nil，tiers 为空时使用默认分级表
func NewEngineService(store *session.Store, settings SettingRepository, metrics Metrics, tiers dpi.Table, logger *logrus.Logger) EngineService {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if len(tiers) == 0 {
		tiers = dpi.DefaultTable
	}
	return &engineService{
		store:    store,
		settings: settings,
		metrics:  metrics,
		tiers:    tiers,
		logger:   logger,
	}
}

func (s *engineService) CreateSession() session.View {
	v := s.store.Create()
	s.metrics.SetActiveSessions(s.store.Len())
	s.logger.WithField("session_id", v.ID).Debug("Session created")
	return v
}

func (s *engineService) GetSession(id string) (session.View, error) {
	return s.store.Get(id)
}

func (s *engineService) ResetSession(id string) (session.View, error) {
	return s.store.Update(id, func(sess *session.Session) error {
		sess.ClearAll()
		return nil
	})
}

func (s *engineService) EndSession(id string) error {
	if !s.store.Delete(id) {
		return domain.NewInputError("session", id, domain.ErrNotFound)
	}
	s.metrics.SetActiveSessions(s.store.Len())
	return nil
}

func (s *engineService) SweepSessions() int {
	n := s.store.Sweep()
	s.metrics.SetActiveSessions(s.store.Len())
	return n
}

func (s *engineService) GenerateResolution(ctx context.Context, in ResolutionInput) (*CommandResult, error) {
	var f validation.Fields
	r := domain.Resolution{
		Width:  f.Dimension("width", in.Width.String()),
		Height: f.Dimension("height", in.Height.String()),
	}
	if err := f.Err(); err != nil {
		return nil, s.reject(in.SessionID, err)
	}

	auto := 0
	applyCmd := composer.SizeLine(r)
	if in.AutoDPI {
		auto = dpi.AutoDensity(r.Width, r.Height)
		applyCmd = joinCommands(applyCmd, composer.DensityLine(auto))
	}
	out := composer.ResolutionCommand(r, auto)

	view, err := s.store.Update(in.SessionID, func(sess *session.Session) error {
		sess.SetOutput(domain.PageResolution, out)
		sess.SetApplyCommand(domain.PageResolution, applyCmd)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordCommandGenerated(string(domain.PageResolution))
	s.logger.WithFields(logrus.Fields{
		"session_id": in.SessionID,
		"resolution": r.String(),
		"auto_dpi":   auto,
	}).Info("Resolution command generated")

	msg := "Resolution command generated!"
	if auto > 0 {
		msg = fmt.Sprintf("Resolution command generated! Auto DPI: %d", auto)
	}
	return s.commandResult(view, domain.PageResolution, out, applyCmd, msg), nil
}

func (s *engineService) SelectPreset(ctx context.Context, sessionID, presetID string) (*CommandResult, error) {
	p, err := catalog.Preset(presetID)
	if err != nil {
		return nil, s.reject(sessionID, err)
	}

	out := composer.PresetCommand(p.Resolution, p.Density, p.Title, p.Description, catalog.PresetTip(p))
	applyCmd := joinCommands(composer.SizeLine(p.Resolution), composer.DensityLine(p.Density))

	view, err := s.store.Update(sessionID, func(sess *session.Session) error {
		sess.Select(session.CategoryPreset, p.ID)
		sess.SetOutput(domain.PagePreset, out)
		sess.SetApplyCommand(domain.PagePreset, applyCmd)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordCommandGenerated(string(domain.PagePreset))
	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"preset":     p.ID,
	}).Info("Preset selected")

	return s.commandResult(view, domain.PagePreset, out, applyCmd, fmt.Sprintf("%s preset selected!", p.Title)), nil
}

func (s *engineService) CalculateDPI(ctx context.Context, in DPIInput) (*DPIResult, error) {
	var f validation.Fields
	nw := f.Measure("native_width", in.NativeWidth.String())
	nd := f.Measure("native_dpi", in.NativeDPI.String())
	tw := f.Measure("target_width", in.TargetWidth.String())
	if err := f.Err(); err != nil {
		return nil, s.reject(in.SessionID, err)
	}

	scaled, err := dpi.ScaleDensity(nw, nd, tw)
	if err != nil {
		return nil, s.reject(in.SessionID, err)
	}

	tier := s.tiers.Classify(scaled.Density)
	out := composer.DensityCommand(scaled.Density, composer.DensityContext{Scaled: &scaled, Label: tier.Label})
	applyCmd := composer.DensityLine(scaled.Density)

	view, err := s.store.Update(in.SessionID, func(sess *session.Session) error {
		sess.Deselect(session.CategoryDensityPreset)
		sess.SetOutput(domain.PageDPI, out)
		sess.SetApplyCommand(domain.PageDPI, applyCmd)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordCommandGenerated(string(domain.PageDPI))
	s.logger.WithFields(logrus.Fields{
		"session_id": in.SessionID,
		"density":    scaled.Density,
		"scale":      scaled.ScaleFactor(),
		"tier":       tier.Tier,
	}).Info("DPI calculated")

	res := s.commandResult(view, domain.PageDPI, out, applyCmd, fmt.Sprintf("DPI calculated: %d", scaled.Density))
	return &DPIResult{
		CommandResult: *res,
		Density:       scaled.Density,
		ScaleFactor:   scaled.ScaleFactor(),
		Tier:          tier,
		Description:   dpi.Describe(scaled.Density),
	}, nil
}

func (s *engineService) ApplyDensityPreset(ctx context.Context, sessionID, density string) (*DPIResult, error) {
	d, err := validation.ParseDensity(density)
	if err != nil {
		return nil, s.reject(sessionID, err)
	}

	desc := dpi.Describe(d)
	out := composer.DensityCommand(d, composer.DensityContext{Label: desc})
	applyCmd := composer.DensityLine(d)

	view, err := s.store.Update(sessionID, func(sess *session.Session) error {
		sess.Select(session.CategoryDensityPreset, fmt.Sprint(d))
		sess.SetOutput(domain.PageDPI, out)
		sess.SetApplyCommand(domain.PageDPI, applyCmd)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordCommandGenerated(string(domain.PageDPI))
	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"density":    d,
	}).Info("DPI preset applied")

	res := s.commandResult(view, domain.PageDPI, out, applyCmd, fmt.Sprintf("DPI %d selected", d))
	return &DPIResult{
		CommandResult: *res,
		Density:       d,
		Tier:          s.tiers.Classify(d),
		Description:   desc,
	}, nil
}

func (s *engineService) SelectCommand(ctx context.Context, sessionID, commandID string) (*CommandResult, error) {
	c, err := catalog.Command(commandID)
	if err != nil {
		return nil, s.reject(sessionID, err)
	}

	out := composer.CatalogCommand(c)
	view, err := s.store.Update(sessionID, func(sess *session.Session) error {
		sess.Select(session.CategoryCommand, c.ID)
		sess.SetOutput(domain.PageCatalog, out)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordCommandGenerated(string(domain.PageCatalog))
	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"command":    c.ID,
	}).Info("Catalog command selected")

	// 命令参考页不参与自动应用
	return &CommandResult{
		Session:      view,
		Page:         domain.PageCatalog,
		Output:       out,
		Notification: s.notify(sessionID, domain.NotifySuccess, fmt.Sprintf("%s command selected", c.Title)),
	}, nil
}

func (s *engineService) ClearSelection(sessionID string, category session.Category) (session.View, error) {
	return s.store.Update(sessionID, func(sess *session.Session) error {
		sess.Clear(category)
		return nil
	})
}

// ClearOutput 清空一个页面的输出，对应的选择一并取消
func (s *engineService) ClearOutput(sessionID string, page domain.Page) (session.View, error) {
	return s.store.Update(sessionID, func(sess *session.Session) error {
		sess.ClearPage(page)
		return nil
	})
}

func (s *engineService) SelectMethod(sessionID string, method domain.MethodID) (*MethodResult, error) {
	m, err := catalog.Method(method)
	if err != nil {
		return nil, s.reject(sessionID, err)
	}

	var script *ScriptResult
	view, err := s.store.Update(sessionID, func(sess *session.Session) error {
		sess.Select(session.CategoryMethod, string(m.ID))
		page, out, ok := sess.LatestOutput()
		if !ok {
			return nil
		}
		text, err := composer.ScriptFromOutput(m.ID, out)
		if err != nil {
			// 只有注释的输出不阻止选择执行方式
			return nil
		}
		sess.SetOutput(domain.PageScript, text)
		script = &ScriptResult{
			Method:     m.ID,
			FileName:   composer.ScriptFileName(m.ID),
			Script:     text,
			SourcePage: page,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := &MethodResult{Session: view, Method: m}
	if script != nil {
		s.metrics.RecordScriptGenerated(string(m.ID))
		script.Notification = s.notify(sessionID, domain.NotifySuccess, fmt.Sprintf("%s script generated!", m.DisplayName))
		res.Script = script
		res.Notification = script.Notification
	} else {
		res.Notification = s.notify(sessionID, domain.NotifyInfo, fmt.Sprintf("%s selected. Generate a command first to build a script.", m.DisplayName))
	}
	return res, nil
}

func (s *engineService) GenerateScript(sessionID string, method domain.MethodID) (*ScriptResult, error) {
	var res *ScriptResult
	_, err := s.store.Update(sessionID, func(sess *session.Session) error {
		if method == "" {
			selected, ok := sess.Selected(session.CategoryMethod)
			if !ok {
				return domain.NewInputError("method", "", domain.ErrMissingInput)
			}
			method = domain.MethodID(selected)
		}
		if _, err := catalog.Method(method); err != nil {
			return err
		}

		page, out, ok := sess.LatestOutput()
		if !ok {
			return domain.ErrEmptyCommandSet
		}
		text, err := composer.ScriptFromOutput(method, out)
		if err != nil {
			return err
		}

		sess.Select(session.CategoryMethod, string(method))
		sess.SetOutput(domain.PageScript, text)
		res = &ScriptResult{
			Method:     method,
			FileName:   composer.ScriptFileName(method),
			Script:     text,
			SourcePage: page,
		}
		return nil
	})
	if err != nil {
		return nil, s.reject(sessionID, err)
	}

	s.metrics.RecordScriptGenerated(string(method))
	s.logger.WithFields(logrus.Fields{
		"session_id":  sessionID,
		"method":      method,
		"source_page": res.SourcePage,
	}).Info("Script generated")

	res.Notification = s.notify(sessionID, domain.NotifySuccess, "Script generated! Copy it into your terminal app.")
	return res, nil
}

func (s *engineService) LoadSettings(ctx context.Context) error {
	on, err := s.settings.AutoApply(ctx)
	if err != nil {
		return fmt.Errorf("failed to load auto-apply setting: %w", err)
	}

	s.mu.Lock()
	s.autoApply = on
	s.mu.Unlock()

	s.metrics.SetAutoApply(on)
	s.logger.WithField("auto_apply", on).Info("Settings loaded")
	return nil
}

func (s *engineService) AutoApply() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.autoApply
}

func (s *engineService) ToggleAutoApply(ctx context.Context, sessionID string, page domain.Page) (*ToggleResult, error) {
	s.mu.Lock()
	next := !s.autoApply
	if err := s.settings.SetAutoApply(ctx, next); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("failed to save auto-apply setting: %w", err)
	}
	s.autoApply = next
	s.mu.Unlock()

	s.metrics.SetAutoApply(next)
	s.logger.WithField("auto_apply", next).Info("Auto apply toggled")

	res := &ToggleResult{Enabled: next}
	if !next {
		res.Notification = s.notify(sessionID, domain.NotifyInfo, "Auto apply disabled")
		return res, nil
	}

	res.Notification = s.notify(sessionID, domain.NotifySuccess, "Auto apply enabled")
	if sessionID == "" || page == "" {
		return res, nil
	}

	plan, err := s.Apply(ctx, sessionID, page)
	switch {
	case err == nil:
		res.Apply = plan
	case errors.Is(err, domain.ErrNoCommand):
		// 开关已保存，只是当前页还没有命令
		res.Notification = s.notify(sessionID, domain.NotifyWarning, "Auto apply enabled. Generate a command first.")
	default:
		return nil, err
	}
	return res, nil
}

func (s *engineService) Apply(ctx context.Context, sessionID string, page domain.Page) (*ApplyPlan, error) {
	var cmd string
	_, err := s.store.Update(sessionID, func(sess *session.Session) error {
		c, ok := sess.ApplyCommand(page)
		if !ok {
			return domain.ErrNoCommand
		}
		cmd = c
		return nil
	})
	if err != nil {
		return nil, s.reject(sessionID, err)
	}

	plan, err := NewApplyPlan(page, cmd)
	if err != nil {
		return nil, s.reject(sessionID, err)
	}
	plan.Notification.SessionID = sessionID

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"page":       page,
		"command":    cmd,
	}).Info("Apply plan created")
	return plan, nil
}

func (s *engineService) Tiers() dpi.Table {
	return s.tiers
}

// commandResult 组装结果；自动应用开启且有可应用命令时附带 ApplyPlan
func (s *engineService) commandResult(view session.View, page domain.Page, out, applyCmd, msg string) *CommandResult {
	res := &CommandResult{
		Session:      view,
		Page:         page,
		Output:       out,
		Notification: s.notify(view.ID, domain.NotifySuccess, msg),
	}
	if s.AutoApply() && applyCmd != "" {
		if plan, err := NewApplyPlan(page, applyCmd); err == nil {
			plan.Notification.SessionID = view.ID
			res.Apply = plan
		}
	}
	return res
}

func (s *engineService) notify(sessionID string, t domain.NotificationType, msg string) domain.Notification {
	n := domain.NewNotification(t, msg)
	n.SessionID = sessionID
	return n
}

// reject 记录失败指标，返回原错误
func (s *engineService) reject(sessionID string, err error) error {
	kind := domain.ErrorKind(err)
	s.metrics.RecordValidationFailure(kind)
	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"kind":       kind,
	}).WithError(err).Debug("Request rejected")
	return err
}
