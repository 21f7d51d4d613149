package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watcher 监控配置文件，变更后重新应用日志级别
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	logger   *logrus.Logger
	debounce time.Duration
	onReload func(*Config)
}

// NewWatcher 监控配置文件所在目录（编辑器常以重命名方式保存）
func NewWatcher(path string, logger *logrus.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}

	return &Watcher{
		watcher:  w,
		path:     filepath.Clean(path),
		logger:   logger,
		debounce: 500 * time.Millisecond,
	}, nil
}

// OnReload 注册重载回调，在日志级别更新后调用
func (cw *Watcher) OnReload(fn func(*Config)) {
	cw.onReload = fn
}

// Run 事件循环，ctx 取消后关闭
func (cw *Watcher) Run(ctx context.Context) {
	defer cw.watcher.Close()

	var timer *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			// 防抖: 一次保存可能触发多个事件
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(cw.debounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			cw.apply()

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.WithError(err).Error("Config watcher error")
		}
	}
}

func (cw *Watcher) apply() {
	cfg, err := Load(cw.path)
	if err != nil {
		cw.logger.WithError(err).Warn("Failed to reload config, keeping current settings")
		return
	}

	level := parseLevel(cfg.Log.Level)
	if level != cw.logger.GetLevel() {
		cw.logger.SetLevel(level)
		cw.logger.WithField("level", level.String()).Info("Log level reloaded")
	}

	if cw.onReload != nil {
		cw.onReload(cfg)
	}
}
