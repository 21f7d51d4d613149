// Package retry runs an operation with bounded attempts and backoff.
package retry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Strategy 退避策略
type Strategy string

const (
	StrategyFixed       Strategy = "fixed"
	StrategyLinear      Strategy = "linear"
	StrategyExponential Strategy = "exponential"
)

// ParseStrategy 解析配置中的策略名，空串为指数退避
func ParseStrategy(name string) (Strategy, error) {
	switch s := Strategy(strings.ToLower(strings.TrimSpace(name))); s {
	case "":
		return StrategyExponential, nil
	case StrategyFixed, StrategyLinear, StrategyExponential:
		return s, nil
	default:
		return "", fmt.Errorf("unknown retry strategy %q", name)
	}
}

// Config 重试配置
type Config struct {
	Operation       string // 日志中的操作名
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Strategy        Strategy
	Timeout         time.Duration // 所有尝试的总时长，0 表示不限
	Logger          *logrus.Logger
}

// DefaultConfig 启动阶段连接外部依赖使用的默认配置
func DefaultConfig(operation string, logger *logrus.Logger) *Config {
	return &Config{
		Operation:       operation,
		MaxAttempts:     5,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     10 * time.Second,
		Strategy:        StrategyExponential,
		Timeout:         time.Minute,
		Logger:          logger,
	}
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent 标记错误不可重试，Do 会立即返回
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsRetryable 判断错误是否值得再试一次
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var p *permanentError
	if errors.As(err, &p) {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// Func 可重试的操作
type Func func(ctx context.Context) error

// Do 执行 fn 直到成功、遇到不可重试错误或次数用尽
func Do(ctx context.Context, cfg *Config, fn Func) error {
	if cfg == nil {
		cfg = DefaultConfig("operation", nil)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	log := logger.WithField("operation", cfg.Operation)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s canceled: %w", cfg.Operation, err)
		}

		err := fn(ctx)
		if err == nil {
			if attempt > 1 {
				log.WithField("attempt", attempt).Info("Operation succeeded after retry")
			}
			return nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return fmt.Errorf("%s failed: %w", cfg.Operation, err)
		}
		if attempt == attempts {
			break
		}

		wait := Backoff(cfg.Strategy, cfg.InitialInterval, cfg.MaxInterval, attempt)
		log.WithFields(logrus.Fields{
			"attempt": attempt,
			"max":     attempts,
			"wait":    wait,
		}).WithError(err).Warn("Operation failed, retrying")

		select {
		case <-ctx.Done():
			return fmt.Errorf("%s canceled while waiting: %w", cfg.Operation, ctx.Err())
		case <-time.After(wait):
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", cfg.Operation, attempts, lastErr)
}

// DoWithResult 带返回值的 Do
func DoWithResult[T any](ctx context.Context, cfg *Config, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := Do(ctx, cfg, func(ctx context.Context) error {
		res, err := fn(ctx)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	return result, err
}

// Backoff 第 attempt 次失败后的等待时间，不超过 max
func Backoff(strategy Strategy, initial, max time.Duration, attempt int) time.Duration {
	var next time.Duration
	switch strategy {
	case StrategyLinear:
		next = initial * time.Duration(attempt)
	case StrategyExponential:
		next = initial * time.Duration(1<<(attempt-1))
	default:
		next = initial
	}
	if max > 0 && next > max {
		next = max
	}
	return next
}
