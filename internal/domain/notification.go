package domain

import "time"

// NotificationType 提示类型
type NotificationType string

const (
	NotifySuccess NotificationType = "success"
	NotifyError   NotificationType = "error"
	NotifyWarning NotificationType = "warning"
	NotifyInfo    NotificationType = "info"
)

// Icon 提示图标
func (t NotificationType) Icon() string {
	switch t {
	case NotifySuccess:
		return "check-circle"
	case NotifyError:
		return "times-circle"
	case NotifyWarning:
		return "exclamation-triangle"
	default:
		return "info-circle"
	}
}

// Notification 操作完成后展示的提示
type Notification struct {
	SessionID string           `json:"session_id,omitempty"`
	Type      NotificationType `json:"type"`
	Icon      string           `json:"icon"`
	Message   string           `json:"message"`
	Timestamp int64            `json:"timestamp"`
}

// NewNotification 创建提示
func NewNotification(t NotificationType, message string) Notification {
	return Notification{
		Type:      t,
		Icon:      t.Icon(),
		Message:   message,
		Timestamp: time.Now().Unix(),
	}
}

// ErrorNotification 根据错误创建提示
func ErrorNotification(err error) Notification {
	return NewNotification(NotifyError, UserMessage(err))
}
