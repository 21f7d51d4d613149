package service

import (
	"net/url"
	"strings"

	"github.com/adb-reso/adb-reso-go/internal/domain"
)

// LaunchKind 应用命令的途径
type LaunchKind string

const (
	LaunchTermux    LaunchKind = "termux"
	LaunchLADB      LaunchKind = "ladb"
	LaunchClipboard LaunchKind = "clipboard"
)

// LaunchAttempt 按顺序尝试的一种途径
type LaunchAttempt struct {
	Kind LaunchKind `json:"kind"`
	URI  string     `json:"uri,omitempty"`
}

// ApplyPlan 由客户端按顺序尝试，服务端不连接设备
type ApplyPlan struct {
	Page         domain.Page         `json:"page"`
	Command      string              `json:"command"`
	Attempts     []LaunchAttempt     `json:"attempts"`
	Notification domain.Notification `json:"notification"`
}

// NewApplyPlan 先尝试 Termux，再 LADB，最后复制到剪贴板
func NewApplyPlan(page domain.Page, command string) (*ApplyPlan, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil, domain.ErrNoCommand
	}
	enc := escapeCommand(command)
	return &ApplyPlan{
		Page:    page,
		Command: command,
		Attempts: []LaunchAttempt{
			{Kind: LaunchTermux, URI: "termux://execute?cmd=" + enc},
			{Kind: LaunchLADB, URI: "ladb://command?cmd=" + enc},
			{Kind: LaunchClipboard},
		},
		Notification: domain.NewNotification(domain.NotifyInfo, "Opening terminal app..."),
	}, nil
}

// escapeCommand 空格编码为 %20，Termux/LADB 不把 + 还原成空格
func escapeCommand(cmd string) string {
	return strings.ReplaceAll(url.QueryEscape(cmd), "+", "%20")
}

// joinCommands 多条命令拼成一次执行
func joinCommands(cmds ...string) string {
	var parts []string
	for _, c := range cmds {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " && ")
}
