package composer

import (
	"fmt"
	"strings"

	"github.com/adb-reso/adb-reso-go/internal/domain"
)

const (
	// TermuxShebang Termux 的 bash 路径
	TermuxShebang = "#!/data/data/com.termux/files/usr/bin/bash"
	// SystemShebang 设备自带 sh，LADB 的 shell 使用
	SystemShebang = "#!/system/bin/sh"
	// ShizukuPrefix 特权执行前缀
	ShizukuPrefix = "shizuku exec "

	banner = `echo "==========================================="`
)

// ExecutableLines 去掉空行和注释行，其余行去除首尾空白后按行拼接
func ExecutableLines(composed string) (string, error) {
	var lines []string
	for _, line := range strings.Split(composed, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, CommentPrefix) {
			continue
		}
		lines = append(lines, trimmed)
	}
	if len(lines) == 0 {
		return "", domain.ErrEmptyCommandSet
	}
	return strings.Join(lines, "\n"), nil
}

// BuildScript 按执行方式生成脚本
func BuildScript(method domain.MethodID, lines string) (string, error) {
	if strings.TrimSpace(lines) == "" {
		return "", domain.ErrEmptyCommandSet
	}

	switch method {
	case domain.MethodTermux:
		return termuxScript(lines), nil
	case domain.MethodLADB:
		return ladbScript(lines), nil
	case domain.MethodShizuku:
		return shizukuScript(lines), nil
	default:
		return "", domain.NewInputError("method", string(method), domain.ErrNotFound)
	}
}

// ScriptFromOutput 过滤已生成的命令块并生成脚本
func ScriptFromOutput(method domain.MethodID, composed string) (string, error) {
	lines, err := ExecutableLines(composed)
	if err != nil {
		return "", err
	}
	return BuildScript(method, lines)
}

// ScriptFileName 下载文件名，如 adb_termux.sh
func ScriptFileName(method domain.MethodID) string {
	return fmt.Sprintf("adb_%s.sh", method)
}

func termuxScript(lines string) string {
	return strings.Join([]string{
		TermuxShebang,
		banner,
		`echo "    ADB Executor for Termux"`,
		banner,
		`echo ""`,
		`echo "Updating packages..."`,
		`pkg install android-tools -y`,
		`echo ""`,
		`echo "Checking connection..."`,
		`adb devices`,
		`echo ""`,
		`echo "Executing commands..."`,
		lines,
		`echo ""`,
		`echo "✅ All commands executed!"`,
		banner,
		`read -p "Press Enter to exit..."`,
	}, "\n")
}

// LADB 脚本是粘贴进远程 shell 的，不等待按键
func ladbScript(lines string) string {
	return strings.Join([]string{
		SystemShebang,
		"# LADB Script",
		"# Copy every line below into LADB",
		`echo "Executing commands via LADB..."`,
		lines,
		`echo "✅ Commands executed via LADB"`,
	}, "\n")
}

func shizukuScript(lines string) string {
	split := strings.Split(lines, "\n")
	prefixed := make([]string, 0, len(split))
	for _, l := range split {
		prefixed = append(prefixed, ShizukuPrefix+l)
	}

	return strings.Join([]string{
		TermuxShebang,
		banner,
		`echo "    Shizuku ADB Executor"`,
		banner,
		`echo ""`,
		`echo "Starting Shizuku..."`,
		`export ADB_PATH="shizuku"`,
		`echo ""`,
		`echo "Executing commands via Shizuku..."`,
		strings.Join(prefixed, "\n"),
		`echo ""`,
		`echo "✅ Commands executed via Shizuku!"`,
		banner,
	}, "\n")
}
