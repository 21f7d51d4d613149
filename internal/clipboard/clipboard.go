// Package clipboard copies generated commands for the CLI.
package clipboard

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/adb-reso/adb-reso-go/internal/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// Method 实际使用的复制方式
type Method string

const (
	MethodTool  Method = "tool"
	MethodOSC52 Method = "osc52"
)

// Tool 系统剪贴板命令，文本从 stdin 写入
type Tool struct {
	Name string
	Args []string
}

// DefaultTools 按顺序尝试
var DefaultTools = []Tool{
	{Name: "termux-clipboard-set"},
	{Name: "wl-copy"},
	{Name: "xclip", Args: []string{"-selection", "clipboard"}},
	{Name: "xsel", Args: []string{"--clipboard", "--input"}},
	{Name: "pbcopy"},
	{Name: "clip.exe"},
}

// Writer 先尝试系统工具，其次终端 OSC 52，都不可用时返回 ErrClipboardUnavailable
type Writer struct {
	tools      []Tool
	out        io.Writer
	isTerminal func() bool
	lookPath   func(string) (string, error)
	run        func(ctx context.Context, path string, args []string, stdin string) error
	logger     *logrus.Logger
}

// NewWriter out 为 OSC 52 序列的输出终端，通常是 os.Stdout
func NewWriter(out *os.File, logger *logrus.Logger) *Writer {
	return &Writer{
		tools: DefaultTools,
		out:   out,
		isTerminal: func() bool {
			return term.IsTerminal(int(out.Fd()))
		},
		lookPath: exec.LookPath,
		run:      runTool,
		logger:   logger,
	}
}

// Copy 复制文本，返回使用的方式
func (w *Writer) Copy(ctx context.Context, text string) (Method, error) {
	if strings.TrimSpace(text) == "" {
		return "", domain.NewInputError("text", text, domain.ErrMissingInput)
	}

	for _, t := range w.tools {
		path, err := w.lookPath(t.Name)
		if err != nil {
			continue
		}
		if err := w.run(ctx, path, t.Args, text); err != nil {
			w.logger.WithError(err).WithField("tool", t.Name).Debug("Clipboard tool failed, trying next")
			continue
		}
		w.logger.WithField("tool", t.Name).Debug("Copied with clipboard tool")
		return MethodTool, nil
	}

	if w.isTerminal() {
		if _, err := io.WriteString(w.out, OSC52(text)); err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrClipboardUnavailable, err)
		}
		return MethodOSC52, nil
	}

	return "", domain.ErrClipboardUnavailable
}

// OSC52 终端剪贴板转义序列
func OSC52(text string) string {
	return "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\a"
}

func runTool(ctx context.Context, path string, args []string, stdin string) error {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = strings.NewReader(stdin)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %v: %s", path, err, strings.TrimSpace(string(out)))
	}
	return nil
}
