// Package composer builds pasteable adb transcripts and the shell scripts
// that replay them on the device.
package composer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/adb-reso/adb-reso-go/internal/domain"
	"github.com/adb-reso/adb-reso-go/internal/dpi"
)

// CommentPrefix 注释行前缀
const CommentPrefix = "#"

// SizeLine adb shell wm size WxH
func SizeLine(r domain.Resolution) string {
	return "adb shell wm size " + r.String()
}

// DensityLine adb shell wm density N
func DensityLine(density int) string {
	return "adb shell wm density " + strconv.Itoa(density)
}

// ResolutionCommand 自定义分辨率命令；autoDensity 为 0 时不设置 DPI
func ResolutionCommand(r domain.Resolution, autoDensity int) string {
	var b strings.Builder
	b.WriteString("# Custom Resolution\n")
	fmt.Fprintf(&b, "# Width: %dpx | Height: %dpx\n\n", r.Width, r.Height)
	b.WriteString(SizeLine(r) + "\n")
	if autoDensity > 0 {
		b.WriteString(DensityLine(autoDensity) + "\n")
		fmt.Fprintf(&b, "# Auto DPI: %d (calculated)\n", autoDensity)
	}
	b.WriteString("\n")
	writeFullReset(&b)
	return b.String()
}

// PresetCommand 分辨率预设命令
func PresetCommand(r domain.Resolution, density int, title, description, tip string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", title)
	if description != "" {
		fmt.Fprintf(&b, "# %s\n", description)
	}
	fmt.Fprintf(&b, "# Resolution: %s | DPI: %d\n\n", r, density)
	b.WriteString(SizeLine(r) + "\n")
	b.WriteString(DensityLine(density) + "\n\n")
	writeFullReset(&b)
	if tip != "" {
		fmt.Fprintf(&b, "\n\n# Tip: %s", tip)
	}
	return b.String()
}

// CatalogCommand 命令参考条目，附带使用说明
func CatalogCommand(c domain.CatalogCommand) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s Command: %s\n", c.Category, c.Title)
	fmt.Fprintf(&b, "# %s\n\n", c.Description)
	b.WriteString(strings.TrimSpace(c.Code) + "\n\n")
	b.WriteString("# How to use:\n")
	b.WriteString("# 1. Connect the device over USB/WiFi ADB\n")
	b.WriteString("# 2. Open a terminal or command prompt\n")
	b.WriteString("# 3. Paste the command above\n")
	b.WriteString("# 4. Press Enter to run it")
	return b.String()
}

// DensityContext 仅设置 DPI 时的上下文
type DensityContext struct {
	Scaled *dpi.Scaled // 计算器结果；快捷预设时为 nil
	Label  string      // 分级标签或预设说明
}

// DensityCommand 仅设置 DPI 的命令（计算结果或 DPI 快捷预设）
func DensityCommand(density int, ctx DensityContext) string {
	var b strings.Builder
	if s := ctx.Scaled; s != nil {
		b.WriteString("# DPI Calculation Result\n")
		fmt.Fprintf(&b, "# Native: %spx @ %sdpi\n", formatNumber(s.NativeWidth), formatNumber(s.NativeDPI))
		fmt.Fprintf(&b, "# Target: %spx @ %ddpi\n", formatNumber(s.TargetWidth), density)
		fmt.Fprintf(&b, "# Scale Factor: %s\n\n", s.ScaleFactor())
	} else {
		fmt.Fprintf(&b, "# DPI Preset: %d DPI\n\n", density)
	}
	b.WriteString(DensityLine(density) + "\n\n")
	b.WriteString("# Reset: adb shell wm density reset")
	if ctx.Label != "" {
		if ctx.Scaled != nil {
			fmt.Fprintf(&b, "\n# Note: %s", ctx.Label)
		} else {
			fmt.Fprintf(&b, "\n# Recommended for: %s", ctx.Label)
		}
	}
	return b.String()
}

func writeFullReset(b *strings.Builder) {
	b.WriteString("# Reset to default:\n")
	b.WriteString("# adb shell wm size reset\n")
	b.WriteString("# adb shell wm density reset")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
