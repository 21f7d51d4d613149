// Package validation turns raw form text into positive numbers.
package validation

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/adb-reso/adb-reso-go/internal/domain"
)

// 超过 int32 的值视为越界
const maxValue = math.MaxInt32

// ParseDimension 解析宽/高（正整数像素）
func ParseDimension(text string) (int, error) {
	return parsePositiveInt("dimension", text)
}

// ParseDensity 解析 DPI（正整数）
func ParseDensity(text string) (int, error) {
	return parsePositiveInt("density", text)
}

// ParseMeasure 解析正数，允许小数（DPI 计算器输入）
func ParseMeasure(text string) (float64, error) {
	return parsePositive("measure", text)
}

// ParseResolution 解析 "1080x2400" 形式的分辨率
func ParseResolution(text string) (domain.Resolution, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return domain.Resolution{}, domain.NewInputError("resolution", text, domain.ErrMissingInput)
	}

	sep := strings.IndexAny(trimmed, "xX×")
	if sep < 0 {
		return domain.Resolution{}, domain.NewInputError("resolution", text, domain.ErrNonNumericInput)
	}
	_, size := utf8.DecodeRuneInString(trimmed[sep:])

	w, err := parsePositiveInt("resolution", trimmed[:sep])
	if err != nil {
		return domain.Resolution{}, err
	}
	h, err := parsePositiveInt("resolution", trimmed[sep+size:])
	if err != nil {
		return domain.Resolution{}, err
	}
	return domain.Resolution{Width: w, Height: h}, nil
}

func parsePositiveInt(field, text string) (int, error) {
	v, err := parsePositive(field, text)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, domain.NewInputError(field, text, domain.ErrNonNumericInput)
	}
	if v > maxValue {
		return 0, domain.NewInputError(field, text, domain.ErrOutOfRangeInput)
	}
	return int(v), nil
}

func parsePositive(field, text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, domain.NewInputError(field, text, domain.ErrMissingInput)
	}

	// 只接受十进制，ParseFloat 会放过 0x1p10 这样的十六进制浮点
	digits := strings.TrimLeft(trimmed, "+-")
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		return 0, domain.NewInputError(field, text, domain.ErrNonNumericInput)
	}

	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, domain.NewInputError(field, text, domain.ErrNonNumericInput)
	}
	if v <= 0 {
		return 0, domain.NewInputError(field, text, domain.ErrOutOfRangeInput)
	}
	return v, nil
}
