// Package dpi computes display densities for wm density.
package dpi

import (
	"math"
	"strconv"

	"github.com/adb-reso/adb-reso-go/internal/domain"
)

// 自动 DPI 以 360px 宽 @ 440dpi 为基准，结果限制在 [120, 640]
const (
	BaselineWidth   = 360
	BaselineDensity = 440
	MinAutoDensity  = 120
	MaxAutoDensity  = 640
)

// AutoDensity 根据分辨率短边推算 DPI
func AutoDensity(width, height int) int {
	short := width
	if height < short {
		short = height
	}
	d := int(math.Round(float64(short) / BaselineWidth * BaselineDensity))
	return clamp(d, MinAutoDensity, MaxAutoDensity)
}

// Scaled 按目标宽度缩放原生 DPI 的结果
type Scaled struct {
	NativeWidth float64 `json:"native_width"`
	NativeDPI   float64 `json:"native_dpi"`
	TargetWidth float64 `json:"target_width"`
	Density     int     `json:"density"`
	Scale       float64 `json:"scale"`
}

// ScaleFactor 保留两位小数，如 "1.33x"
func (s Scaled) ScaleFactor() string {
	return strconv.FormatFloat(s.Scale, 'f', 2, 64) + "x"
}

// ScaleDensity density = round(targetWidth / nativeWidth * nativeDPI)
func ScaleDensity(nativeWidth, nativeDPI, targetWidth float64) (Scaled, error) {
	if err := positive("native_width", nativeWidth); err != nil {
		return Scaled{}, err
	}
	if err := positive("native_dpi", nativeDPI); err != nil {
		return Scaled{}, err
	}
	if err := positive("target_width", targetWidth); err != nil {
		return Scaled{}, err
	}

	scale := targetWidth / nativeWidth
	density := math.Round(scale * nativeDPI)
	// wm density 只接受 1 及以上的整数
	if density < 1 || density > math.MaxInt32 {
		return Scaled{}, domain.NewInputError("target_width", strconv.FormatFloat(targetWidth, 'f', -1, 64), domain.ErrOutOfRangeInput)
	}

	return Scaled{
		NativeWidth: nativeWidth,
		NativeDPI:   nativeDPI,
		TargetWidth: targetWidth,
		Density:     int(density),
		Scale:       scale,
	}, nil
}

func positive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.NewInputError(field, strconv.FormatFloat(v, 'f', -1, 64), domain.ErrNonNumericInput)
	}
	if v <= 0 {
		return domain.NewInputError(field, strconv.FormatFloat(v, 'f', -1, 64), domain.ErrOutOfRangeInput)
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
