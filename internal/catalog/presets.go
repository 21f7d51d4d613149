// Package catalog holds the static preset, command and execution-method tables.
package catalog

import (
	"github.com/adb-reso/adb-reso-go/internal/domain"
	"github.com/adb-reso/adb-reso-go/internal/dpi"
)

// DefaultPresetTip 没有专属提示的预设使用的提示
const DefaultPresetTip = "A better gaming experience"

var presets = []domain.Preset{
	{
		ID: "pubg-extreme", Title: "PUBG Extreme FPS",
		Resolution: domain.Resolution{Width: 720, Height: 1600}, Density: 320,
		Description: "Lower resolution for maximum frame rate",
		Tip:         "PUBG Mobile - Extreme FPS mode for high-end devices",
	},
	{
		ID: "pubg-balanced", Title: "PUBG Balanced",
		Resolution: domain.Resolution{Width: 900, Height: 2000}, Density: 380,
		Description: "Balance between graphics and performance",
		Tip:         "PUBG Mobile - Balanced graphics and performance",
	},
	{
		ID: "ml-pro", Title: "Mobile Legends Pro",
		Resolution: domain.Resolution{Width: 1080, Height: 2340}, Density: 400,
		Description: "Wider field of view used by pro players",
		Tip:         "Mobile Legends - Pro player setup for competitive play",
	},
	{
		ID: "ml-competitive", Title: "Mobile Legends Competitive",
		Resolution: domain.Resolution{Width: 900, Height: 1950}, Density: 360,
		Description: "Stable frame rate for ranked matches",
		Tip:         "Mobile Legends - For competitive gameplay",
	},
	{
		ID: "ff-headshot", Title: "Free Fire Headshot",
		Resolution: domain.Resolution{Width: 720, Height: 1520}, Density: 280,
		Description: "Larger UI for precise aiming",
		Tip:         "Free Fire - Tuned for headshot accuracy",
	},
	{
		ID: "ff-smooth", Title: "Free Fire Smooth",
		Resolution: domain.Resolution{Width: 810, Height: 1800}, Density: 320,
		Description: "Smooth gameplay on mid-range devices",
		Tip:         "Free Fire - Smooth gameplay for mid-range devices",
	},
	{
		ID: "ffmax-ultra", Title: "Free Fire Max Ultra",
		Resolution: domain.Resolution{Width: 1440, Height: 3200}, Density: 560,
		Description: "Ultra HD graphics for flagship devices",
		Tip:         "Free Fire Max - Ultra HD graphics for flagship devices",
	},
	{
		ID: "ffmax-performance", Title: "Free Fire Max Performance",
		Resolution: domain.Resolution{Width: 900, Height: 2000}, Density: 360,
		Description: "Performance mode for lag-free gameplay",
		Tip:         "Free Fire Max - Performance mode for smooth gameplay",
	},
	{
		ID: "flagship", Title: "Flagship",
		Resolution: domain.Resolution{Width: 1080, Height: 2400}, Density: 440,
		Description: "Typical FHD+ flagship panel",
	},
	{
		ID: "hd-plus", Title: "HD+",
		Resolution: domain.Resolution{Width: 720, Height: 1600}, Density: 300,
		Description: "Entry-level HD+ panel",
	},
	{
		ID: "qhd-plus", Title: "QHD+",
		Resolution: domain.Resolution{Width: 1440, Height: 3200}, Density: 560,
		Description: "High-end QHD+ panel",
	},
}

// densityPresets DPI 快捷按钮
var densityPresets = []int{320, 360, 400, 440, 480, 560}

// Presets 返回全部分辨率预设（副本）
func Presets() []domain.Preset {
	out := make([]domain.Preset, len(presets))
	copy(out, presets)
	return out
}

// Preset 按 ID 查找预设
func Preset(id string) (domain.Preset, error) {
	for _, p := range presets {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Preset{}, domain.NewInputError("preset", id, domain.ErrNotFound)
}

// PresetTip 预设的提示文案，未配置时返回通用提示
func PresetTip(p domain.Preset) string {
	if p.Tip != "" {
		return p.Tip
	}
	return DefaultPresetTip
}

// DensityPresets 返回 DPI 快捷预设及说明
func DensityPresets() []domain.DensityPreset {
	out := make([]domain.DensityPreset, 0, len(densityPresets))
	for _, d := range densityPresets {
		out = append(out, domain.DensityPreset{Density: d, Description: dpi.Describe(d)})
	}
	return out
}
