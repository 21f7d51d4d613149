package domain

import "fmt"

// Resolution 屏幕分辨率（像素）
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// String 返回 wm size 使用的格式，如 1080x2400
func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// ShortSide 短边长度
func (r Resolution) ShortSide() int {
	if r.Width < r.Height {
		return r.Width
	}
	return r.Height
}

// DensityTier DPI 分级
type DensityTier string

const (
	TierVeryLow  DensityTier = "very-low"
	TierLow      DensityTier = "low"
	TierMedium   DensityTier = "medium"
	TierOptimal  DensityTier = "optimal"
	TierHigh     DensityTier = "high"
	TierVeryHigh DensityTier = "very-high"
)

// Page 输出所属的页面上下文
type Page string

const (
	PageResolution Page = "resolution"
	PagePreset     Page = "preset"
	PageDPI        Page = "dpi"
	PageCatalog    Page = "catalog"
	PageScript     Page = "script"
)

// OutputPages 生成脚本时查找已生成命令的顺序
var OutputPages = []Page{PageResolution, PagePreset, PageDPI, PageCatalog}

// ParsePage 校验客户端传入的页面名
func ParsePage(s string) (Page, bool) {
	switch p := Page(s); p {
	case PageResolution, PagePreset, PageDPI, PageCatalog, PageScript:
		return p, true
	}
	return "", false
}
