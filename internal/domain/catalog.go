package domain

// Preset 分辨率 + DPI 预设
type Preset struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Resolution  Resolution `json:"resolution"`
	Density     int        `json:"density"`
	Description string     `json:"description"`
	Tip         string     `json:"tip,omitempty"`
}

// DensityPreset DPI 快捷预设
type DensityPreset struct {
	Density     int    `json:"density"`
	Description string `json:"description"`
}

// CatalogCommand ADB 命令参考条目
type CatalogCommand struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Code        string `json:"code"` // 一行或多行 adb 命令
	Description string `json:"description"`
}

// CommandGroup 按分类分组的命令
type CommandGroup struct {
	Category string           `json:"category"`
	Commands []CatalogCommand `json:"commands"`
}

// MethodID 执行方式（固定集合）
type MethodID string

const (
	MethodTermux  MethodID = "termux"
	MethodLADB    MethodID = "ladb"
	MethodShizuku MethodID = "shizuku"
)

// GuideStep 执行方式的安装指引步骤
type GuideStep struct {
	Title  string   `json:"title"`
	Detail string   `json:"detail,omitempty"`
	Code   []string `json:"code,omitempty"`
	Link   string   `json:"link,omitempty"`
}

// ExecutionMethod 脚本在设备上的执行方式
type ExecutionMethod struct {
	ID           MethodID    `json:"id"`
	DisplayName  string      `json:"display_name"`
	Icon         string      `json:"icon"`
	Color        string      `json:"color"`
	Summary      string      `json:"summary"`
	Guide        []GuideStep `json:"guide"`
	Note         string      `json:"note,omitempty"`
	AppLaunchURI string      `json:"app_launch_uri"`
}
