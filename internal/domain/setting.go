package domain

import "time"

// Setting 持久化的键值配置
type Setting struct {
	Key       string    `gorm:"primaryKey;type:varchar(64)" json:"key"`
	Value     string    `gorm:"type:varchar(255);not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// 开关在存储中的取值
const (
	ToggleOn  = "on"
	ToggleOff = "off"
)

// ToggleValue 布尔值转存储值
func ToggleValue(on bool) string {
	if on {
		return ToggleOn
	}
	return ToggleOff
}

// ParseToggle 解析存储值，兼容旧版的 "true"
func ParseToggle(v string) bool {
	return v == ToggleOn || v == "true"
}
