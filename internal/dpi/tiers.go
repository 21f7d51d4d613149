package dpi

import (
	"fmt"
	"math"

	"github.com/adb-reso/adb-reso-go/internal/domain"
)

// TierInfo 分级表中的一行，Upper 为不含的上界
type TierInfo struct {
	Upper int                `json:"upper" mapstructure:"upper"`
	Tier  domain.DensityTier `json:"tier" mapstructure:"tier"`
	Label string             `json:"label" mapstructure:"label"`
	Color string             `json:"color" mapstructure:"color"`
}

// Table 按上界升序排列的分级表，最后一行兜底
type Table []TierInfo

// DefaultTable 默认六级分级
var DefaultTable = Table{
	{Upper: 200, Tier: domain.TierVeryLow, Label: "Very Low (Very Large UI)", Color: "#ef4444"},
	{Upper: 300, Tier: domain.TierLow, Label: "Low (Large UI)", Color: "#f59e0b"},
	{Upper: 350, Tier: domain.TierMedium, Label: "Medium (Normal UI)", Color: "#3b82f6"},
	{Upper: 420, Tier: domain.TierOptimal, Label: "Optimal (Standard)", Color: "#10b981"},
	{Upper: 500, Tier: domain.TierHigh, Label: "High (Small UI)", Color: "#8b5cf6"},
	{Upper: math.MaxInt, Tier: domain.TierVeryHigh, Label: "Very High (Very Small UI)", Color: "#ec4899"},
}

// NewTable 校验并创建分级表
func NewTable(rows []TierInfo) (Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("tier table is empty")
	}
	for i, row := range rows {
		if row.Tier == "" || row.Label == "" {
			return nil, fmt.Errorf("tier row %d: tier and label are required", i)
		}
		if i > 0 && row.Upper <= rows[i-1].Upper {
			return nil, fmt.Errorf("tier row %d: upper bound %d must be greater than %d", i, row.Upper, rows[i-1].Upper)
		}
	}
	t := make(Table, len(rows))
	copy(t, rows)
	return t, nil
}

// Classify 返回第一个 density < Upper 的行，超出所有上界时返回最后一行
func (t Table) Classify(density int) TierInfo {
	for _, row := range t {
		if density < row.Upper {
			return row
		}
	}
	return t[len(t)-1]
}

// Classify 使用默认分级表
func Classify(density int) TierInfo {
	return DefaultTable.Classify(density)
}
