package dpi

// 常见 DPI 对应的设备档位说明
var descriptions = map[int]string{
	120: "Very old devices",
	160: "Old low-end devices",
	240: "Low-end devices",
	280: "Entry-level devices",
	320: "Mid-tier devices",
	360: "Standard / default",
	400: "Mid-range devices",
	440: "High-end devices",
	480: "Flagship devices",
	560: "Ultra HD / extreme",
	640: "Maximum limit",
}

// CustomDescription 未收录 DPI 的说明
const CustomDescription = "Custom DPI"

// Describe 返回 DPI 的设备档位说明
func Describe(density int) string {
	if d, ok := descriptions[density]; ok {
		return d
	}
	return CustomDescription
}
