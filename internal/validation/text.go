package validation

import (
	"bytes"
	"encoding/json"
)

// Text 表单原始输入，JSON 中可以是字符串、数字或 null
type Text string

// UnmarshalJSON 数字按原样保留文本，交给 Parse* 校验
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		// 对象、数组、布尔值按非数字处理
		*t = Text(data)
		return nil
	}
	*t = Text(n.String())
	return nil
}

func (t Text) String() string { return string(t) }
