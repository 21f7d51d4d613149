package validation

import (
	"errors"

	"github.com/adb-reso/adb-reso-go/internal/domain"
)

// Fields 收集一个表单中多个字段的校验结果
//
// 所有字段都会被检查；最终只报告一个错误，优先级为
// 缺失 > 非数字 > 越界，与页面上"先检查是否填写、再检查格式、最后检查取值"的顺序一致。
type Fields struct {
	err  error
	rank int
}

// Dimension 校验整数像素字段
func (f *Fields) Dimension(name, text string) int {
	v, err := ParseDimension(text)
	f.record(name, text, err)
	return v
}

// Density 校验整数 DPI 字段
func (f *Fields) Density(name, text string) int {
	v, err := ParseDensity(text)
	f.record(name, text, err)
	return v
}

// Measure 校验可为小数的正数字段
func (f *Fields) Measure(name, text string) float64 {
	v, err := ParseMeasure(text)
	f.record(name, text, err)
	return v
}

// Err 返回优先级最高的错误，全部通过时为 nil
func (f *Fields) Err() error {
	return f.err
}

func (f *Fields) record(name, text string, err error) {
	if err == nil {
		return
	}
	var kind error
	var ie *domain.InputError
	if errors.As(err, &ie) {
		kind = ie.Err
	} else {
		kind = err
	}

	r := rank(kind)
	if f.err == nil || r < f.rank {
		f.err = domain.NewInputError(name, text, kind)
		f.rank = r
	}
}

func rank(kind error) int {
	switch {
	case errors.Is(kind, domain.ErrMissingInput):
		return 0
	case errors.Is(kind, domain.ErrNonNumericInput):
		return 1
	default:
		return 2
	}
}
