package domain

import (
	"errors"
	"fmt"
)

// 错误类型（返回给 UI 层）
// 输入类错误包装在 *InputError 中，调用方既可匹配类型也可获取字段名
var (
	ErrMissingInput         = errors.New("missing input")
	ErrNonNumericInput      = errors.New("non-numeric input")
	ErrOutOfRangeInput      = errors.New("out of range input")
	ErrEmptyCommandSet      = errors.New("no executable commands")
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
	ErrNotFound             = errors.New("not found")
	ErrNoCommand            = errors.New("no command to apply")
	ErrBadRequest           = errors.New("malformed request")
)

// InputError 字段级校验失败
type InputError struct {
	Field string
	Value string
	Err   error
}

func (e *InputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// NewInputError 创建字段级错误
func NewInputError(field, value string, kind error) error {
	return &InputError{Field: field, Value: value, Err: kind}
}

// IsInputError 是否为输入校验类错误
func IsInputError(err error) bool {
	return errors.Is(err, ErrMissingInput) ||
		errors.Is(err, ErrNonNumericInput) ||
		errors.Is(err, ErrOutOfRangeInput)
}

// ErrorKind 返回错误类型标识（用于 API 响应）
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingInput):
		return "missing_input"
	case errors.Is(err, ErrNonNumericInput):
		return "non_numeric_input"
	case errors.Is(err, ErrOutOfRangeInput):
		return "out_of_range_input"
	case errors.Is(err, ErrEmptyCommandSet):
		return "empty_command_set"
	case errors.Is(err, ErrClipboardUnavailable):
		return "clipboard_unavailable"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrNoCommand):
		return "no_command"
	case errors.Is(err, ErrBadRequest):
		return "bad_request"
	default:
		return "internal"
	}
}

// UserMessage 返回展示给用户的提示文案
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingInput):
		return "Fill in all fields first"
	case errors.Is(err, ErrNonNumericInput):
		return "Enter valid numbers"
	case errors.Is(err, ErrOutOfRangeInput):
		return "Values must be greater than 0"
	case errors.Is(err, ErrEmptyCommandSet):
		return "No valid ADB commands to run"
	case errors.Is(err, ErrClipboardUnavailable):
		return "Copy is not supported here"
	case errors.Is(err, ErrNotFound):
		return "Item not found"
	case errors.Is(err, ErrNoCommand):
		return "No command to apply"
	case errors.Is(err, ErrBadRequest):
		return "Invalid request"
	default:
		return "Something went wrong"
	}
}
