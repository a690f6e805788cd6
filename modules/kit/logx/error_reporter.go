package logx

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

const (
	maxCauseDepth = 16
	maxStackDepth = 24
)

// ErrorLog 错误打印前拆出来的各个字段。
type ErrorLog struct {
	Error      string
	Code       string
	Msg        string
	Reason     string
	Data       map[string]any
	CauseChain []string
	Origin     string
	Stack      string
}

// BuildErrorLog 按 errx 暴露的方法取码、文案、reason、附加数据与发生处栈。
func BuildErrorLog(err error) ErrorLog {
	if err == nil {
		return ErrorLog{}
	}
	out := ErrorLog{Error: err.Error()}

	if v, ok := as[interface{ CodeText() string }](err); ok {
		out.Code = v.CodeText()
	}
	if v, ok := as[interface{ Msg() string }](err); ok {
		out.Msg = v.Msg()
	}
	if v, ok := as[interface{ Reason() string }](err); ok {
		out.Reason = v.Reason()
	}
	if v, ok := as[interface{ Data() map[string]any }](err); ok {
		out.Data = v.Data()
	}
	if v, ok := as[interface{ Stack() []uintptr }](err); ok {
		out.Origin, out.Stack = formatStack(v.Stack())
	}
	out.CauseChain = causeChain(err)
	return out
}

func as[T any](err error) (T, bool) {
	var v T
	ok := errors.As(err, &v)
	return v, ok
}

func causeChain(err error) []string {
	var out []string
	for cur := errors.Unwrap(err); cur != nil && len(out) < maxCauseDepth; cur = errors.Unwrap(cur) {
		out = append(out, fmt.Sprintf("%T: %v", cur, cur))
	}
	return out
}

// formatStack 第一帧作为 origin，其余逐行拼接。
func formatStack(pcs []uintptr) (string, string) {
	if len(pcs) == 0 {
		return "", ""
	}
	frames := runtime.CallersFrames(pcs)
	lines := make([]string, 0, 8)
	for len(lines) < maxStackDepth {
		f, more := frames.Next()
		if f.Function == "" && f.File == "" {
			break
		}
		lines = append(lines, f.Function+" "+f.File+":"+strconv.Itoa(f.Line))
		if !more {
			break
		}
	}
	if len(lines) == 0 {
		return "", ""
	}
	return lines[0], strings.Join(lines, "\n")
}
