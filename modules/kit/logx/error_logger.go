package logx

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// BizLog 业务拒绝（非法指令、房间已满等）。
type BizLog struct {
	Action  string
	Reason  string
	Message string
}

// SysLog 技术错误（超时、存储失败等）。
type SysLog struct {
	Action string
	Err    error
}

func NewBizLog(action, reason, message string) BizLog {
	return BizLog{Action: action, Reason: reason, Message: message}
}

func NewSysLog(action string, err error) SysLog {
	return SysLog{Action: action, Err: err}
}

// accessLevel 0 为 INFO，500 以上 ERROR，其余 WARN。
func accessLevel(bizCode int) zapcore.Level {
	switch {
	case bizCode == 0:
		return zapcore.InfoLevel
	case bizCode >= 500:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

func emit(l Logger, lvl zapcore.Level, msg string, fields []zap.Field) {
	switch lvl {
	case zapcore.ErrorLevel:
		l.Error(msg, fields...)
	case zapcore.WarnLevel:
		l.Warn(msg, fields...)
	case zapcore.DebugLevel:
		l.Debug(msg, fields...)
	default:
		l.Info(msg, fields...)
	}
}

// ReportAccessWithLoggerContext 每个 ws/http 请求一行访问日志。
func ReportAccessWithLoggerContext(ctx context.Context, l Logger, action string, bizCode int, fields ...zap.Field) {
	if l == nil {
		return
	}
	base := append([]zap.Field{
		zap.String("log_type", "access"),
		zap.String("action", action),
		zap.Int("biz_code", bizCode),
	}, fields...)
	emit(l.WithContext(ctx), accessLevel(bizCode), "access", base)
}

// ReportBizWithLoggerContext 业务拒绝记 INFO，不带栈。
func ReportBizWithLoggerContext(ctx context.Context, l Logger, biz BizLog, fields ...zap.Field) {
	if l == nil {
		return
	}
	if biz.Action == "" {
		biz.Action = "biz_reject"
	}
	base := []zap.Field{zap.String("err_type", "biz"), zap.String("action", biz.Action)}
	msg := biz.Action
	if biz.Reason != "" {
		base = append(base, zap.String("reason", biz.Reason))
		msg += ", reason:" + biz.Reason
	}
	if biz.Message != "" {
		base = append(base, zap.String("biz_message", biz.Message))
		msg += ", msg:" + biz.Message
	}
	emit(l.WithContext(ctx), zapcore.InfoLevel, msg, append(base, fields...))
}

// ReportSysErrorWithLoggerContext 技术错误记 ERROR，附 cause 链与发生处栈。
func ReportSysErrorWithLoggerContext(ctx context.Context, l Logger, sys SysLog, fields ...zap.Field) {
	if sys.Err == nil || l == nil {
		return
	}
	if sys.Action == "" {
		sys.Action = "sys_error"
	}
	meta := BuildErrorLog(sys.Err)
	base := []zap.Field{zap.String("err_type", "sys"), zap.String("action", sys.Action)}
	if meta.Code != "" {
		base = append(base, zap.String("error_code", meta.Code))
	}
	if len(meta.CauseChain) > 0 {
		base = append(base, zap.Strings("cause_chain", meta.CauseChain))
	}
	if len(meta.Data) > 0 {
		base = append(base, zap.Any("error_data", meta.Data))
	}
	if meta.Origin != "" {
		base = append(base, zap.String("origin_caller", meta.Origin), zap.String("stack_origin", meta.Stack))
	}

	msg := sys.Action
	if meta.Reason != "" {
		msg += ", reason:" + meta.Reason
	}
	msg += ", error:" + meta.Error
	if meta.Reason == "" && meta.Msg != "" {
		msg += ", msg:" + meta.Msg
	}
	emit(l.WithContext(ctx), zapcore.ErrorLevel, msg, append(base, fields...))
}
