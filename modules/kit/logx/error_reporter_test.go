package logx

import (
	"context"
	"errors"
	"testing"

	"IslandConquest/modules/kit/errx"
	"IslandConquest/modules/kit/tracex"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuildErrorLog_能提取语义与栈(t *testing.T) {
	cause := errors.New("mongo down")
	e := errx.NewSys("SYS_INTERNAL", "服务器内部错误").
		WithData("room_id", "042QX").
		WithCause(cause)

	meta := BuildErrorLog(e)
	if meta.Error == "" {
		t.Fatalf("期望 meta.Error 非空")
	}
	if meta.Code == "" {
		t.Fatalf("期望 meta.Code 非空")
	}
	if meta.Msg == "" {
		t.Fatalf("期望 meta.Msg 非空")
	}
	if meta.Data == nil || meta.Data["room_id"] != "042QX" {
		t.Fatalf("期望 meta.Data 包含 room_id=042QX, got=%v", meta.Data)
	}
	if len(meta.CauseChain) == 0 {
		t.Fatalf("期望 meta.CauseChain 非空")
	}
	if meta.Origin == "" || meta.Stack == "" {
		t.Fatalf("期望 meta.Origin/meta.Stack 非空（错误发生/转换处栈） origin=%q stack=%q", meta.Origin, meta.Stack)
	}
}

func TestBuildErrorLog_业务错误带reason(t *testing.T) {
	e := errx.NewBiz("INVALID_COMMAND", "行动力不足").WithData("reason", "NO_MOVES_LEFT")

	meta := BuildErrorLog(e)
	if meta.Reason != "NO_MOVES_LEFT" {
		t.Fatalf("期望 meta.Reason=NO_MOVES_LEFT, got=%q", meta.Reason)
	}
	if meta.Stack != "" {
		t.Fatalf("期望业务错误没有栈, got=%q", meta.Stack)
	}
}

func TestReport_日志级别(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapLogger(zap.New(core))
	ctx := tracex.WithSeat(context.Background(), "042QX", 2)

	ReportAccessWithLoggerContext(ctx, l, "WS unit.move", 0)
	ReportAccessWithLoggerContext(ctx, l, "WS unit.move", 101)
	ReportAccessWithLoggerContext(ctx, l, "WS unit.move", 500)
	ReportBizWithLoggerContext(ctx, l, NewBizLog("WS unit.move", "NO_MOVES_LEFT", "行动力不足"))
	ReportSysErrorWithLoggerContext(ctx, l, NewSysLog("WS turn.end", errx.NewSys("SYS_INTERNAL", "x")))

	want := []zapcore.Level{zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel, zapcore.InfoLevel, zapcore.ErrorLevel}
	entries := logs.All()
	if len(entries) != len(want) {
		t.Fatalf("期望 %d 条日志, got=%d", len(want), len(entries))
	}
	for i, e := range entries {
		if e.Level != want[i] {
			t.Fatalf("第 %d 条级别 got=%v want=%v", i, e.Level, want[i])
		}
		if e.ContextMap()["room_id"] != "042QX" {
			t.Fatalf("第 %d 条缺少 room_id: %v", i, e.ContextMap())
		}
	}
	if entries[3].ContextMap()["reason"] != "NO_MOVES_LEFT" {
		t.Fatalf("业务拒绝缺少 reason: %v", entries[3].ContextMap())
	}
}
