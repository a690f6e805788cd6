package transport

import (
	"testing"

	"IslandConquest/modules/kit/logx"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWriteAccessLog_带座位与原因(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := logx.NewZapLogger(zap.New(core))

	ctx := NewContext("WS unit.move")
	SetSeat(ctx, "042QX", 2)
	SetBizCode(ctx, BizCode(NoMovesLeft))
	SetErrorReason(ctx, "NO_MOVES_LEFT")
	WriteAccessLog(ctx, l)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("期望 1 条访问日志, got=%d", len(entries))
	}
	e := entries[0]
	if e.Level != zapcore.WarnLevel {
		t.Fatalf("业务拒绝应为 WARN, got=%v", e.Level)
	}
	m := e.ContextMap()
	if m["room_id"] != "042QX" || m["player_id"] != int64(2) {
		t.Fatalf("缺少座位字段: %v", m)
	}
	if m["error_reason"] != "NO_MOVES_LEFT" || m["result"] != "failure" {
		t.Fatalf("字段不对: %v", m)
	}
	if _, ok := m["trace_id"]; !ok {
		t.Fatalf("缺少 trace_id: %v", m)
	}
}

func TestAccessLog_默认系统错误(t *testing.T) {
	ctx := NewContext("")
	al := FromContext(ctx)
	if al == nil || al.BizCode != BizCode(SystemError) || al.action != "unknown" {
		t.Fatalf("got=%+v", al)
	}
	SetSeat(ctx, "", 3)
	if al.RoomID != "" {
		t.Fatalf("空房间号不应写入")
	}
}
