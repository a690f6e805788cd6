package errx

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Is_只按code比较语义(t *testing.T) {
	e1 := NewBiz("ROOM_NOT_FOUND", "房间不存在").WithData("room_id", "001AB").WithCause(errors.New("cause1"))
	e2 := NewBiz("ROOM_NOT_FOUND", "x2").WithData("room_id", "002CD").WithCause(errors.New("cause2"))
	if !errors.Is(e1, e2) {
		t.Fatalf("期望 errors.Is(e1, e2)==true（只按 code 判断语义），e1=%v e2=%v", e1, e2)
	}
	if errors.Is(e1, NewBiz("ROOM_FULL", "")) {
		t.Fatalf("期望不同 code 不相等")
	}
}

func TestError_业务错误不捕获栈_但保留cause链(t *testing.T) {
	cause := errors.New("ledger short")
	err := NewBiz("INVALID_COMMAND", "资源不足").WithCause(cause)
	if got := err.Stack(); got != nil {
		t.Fatalf("期望业务错误不捕获栈，got=%v", got)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("期望 cause 链不丢，err=%v", err)
	}
	if !err.IsBiz() {
		t.Fatalf("期望 IsBiz()==true")
	}
}

func TestError_系统错误捕获一次栈_且不重复捕获(t *testing.T) {
	cause := errors.New("actor ask timeout")
	sys := NewSys("SYS_ACTOR_TIMEOUT", "请求超时").WithCause(cause)
	if got := sys.Stack(); len(got) == 0 {
		t.Fatalf("期望系统错误捕获栈（发生/转换处），got=%v", got)
	}

	sys2 := NewSys("SYS_GATE_ERROR", "网关异常").WithCause(sys)
	if got := sys2.Stack(); got != nil {
		t.Fatalf("期望上层系统错误不重复捕获栈（cause 链里已有栈），got=%v", got)
	}
	if sys2.IsBiz() {
		t.Fatalf("期望系统错误 IsBiz()==false")
	}
}

func TestError_Data_防止外部map污染(t *testing.T) {
	m := map[string]any{"unit_id": 7}
	err := NewBiz("INVALID_COMMAND", "").WithDataMap(m)
	m["unit_id"] = 8
	if got := err.Data()["unit_id"]; got != 7 {
		t.Fatalf("期望构造时复制 data，避免外部后续修改影响错误上下文；got=%v", got)
	}
}

func TestError_WithReason_写入reason(t *testing.T) {
	err := NewBiz("INVALID_COMMAND", "兵力不足").WithReason(reasonStub("NO_MOVES_LEFT"))
	if got := err.Reason(); got != "NO_MOVES_LEFT" {
		t.Fatalf("期望 reason=NO_MOVES_LEFT, got=%q", got)
	}
}

type reasonStub string

func (r reasonStub) ReasonCode() string { return string(r) }

func TestIsBiz_沿链查找(t *testing.T) {
	biz := NewBiz("ROOM_FULL", "房间已满")
	if !IsBiz(fmt.Errorf("join: %w", biz)) {
		t.Fatalf("期望包装后的业务错误仍被识别")
	}
	if IsBiz(ErrTimeout) || IsBiz(errors.New("plain")) || IsBiz(nil) {
		t.Fatalf("系统错误与普通错误不是业务错误")
	}
}

func TestWith_不改动哨兵(t *testing.T) {
	_ = ErrInternal.WithData("room_id", "001AB").WithCause(errors.New("x"))
	if ErrInternal.Data() != nil || ErrInternal.Unwrap() != nil || ErrInternal.Stack() != nil {
		t.Fatalf("哨兵错误被修改: %v", ErrInternal)
	}
	if got := ErrInternal.Error(); got != "INTERNAL_ERROR: 服务器内部错误" {
		t.Fatalf("got=%q", got)
	}
}
