package tracex

import (
	"context"
	"testing"
)

func TestTraceID_RoundTrip(t *testing.T) {
	ctx := context.Background()
	ctx = WithTraceID(ctx, "t-1")
	if got, ok := TraceIDFrom(ctx); !ok || got != "t-1" {
		t.Fatalf("期望 TraceIDFrom round-trip 成功，got=%q ok=%v", got, ok)
	}
	if _, ok := SpanIDFrom(ctx); ok {
		t.Fatalf("期望未设置 span 时返回 false")
	}
	if WithSpanID(ctx, "") != ctx {
		t.Fatalf("空 span 不应产生新 ctx")
	}
}

func TestSeat_空房间号忽略(t *testing.T) {
	ctx := WithSeat(context.Background(), "", 2)
	if _, ok := SeatFrom(ctx); ok {
		t.Fatalf("空房间号不应写入")
	}
	ctx = WithSeat(ctx, "042QZ", 3)
	s, ok := SeatFrom(ctx)
	if !ok || s.RoomID != "042QZ" || s.PlayerID != 3 {
		t.Fatalf("got=%+v ok=%v", s, ok)
	}
	if _, ok := TraceIDFrom(ctx); ok {
		t.Fatalf("座位不应被当成 trace")
	}
}

func TestNewTraceID_长度为32(t *testing.T) {
	if got := NewTraceID(); len(got) != 32 {
		t.Fatalf("期望 32 位 hex trace_id, got=%q", got)
	}
}
