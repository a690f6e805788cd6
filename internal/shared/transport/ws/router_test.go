package ws

import (
	"context"
	"reflect"
	"testing"

	"IslandConquest/internal/shared/transport"
	"IslandConquest/modules/kit/logx"
)

func dispatch(r *Router, name string) *RespBody {
	resp := &WsMsgResp{Body: &RespBody{Name: name}}
	r.Dispatch(&WsMsgReq{Body: &ReqBody{Name: name}}, resp)
	return resp.Body
}

func TestRouter_路由名解析(t *testing.T) {
	r := NewRouter(logx.Nop())
	r.Group("turn").Handle("end", func(ctx context.Context, req *WsMsgReq, resp *WsMsgResp) {
		resp.Body.Code = transport.OK
	})
	r.Group("room").Handle("view", func(ctx context.Context, req *WsMsgReq, resp *WsMsgResp) {})

	if got := r.Routes(); !reflect.DeepEqual(got, []string{"room.view", "turn.end"}) {
		t.Fatalf("routes=%v", got)
	}
	if b := dispatch(r, "turn.end"); b.Code != transport.OK {
		t.Fatalf("期望成功, got=%d", b.Code)
	}
	// handler 没写 code 时保持系统错误
	if b := dispatch(r, "room.view"); b.Code != transport.SystemError {
		t.Fatalf("期望系统错误, got=%d", b.Code)
	}
	for _, name := range []string{"turn", "turn.", ".end", "turn.end.x", "unit.move"} {
		if b := dispatch(r, name); b.Code != transport.InvalidParam {
			t.Fatalf("%q 期望参数错误, got=%d", name, b.Code)
		}
	}
}

func TestRouter_handler崩溃不外溢(t *testing.T) {
	r := NewRouter(logx.Nop())
	r.Group("unit").Handle("move", func(ctx context.Context, req *WsMsgReq, resp *WsMsgResp) {
		panic("boom")
	})
	if b := dispatch(r, "unit.move"); b.Code != transport.SystemError {
		t.Fatalf("期望系统错误, got=%d", b.Code)
	}
}
