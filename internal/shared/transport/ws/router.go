package ws

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"IslandConquest/internal/shared/logs"
	"IslandConquest/internal/shared/transport"
	"IslandConquest/modules/kit/errx"
	"IslandConquest/modules/kit/logx"
)

type HandlerFunc func(ctx context.Context, req *WsMsgReq, resp *WsMsgResp)

// Group 同一前缀下的一组路由，例如 room.create 中的 room。
type Group struct {
	prefix string
	router *Router
}

func (g *Group) Handle(name string, h HandlerFunc) {
	g.router.routes[g.prefix+"."+name] = h
}

// Router 按 "group.handler" 分发 ws 请求。
type Router struct {
	routes map[string]HandlerFunc
	log    logx.Logger
}

func NewRouter(l logx.Logger) *Router {
	if l == nil {
		l = logx.NewZapLogger(logs.Logger())
	}
	return &Router{routes: make(map[string]HandlerFunc), log: l}
}

func (r *Router) Group(prefix string) *Group {
	return &Group{prefix: prefix, router: r}
}

// Routes 已注册的全部路由名，有序。
func (r *Router) Routes() []string {
	out := make([]string, 0, len(r.routes))
	for name := range r.routes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Dispatch 应答先置为系统错误，handler 未设置时不会误报成功。
func (r *Router) Dispatch(req *WsMsgReq, resp *WsMsgResp) {
	action := "WS unknown"
	if req != nil && req.Body != nil {
		action = "WS " + req.Body.Name
	}
	ctx := transport.NewContext(action)
	defer r.writeAccessLog(ctx, resp)

	if req == nil || req.Body == nil || resp == nil || resp.Body == nil {
		setError(resp, transport.InvalidParam, "参数有误")
		return
	}
	resp.Body.Code = transport.SystemError
	resp.Body.Msg = nil

	h, msg := r.lookup(req.Body.Name)
	if h == nil {
		setError(resp, transport.InvalidParam, msg)
		return
	}
	r.invoke(ctx, h, req, resp)
}

func (r *Router) lookup(name string) (HandlerFunc, string) {
	prefix, handler, ok := strings.Cut(name, ".")
	if !ok || prefix == "" || handler == "" || strings.Contains(handler, ".") {
		return nil, "路由参数有误"
	}
	h := r.routes[name]
	if h == nil {
		return nil, "路由不存在"
	}
	return h, ""
}

// invoke handler panic 只影响当前请求，连接继续读。
func (r *Router) invoke(ctx context.Context, h HandlerFunc, req *WsMsgReq, resp *WsMsgResp) {
	defer func() {
		if p := recover(); p != nil {
			err := errx.ErrInternal.WithCause(fmt.Errorf("ws handler panic: %v", p))
			logx.ReportSysErrorWithLoggerContext(ctx, r.log, logx.NewSysLog("WS "+req.Body.Name, err))
			setError(resp, transport.SystemError, "服务器内部错误")
		}
	}()
	h(ctx, req, resp)
}

func setError(resp *WsMsgResp, code int, msg string) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = code
	resp.Body.Msg = msg
}

func (r *Router) writeAccessLog(ctx context.Context, resp *WsMsgResp) {
	code := transport.SystemError
	if resp != nil && resp.Body != nil {
		code = resp.Body.Code
	}
	transport.SetBizCode(ctx, transport.BizCode(code))
	transport.WriteAccessLog(ctx, r.log)
}

// Registrar 业务模块把自己的路由挂到 Router 上。
type Registrar interface {
	WsRegister(r *Router)
}
