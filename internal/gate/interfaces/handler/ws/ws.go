package ws

import (
	"context"

	"IslandConquest/internal/gate/app/model"
	"IslandConquest/internal/gate/interfaces/handler"
	"IslandConquest/internal/shared/gameconfig/unit"
	"IslandConquest/internal/shared/session"
	"IslandConquest/internal/shared/transport"
	"IslandConquest/internal/shared/transport/ws"
	"IslandConquest/modules/kit/tracex"

	"go.uber.org/zap"
)

type WsHandler struct {
	gate *handler.Gate
}

func NewWsHandler(g *handler.Gate) *WsHandler {
	return &WsHandler{gate: g}
}

func (h *WsHandler) RegisterRoutes(r *ws.Router) {
	roomGroup := r.Group("room")
	roomGroup.Handle("create", h.createRoom)
	roomGroup.Handle("join", h.joinRoom)
	roomGroup.Handle("start", h.startGame)
	roomGroup.Handle("resume", h.resume)
	roomGroup.Handle("view", h.view)
	roomGroup.Handle("catalog", h.catalog)

	unitGroup := r.Group("unit")
	unitGroup.Handle("move", h.moveUnit)
	unitGroup.Handle("produce", h.produceUnit)

	turnGroup := r.Group("turn")
	turnGroup.Handle("end", h.endTurn)
}

func validRequest(wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) bool {
	return wsReq != nil && wsReq.Body != nil && wsReq.Conn != nil && wsResp != nil && wsResp.Body != nil
}

func (h *WsHandler) createRoom(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	if !validRequest(wsReq, wsResp) {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	var req model.CreateRoomReq
	if err := ws.BindJSON(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}

	resp, err := h.gate.GateService.CreateRoom(ctx, req)
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	seat := session.Seat{RoomID: resp.RoomID, PlayerID: resp.PlayerID}
	h.gate.Bind(ctx, seat, wsReq.Conn)
	h.ok(wsResp, resp)
	h.pushView(ctx, seat, wsReq.Conn)
}

func (h *WsHandler) joinRoom(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	if !validRequest(wsReq, wsResp) {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	var req model.JoinRoomReq
	if err := ws.BindJSON(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}

	resp, err := h.gate.GateService.JoinRoom(ctx, req)
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	seat := session.Seat{RoomID: resp.RoomID, PlayerID: resp.PlayerID}
	h.gate.Bind(ctx, seat, wsReq.Conn)
	h.ok(wsResp, resp)
	h.pushView(ctx, seat, wsReq.Conn)
}

func (h *WsHandler) resume(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	if !validRequest(wsReq, wsResp) {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	var req model.ResumeReq
	if err := ws.BindJSON(wsReq, &req); err != nil || req.Token == "" {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}

	seat, view, err := h.gate.GateService.Resume(ctx, req)
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	h.gate.Bind(ctx, seat, wsReq.Conn)
	h.ok(wsResp, model.SeatResp{RoomID: seat.RoomID, PlayerID: seat.PlayerID})
	// 补推一帧当前状态；它先于应答入队，客户端按 seq 区分
	wsReq.Conn.Push(handler.GameUpdateMsg, view)
}

func (h *WsHandler) startGame(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	seat, ok := h.seat(ctx, wsReq, wsResp)
	if !ok {
		return
	}
	if err := h.gate.GateService.StartGame(ctx, seat); err != nil {
		h.roomError(ctx, wsReq, wsResp, err)
		return
	}
	h.ok(wsResp, struct{}{})
}

func (h *WsHandler) view(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	seat, ok := h.seat(ctx, wsReq, wsResp)
	if !ok {
		return
	}
	v, err := h.gate.GateService.View(ctx, seat)
	if err != nil {
		h.roomError(ctx, wsReq, wsResp, err)
		return
	}
	h.ok(wsResp, v)
}

// catalog 兵种目录，不需要入座。
func (h *WsHandler) catalog(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	h.ok(wsResp, model.CatalogResp{Units: unit.All()})
}

func (h *WsHandler) moveUnit(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	if !validRequest(wsReq, wsResp) {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	var req model.MoveUnitReq
	if err := ws.BindJSON(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	seat, err := h.gate.SeatOf(ctx, wsReq.Conn, req.RoomID)
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	if err := h.gate.GateService.MoveUnit(ctx, seat, req); err != nil {
		h.roomError(ctx, wsReq, wsResp, err)
		return
	}
	h.ok(wsResp, struct{}{})
}

func (h *WsHandler) produceUnit(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	if !validRequest(wsReq, wsResp) {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	var req model.ProduceUnitReq
	if err := ws.BindJSON(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	seat, err := h.gate.SeatOf(ctx, wsReq.Conn, req.RoomID)
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	resp, err := h.gate.GateService.ProduceUnit(ctx, seat, req)
	if err != nil {
		h.roomError(ctx, wsReq, wsResp, err)
		return
	}
	h.ok(wsResp, resp)
}

func (h *WsHandler) endTurn(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	seat, ok := h.seat(ctx, wsReq, wsResp)
	if !ok {
		return
	}
	resp, err := h.gate.GateService.EndTurn(ctx, seat)
	if err != nil {
		h.roomError(ctx, wsReq, wsResp, err)
		return
	}
	h.ok(wsResp, resp)
}

// pushView 入座前房间发出的大厅广播到不了本连接，绑定后补推一帧。
func (h *WsHandler) pushView(ctx context.Context, seat session.Seat, conn ws.WSConn) {
	view, err := h.gate.GateService.View(ctx, seat)
	if err != nil {
		h.gate.Log.WithContext(ctx).Warn("push view after bind failed", zap.String("room_id", seat.RoomID), zap.Error(err))
		return
	}
	conn.Push(handler.GameUpdateMsg, view)
}

// seat 解析只带 room_id 的请求并取出绑定座位。
func (h *WsHandler) seat(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) (session.Seat, bool) {
	if !validRequest(wsReq, wsResp) {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return session.Seat{}, false
	}
	var req model.RoomReq
	if err := ws.BindJSON(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return session.Seat{}, false
	}
	seat, err := h.gate.SeatOf(ctx, wsReq.Conn, req.RoomID)
	if err != nil {
		h.error(ctx, wsResp, err)
		return session.Seat{}, false
	}
	return seat, true
}

func (h *WsHandler) ok(resp *ws.WsMsgResp, data any) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = transport.OK
	resp.Body.Msg = data
}

func (h *WsHandler) fail(resp *ws.WsMsgResp, code int, msg string) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = code
	if msg != "" {
		resp.Body.Msg = msg
	}
}

func (h *WsHandler) error(ctx context.Context, resp *ws.WsMsgResp, err error) {
	action := "ws"
	if resp != nil && resp.Body != nil {
		action = "WS " + resp.Body.Name
	}
	code, msg := handler.HandleError(ctx, h.gate.Log, action, err)
	h.fail(resp, code, msg)
}

func (h *WsHandler) roomError(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp, err error) {
	if seat, ok := h.gate.Session.GetSeat(wsReq.Conn); ok {
		ctx = tracex.WithSeat(ctx, seat.RoomID, seat.PlayerID)
	}
	h.gate.Forget(wsReq.Conn, err)
	h.error(ctx, wsResp, err)
}
