package handler

import (
	"context"
	"strings"

	"IslandConquest/internal/gate/app"
	roomapp "IslandConquest/internal/room/app"
	"IslandConquest/internal/shared/session"
	"IslandConquest/internal/shared/transport"
	"IslandConquest/internal/shared/transport/ws"
	"IslandConquest/modules/kit/logx"
)

// Gate ws 与 http 处理器共享的依赖。
type Gate struct {
	Session     session.Manager
	GateService *app.GateService
	Log         logx.Logger
}

func NewGate(s session.Manager, rooms app.RoomRuntime, l logx.Logger) *Gate {
	if l == nil {
		l = logx.Nop()
	}
	return &Gate{
		Session:     s,
		GateService: app.NewGateService(rooms),
		Log:         l,
	}
}

// SeatOf 取连接绑定的座位；roomID 非空时必须与绑定一致，房号不区分大小写。
func (g *Gate) SeatOf(ctx context.Context, conn ws.WSConn, roomID string) (session.Seat, error) {
	seat, ok := g.Session.GetSeat(conn)
	if !ok {
		return session.Seat{}, app.ErrNoSeat
	}
	transport.SetSeat(ctx, seat.RoomID, seat.PlayerID)
	if roomID != "" && !strings.EqualFold(roomID, seat.RoomID) {
		return session.Seat{}, roomapp.ErrNotInRoom
	}
	return seat, nil
}

// Bind 座位绑到连接上，访问日志同步记下。
func (g *Gate) Bind(ctx context.Context, seat session.Seat, conn ws.WSConn) {
	g.Session.Bind(seat, conn)
	transport.SetSeat(ctx, seat.RoomID, seat.PlayerID)
}

// Forget 房间已不存在时解除该连接的座位。
func (g *Gate) Forget(conn ws.WSConn, err error) {
	if app.IsRoomGone(err) {
		g.Session.UnbindConn(conn)
	}
}
