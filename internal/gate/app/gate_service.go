package app

import (
	"context"
	"errors"

	"IslandConquest/internal/gate/app/model"
	roomapp "IslandConquest/internal/room/app"
	"IslandConquest/internal/shared/actor/messages"
	"IslandConquest/internal/shared/security"
	"IslandConquest/internal/shared/session"
)

// GateService 把客户端指令翻译成房间运行时调用，座位由调用方给出。
type GateService struct {
	rooms RoomRuntime
}

func NewGateService(rooms RoomRuntime) *GateService {
	return &GateService{rooms: rooms}
}

func (g *GateService) ready() error {
	if g == nil || g.rooms == nil {
		return ErrUnavailable.WithReason(ReasonUpstreamUnavailable)
	}
	return nil
}

func (g *GateService) CreateRoom(ctx context.Context, req model.CreateRoomReq) (*model.SeatResp, error) {
	if err := g.ready(); err != nil {
		return nil, err
	}
	seat, err := g.rooms.CreateRoom(ctx, req.Name)
	if err != nil {
		return nil, wrapTechErr(err)
	}
	return seatResp(seat.RoomID, seat.PlayerID), nil
}

func (g *GateService) JoinRoom(ctx context.Context, req model.JoinRoomReq) (*model.SeatResp, error) {
	if err := g.ready(); err != nil {
		return nil, err
	}
	if req.RoomID == "" {
		return nil, roomapp.ErrRoomNotFound
	}
	seat, err := g.rooms.JoinRoom(ctx, req.RoomID, req.Name)
	if err != nil {
		return nil, wrapTechErr(err)
	}
	return seatResp(seat.RoomID, seat.PlayerID), nil
}

// seatResp 没有密钥时不下发 token，不算失败。
func seatResp(roomID string, playerID int) *model.SeatResp {
	resp := &model.SeatResp{RoomID: roomID, PlayerID: playerID}
	if !security.SeatTokenEnabled() {
		return resp
	}
	if token, err := security.AwardSeat(roomID, playerID); err == nil {
		resp.Token = token
	}
	return resp
}

// Resume 校验令牌并确认房间还在，返回当前视角。
func (g *GateService) Resume(ctx context.Context, req model.ResumeReq) (session.Seat, *messages.GameView, error) {
	if err := g.ready(); err != nil {
		return session.Seat{}, nil, err
	}
	if !security.SeatTokenEnabled() {
		return session.Seat{}, nil, ErrResumeUnavailable
	}
	claims, err := security.ParseSeat(req.Token)
	if err != nil {
		return session.Seat{}, nil, ErrSeatTokenInvalid.WithCause(err)
	}
	seat := session.Seat{RoomID: claims.RoomID, PlayerID: claims.PlayerID}
	view, err := g.rooms.View(ctx, seat.RoomID, seat.PlayerID)
	if err != nil {
		return session.Seat{}, nil, wrapTechErr(err)
	}
	return seat, view, nil
}

func (g *GateService) StartGame(ctx context.Context, seat session.Seat) error {
	if err := g.ready(); err != nil {
		return err
	}
	return wrapTechErr(g.rooms.StartGame(ctx, seat.RoomID, seat.PlayerID))
}

func (g *GateService) MoveUnit(ctx context.Context, seat session.Seat, req model.MoveUnitReq) error {
	if err := g.ready(); err != nil {
		return err
	}
	return wrapTechErr(g.rooms.MoveUnit(ctx, seat.RoomID, seat.PlayerID, req.UnitID, req.Row, req.Col))
}

func (g *GateService) ProduceUnit(ctx context.Context, seat session.Seat, req model.ProduceUnitReq) (*model.ProduceUnitResp, error) {
	if err := g.ready(); err != nil {
		return nil, err
	}
	id, err := g.rooms.ProduceUnit(ctx, seat.RoomID, seat.PlayerID, req.Row, req.Col, req.Type)
	if err != nil {
		return nil, wrapTechErr(err)
	}
	return &model.ProduceUnitResp{UnitID: id}, nil
}

func (g *GateService) EndTurn(ctx context.Context, seat session.Seat) (*model.EndTurnResp, error) {
	if err := g.ready(); err != nil {
		return nil, err
	}
	res, err := g.rooms.EndTurn(ctx, seat.RoomID, seat.PlayerID)
	if err != nil {
		return nil, wrapTechErr(err)
	}
	if res == nil {
		return nil, ErrInternalServer.WithReason(ReasonUpstreamBadResponse)
	}
	return &model.EndTurnResp{Turn: res.Turn, Resolved: res.Resolved}, nil
}

func (g *GateService) View(ctx context.Context, seat session.Seat) (*messages.GameView, error) {
	if err := g.ready(); err != nil {
		return nil, err
	}
	view, err := g.rooms.View(ctx, seat.RoomID, seat.PlayerID)
	if err != nil {
		return nil, wrapTechErr(err)
	}
	return view, nil
}

func (g *GateService) ListRooms(ctx context.Context) ([]model.RoomSummary, error) {
	if err := g.ready(); err != nil {
		return nil, err
	}
	list, err := g.rooms.ListRooms(ctx)
	if err != nil {
		return nil, wrapTechErr(err)
	}
	out := make([]model.RoomSummary, 0, len(list))
	for _, r := range list {
		out = append(out, model.RoomSummary{RoomID: r.RoomId, Players: r.Players, Started: r.Started, Turn: r.Turn})
	}
	return out, nil
}

func (g *GateService) CloseRoom(ctx context.Context, roomID string) error {
	if err := g.ready(); err != nil {
		return err
	}
	return wrapTechErr(g.rooms.CloseRoom(ctx, roomID))
}

// IsRoomGone 房间已被回收时，调用方应解除本地座位绑定。
func IsRoomGone(err error) bool {
	return errors.Is(err, roomapp.ErrRoomNotFound)
}
