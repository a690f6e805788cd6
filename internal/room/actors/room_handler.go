package actors

import (
	"IslandConquest/internal/room/app"
	"IslandConquest/internal/room/entity"
	"IslandConquest/internal/room/service"
	"IslandConquest/internal/shared/actor/messages"
	"IslandConquest/internal/shared/gameconfig/unit"
	"IslandConquest/internal/shared/logs"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

type RoomHandler struct{}

var RH = &RoomHandler{}

func (h *RoomHandler) HandleJoinRoom(ctx actor.Context, p *RoomActor, req *messages.HRJoinRoom) {
	player, err := p.opts.Service.Join(p.room, req.Name)
	if err != nil {
		h.reject(ctx, p, "join", req.PlayerId, err)
		return
	}
	logs.Info("player joined",
		zap.String("room_id", p.roomID),
		zap.Int("player_id", int(player.ID())),
		zap.String("name", player.Name()))
	ctx.Respond(ok(&messages.RHSeat{RoomId: p.roomID, PlayerId: int(player.ID())}))
	p.broadcast()
	p.reportStatus(ctx)
}

func (h *RoomHandler) HandleStartGame(ctx actor.Context, p *RoomActor, req *messages.HRStartGame) {
	err := p.opts.Service.Start(p.room, entity.PlayerID(req.PlayerId), p.rng, p.opts.Now())
	if err != nil {
		h.reject(ctx, p, "start", req.PlayerId, err)
		return
	}
	p.armDeadline(ctx)
	logs.Info("room started",
		zap.String("room_id", p.roomID),
		zap.Int("players", p.room.PlayerCount()),
		zap.Duration("turn_timeout", p.opts.TurnTimeout))
	ctx.Respond(ok(nil))
	p.broadcast()
	p.reportStatus(ctx)
}

func (h *RoomHandler) HandleMoveUnit(ctx actor.Context, p *RoomActor, req *messages.HRMoveUnit) {
	to := entity.At(req.Row, req.Col)
	err := p.opts.Service.Move(p.room, entity.PlayerID(req.PlayerId), entity.UnitID(req.UnitId), to)
	if err != nil {
		h.reject(ctx, p, "move", req.PlayerId, err)
		return
	}
	ctx.Respond(ok(nil))
	p.broadcast()
}

func (h *RoomHandler) HandleProduceUnit(ctx actor.Context, p *RoomActor, req *messages.HRProduceUnit) {
	at := entity.At(req.Row, req.Col)
	id, err := p.opts.Service.Produce(p.room, entity.PlayerID(req.PlayerId), at, unit.Type(req.UnitType))
	if err != nil {
		h.reject(ctx, p, "produce", req.PlayerId, err)
		return
	}
	ctx.Respond(ok(uint64(id)))
	p.broadcast()
}

func (h *RoomHandler) HandleEndTurn(ctx actor.Context, p *RoomActor, req *messages.HREndTurn) {
	all, err := p.opts.Service.EndTurn(p.room, entity.PlayerID(req.PlayerId))
	if err != nil {
		h.reject(ctx, p, "end_turn", req.PlayerId, err)
		return
	}
	if !all {
		ctx.Respond(ok(&messages.RHEndTurn{Turn: p.room.Turn()}))
		return
	}
	p.resolve(ctx, service.TriggerAllReady)
	ctx.Respond(ok(&messages.RHEndTurn{Turn: p.room.Turn(), Resolved: true}))
}

func (h *RoomHandler) HandleRoomView(ctx actor.Context, p *RoomActor, req *messages.HRRoomView) {
	view, found := service.BuildView(p.room, entity.PlayerID(req.PlayerId), p.opts.TurnTimeout)
	if !found {
		ctx.Respond(fail(app.ErrNotInRoom))
		return
	}
	ctx.Respond(ok(view))
}

// reject 拒绝的指令不改状态、不广播，只回给发起方。
func (h *RoomHandler) reject(ctx actor.Context, p *RoomActor, command string, playerID int, err error) {
	reason := app.ReasonOf(err)
	p.opts.Metrics.CommandRejected(command, reason)
	fields := []zap.Field{
		zap.String("room_id", p.roomID),
		zap.Int("player_id", playerID),
		zap.String("command", command),
		zap.String("reason", reason),
	}
	if app.IsBiz(err) {
		logs.Debug("command rejected", fields...)
	} else {
		logs.Error("command failed", append(fields, zap.Error(err))...)
	}
	ctx.Respond(fail(err))
}
