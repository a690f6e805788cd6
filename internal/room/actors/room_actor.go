package actors

import (
	"context"
	"time"

	"IslandConquest/internal/room/dc"
	"IslandConquest/internal/room/entity"
	"IslandConquest/internal/room/service"
	"IslandConquest/internal/shared/actor/messages"
	"IslandConquest/internal/shared/logs"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

type State int

const (
	None State = iota
	Init
	Online
	Offline
	Stopping
)

// RoomActor 房间的唯一写者：玩家指令、截止计时、归档刷新都在这里串行执行。
type RoomActor struct {
	state      State
	roomID     string
	opts       Options
	room       *entity.Room
	rng        service.Rand
	dc         *dc.RoomDC
	dispatcher *Dispatcher
	flushStop  chan struct{}
	deadline   *time.Timer
}

type flushTick struct{}

func (flushTick) NotInfluenceReceiveTimeout() {}

// deadlineTick 携带发出时的回合号，过期的直接丢弃。
type deadlineTick struct {
	Turn int
}

func (deadlineTick) NotInfluenceReceiveTimeout() {}

// roomStatus 房间状态变化后报给 manager，用于房间列表。
type roomStatus struct {
	Info messages.RoomInfo
}

func NewRoomActor(roomID string, opts Options) *RoomActor {
	return &RoomActor{
		state:      None,
		roomID:     roomID,
		opts:       opts,
		rng:        service.NewRand(opts.Seed()),
		dc:         dc.NewRoomDC(opts.Archive, opts.FlushEvery),
		dispatcher: NewDispatcher(),
	}
}

func (p *RoomActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		p.state = Init
		p.init(ctx)
		return
	case *actor.ReceiveTimeout:
		logs.Room(p.roomID).Info("room idle, tearing down")
		ctx.Stop(ctx.Self())
		return
	case *actor.Stopping:
		p.disarmDeadline()
		p.stopFlushLoop()
		p.closeDC()
		p.state = Stopping
		return
	case *actor.Stopped:
		p.disarmDeadline()
		p.stopFlushLoop()
		p.opts.Metrics.RoomStopped()
		p.state = Offline
		logs.Room(p.roomID).Info("room stopped")
		return
	case *actor.Restarting:
		// 重启会换一个新实例，旧实例的写协程要在这里收掉
		p.disarmDeadline()
		p.stopFlushLoop()
		p.closeDC()
		p.state = Init
		return
	case flushTick:
		if p.state != Online {
			return
		}
		if err := p.dc.Flush(context.TODO()); err != nil {
			logs.Room(p.roomID).Error("room periodic flush failed", zap.Error(err))
		}
		return
	case deadlineTick:
		p.onDeadline(ctx, msg)
		return
	case messages.RoomMessage:
		if msg == nil {
			ctx.Respond(fail(errNilRequest))
			return
		}
		if p.state != Online {
			ctx.Respond(fail(errRoomOffline))
			return
		}
		p.dispatcher.Dispatch(ctx, p, msg)
	default:
		return
	}
}

func (p *RoomActor) init(ctx actor.Context) {
	p.room = p.opts.Service.NewRoom(p.roomID, p.opts.Now())
	p.dc.Attach(p.room)
	p.state = Online
	p.startFlushLoop(ctx)
	if p.opts.IdleTimeout > 0 {
		ctx.SetReceiveTimeout(p.opts.IdleTimeout)
	}
	p.opts.Metrics.RoomSpawned()
	logs.Room(p.roomID).Info("room spawned")
}

func (p *RoomActor) closeDC() {
	closeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := p.dc.Close(closeCtx); err != nil {
		logs.Room(p.roomID).Error("room dc close failed", zap.Error(err))
	}
}

func (p *RoomActor) RoomID() string {
	return p.roomID
}

func (p *RoomActor) Room() *entity.Room {
	return p.room
}

func (p *RoomActor) onDeadline(ctx actor.Context, tick deadlineTick) {
	if p.state != Online || p.room == nil || !p.room.Started() {
		return
	}
	if tick.Turn != p.room.Turn() {
		return
	}
	p.resolve(ctx, service.TriggerDeadline)
}

// resolve 进入结算前先撤销计时器，结算后为新回合重新计时。
func (p *RoomActor) resolve(ctx actor.Context, trigger service.Trigger) service.Report {
	p.disarmDeadline()
	prevTurn := p.room.Turn()
	rep := p.opts.Service.Resolve(p.room, p.rng, trigger, p.opts.Now())
	p.armDeadline(ctx)

	p.opts.Metrics.TurnResolved(string(trigger))
	fields := []zap.Field{
		zap.String("room_id", p.roomID),
		zap.Int("turn", prevTurn),
		zap.String("trigger", string(trigger)),
		zap.Int("hits", len(rep.Hits)),
		zap.Int("killed", rep.Killed),
		zap.Int("healed", rep.Healed),
	}
	if len(rep.Eliminated) > 0 {
		ids := make([]int, 0, len(rep.Eliminated))
		for _, pid := range rep.Eliminated {
			ids = append(ids, int(pid))
		}
		fields = append(fields, zap.Ints("eliminated", ids))
	}
	logs.Info("turn resolved", fields...)

	p.broadcast()
	p.reportStatus(ctx)
	return rep
}

func (p *RoomActor) armDeadline(ctx actor.Context) {
	p.disarmDeadline()
	self := ctx.Self()
	root := ctx.ActorSystem().Root
	tick := deadlineTick{Turn: p.room.Turn()}
	p.deadline = time.AfterFunc(p.opts.TurnTimeout, func() {
		root.Send(self, tick)
	})
}

func (p *RoomActor) disarmDeadline() {
	if p.deadline == nil {
		return
	}
	p.deadline.Stop()
	p.deadline = nil
}

// broadcast 全量推送给房间内每个座位。
func (p *RoomActor) broadcast() {
	if p.opts.Publisher == nil || p.room == nil {
		return
	}
	for pid, view := range service.BuildViews(p.room, p.opts.TurnTimeout) {
		p.opts.Publisher.Publish(p.roomID, int(pid), view)
	}
}

func (p *RoomActor) reportStatus(ctx actor.Context) {
	parent := ctx.Parent()
	if parent == nil || p.room == nil {
		return
	}
	ctx.Send(parent, &roomStatus{Info: messages.RoomInfo{
		RoomId:  p.roomID,
		Players: p.room.PlayerCount(),
		Started: p.room.Started(),
		Turn:    p.room.Turn(),
	}})
}

func (p *RoomActor) startFlushLoop(ctx actor.Context) {
	if p.flushStop != nil {
		return
	}
	interval := p.dc.FlushEvery()
	if interval <= 0 {
		return
	}
	p.flushStop = make(chan struct{})
	self := ctx.Self()
	root := ctx.ActorSystem().Root

	go func(stop <-chan struct{}, every time.Duration) {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				root.Send(self, flushTick{})
			case <-stop:
				return
			}
		}
	}(p.flushStop, interval)
}

func (p *RoomActor) stopFlushLoop() {
	if p.flushStop == nil {
		return
	}
	close(p.flushStop)
	p.flushStop = nil
}
