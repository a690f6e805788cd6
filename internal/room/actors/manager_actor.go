package actors

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"IslandConquest/internal/room/app"
	"IslandConquest/internal/shared/actor/messages"
	"IslandConquest/internal/shared/logs"
	"IslandConquest/internal/shared/utils"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

const maxRoomIDAttempts = 64

var errRoomIDExhausted = app.ErrInternal.WithCause(errors.New("room id space exhausted"))

// ManagerActor 房间注册表：分配房号、创建/销毁房间 actor、转发请求。
type ManagerActor struct {
	opts   Options
	rooms  map[string]*actor.PID
	byPID  map[string]string // pid.Id -> room id
	status map[string]messages.RoomInfo
}

func NewManagerActor(opts Options) *ManagerActor {
	opts = opts.withDefaults()
	if opts.NewRoomID == nil {
		opts.NewRoomID = utils.RoomID
	}
	return &ManagerActor{
		opts:   opts,
		rooms:  make(map[string]*actor.PID),
		byPID:  make(map[string]string),
		status: make(map[string]messages.RoomInfo),
	}
}

func (m *ManagerActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *messages.HRCreateRoom:
		m.create(ctx, msg)
	case *messages.HRListRooms:
		ctx.Respond(ok(m.list()))
	case *messages.HRCloseRoom:
		m.close(ctx, msg)
	case *roomStatus:
		if _, alive := m.rooms[msg.Info.RoomId]; alive {
			m.status[msg.Info.RoomId] = msg.Info
		}
	case *actor.Terminated:
		m.forget(msg.Who)
	case messages.RoomMessage:
		if msg == nil {
			ctx.Respond(fail(errNilRequest))
			return
		}
		pid, found := m.rooms[strings.ToUpper(msg.RoomID())]
		if !found {
			ctx.Respond(fail(app.ErrRoomNotFound))
			return
		}
		ctx.Forward(pid)
	}
}

// create 分配房号并生成房间，随后把创建者作为第一个玩家送进房间；应答由房间直接回给调用方。
func (m *ManagerActor) create(ctx actor.Context, req *messages.HRCreateRoom) {
	id, err := m.nextRoomID()
	if err != nil {
		ctx.Respond(fail(err))
		return
	}
	pid := m.spawn(ctx, id)
	join := &messages.HRJoinRoom{
		RoomBaseMessage: messages.RoomBaseMessage{RoomId: id},
		Name:            req.Name,
	}
	ctx.RequestWithCustomSender(pid, join, ctx.Sender())
}

func (m *ManagerActor) nextRoomID() (string, error) {
	for i := 0; i < maxRoomIDAttempts; i++ {
		id := strings.ToUpper(m.opts.NewRoomID())
		if _, taken := m.rooms[id]; !taken {
			return id, nil
		}
	}
	return "", errRoomIDExhausted
}

func (m *ManagerActor) spawn(ctx actor.Context, roomID string) *actor.PID {
	opts := m.opts
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewRoomActor(roomID, opts)
	})
	pid := ctx.Spawn(props)
	m.rooms[roomID] = pid
	m.byPID[pid.Id] = roomID
	m.status[roomID] = messages.RoomInfo{RoomId: roomID, Turn: 1}
	return pid
}

func (m *ManagerActor) close(ctx actor.Context, req *messages.HRCloseRoom) {
	id := strings.ToUpper(req.RoomID())
	pid, found := m.rooms[id]
	if !found {
		ctx.Respond(fail(app.ErrRoomNotFound))
		return
	}
	m.forget(pid)
	ctx.Stop(pid)
	logs.Info("room closed", zap.String("room_id", id))
	ctx.Respond(ok(nil))
}

// HandleFailure 房间 actor panic 时直接停掉，不用空房间重建；Stopping 会写出最后一份归档。
func (m *ManagerActor) HandleFailure(_ *actor.ActorSystem, supervisor actor.Supervisor, child *actor.PID, _ *actor.RestartStatistics, reason, message any) {
	logs.Error("room actor failed, stopping",
		zap.String("room_id", m.byPID[child.Id]),
		zap.Any("reason", reason),
		zap.String("message", fmt.Sprintf("%T", message)))
	supervisor.StopChildren(child)
}

func (m *ManagerActor) forget(pid *actor.PID) {
	if pid == nil {
		return
	}
	id, found := m.byPID[pid.Id]
	if !found {
		return
	}
	delete(m.byPID, pid.Id)
	delete(m.rooms, id)
	delete(m.status, id)
}

func (m *ManagerActor) list() *messages.RHRoomList {
	out := make([]messages.RoomInfo, 0, len(m.status))
	for _, info := range m.status {
		out = append(out, info)
	}
	slices.SortFunc(out, func(a, b messages.RoomInfo) int {
		return strings.Compare(a.RoomId, b.RoomId)
	})
	return &messages.RHRoomList{Rooms: out}
}
