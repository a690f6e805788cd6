package actor

import (
	"IslandConquest/internal/room/actors"
	"IslandConquest/internal/room/app"
	"IslandConquest/internal/shared/actor/messages"
	"IslandConquest/internal/shared/transport"
	"IslandConquest/modules/kit/errx"
	"context"
	"errors"
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"
)

const defaultAskTimeout = 3 * time.Second

type RuntimeError struct {
	Code    int
	Message string
	Cause   error
}

func (e *RuntimeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *RuntimeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Runtime actor 系统的对外门面：同步 ask，把房间应答还原成 error。
type Runtime struct {
	system  *protoactor.ActorSystem
	root    *protoactor.RootContext
	manager *protoactor.PID
	timeout time.Duration
}

func NewRuntime(opts actors.Options, askTimeout time.Duration) *Runtime {
	if askTimeout <= 0 {
		askTimeout = defaultAskTimeout
	}

	system := protoactor.NewActorSystem()
	root := system.Root
	managerProps := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewManagerActor(opts)
	})
	manager := root.Spawn(managerProps)

	return &Runtime{
		system:  system,
		root:    root,
		manager: manager,
		timeout: askTimeout,
	}
}

func (r *Runtime) Shutdown() {
	if r == nil {
		return
	}
	if r.root != nil && r.manager != nil {
		_ = r.root.StopFuture(r.manager).Wait()
	}
	if r.system != nil {
		r.system.Shutdown()
	}
}

// Seat 入座结果。
type Seat struct {
	RoomID   string
	PlayerID int
}

func (r *Runtime) CreateRoom(ctx context.Context, name string) (Seat, error) {
	res, err := r.ask(ctx, &messages.HRCreateRoom{Name: name})
	if err != nil {
		return Seat{}, err
	}
	return seatFrom(res)
}

func (r *Runtime) JoinRoom(ctx context.Context, roomID, name string) (Seat, error) {
	res, err := r.ask(ctx, &messages.HRJoinRoom{
		RoomBaseMessage: messages.RoomBaseMessage{RoomId: roomID},
		Name:            name,
	})
	if err != nil {
		return Seat{}, err
	}
	return seatFrom(res)
}

func (r *Runtime) StartGame(ctx context.Context, roomID string, playerID int) error {
	_, err := r.ask(ctx, &messages.HRStartGame{RoomBaseMessage: base(roomID, playerID)})
	return err
}

func (r *Runtime) MoveUnit(ctx context.Context, roomID string, playerID int, unitID uint64, row, col int) error {
	_, err := r.ask(ctx, &messages.HRMoveUnit{
		RoomBaseMessage: base(roomID, playerID),
		UnitId:          unitID,
		Row:             row,
		Col:             col,
	})
	return err
}

func (r *Runtime) ProduceUnit(ctx context.Context, roomID string, playerID int, row, col int, unitType string) (uint64, error) {
	res, err := r.ask(ctx, &messages.HRProduceUnit{
		RoomBaseMessage: base(roomID, playerID),
		Row:             row,
		Col:             col,
		UnitType:        unitType,
	})
	if err != nil {
		return 0, err
	}
	id, _ := res.(uint64)
	return id, nil
}

func (r *Runtime) EndTurn(ctx context.Context, roomID string, playerID int) (*messages.RHEndTurn, error) {
	res, err := r.ask(ctx, &messages.HREndTurn{RoomBaseMessage: base(roomID, playerID)})
	if err != nil {
		return nil, err
	}
	out, ok := res.(*messages.RHEndTurn)
	if !ok {
		return nil, badPayload()
	}
	return out, nil
}

// View 取某个座位的当前视角。
func (r *Runtime) View(ctx context.Context, roomID string, playerID int) (*messages.GameView, error) {
	res, err := r.ask(ctx, &messages.HRRoomView{RoomBaseMessage: base(roomID, playerID)})
	if err != nil {
		return nil, err
	}
	view, ok := res.(*messages.GameView)
	if !ok {
		return nil, badPayload()
	}
	return view, nil
}

func (r *Runtime) ListRooms(ctx context.Context) ([]messages.RoomInfo, error) {
	res, err := r.ask(ctx, &messages.HRListRooms{})
	if err != nil {
		return nil, err
	}
	list, ok := res.(*messages.RHRoomList)
	if !ok {
		return nil, badPayload()
	}
	return list.Rooms, nil
}

func (r *Runtime) CloseRoom(ctx context.Context, roomID string) error {
	_, err := r.ask(ctx, &messages.HRCloseRoom{RoomBaseMessage: base(roomID, 0)})
	return err
}

func base(roomID string, playerID int) messages.RoomBaseMessage {
	return messages.RoomBaseMessage{RoomId: roomID, PlayerId: playerID}
}

func seatFrom(res any) (Seat, error) {
	s, ok := res.(*messages.RHSeat)
	if !ok || s == nil {
		return Seat{}, badPayload()
	}
	return Seat{RoomID: s.RoomId, PlayerID: s.PlayerId}, nil
}

func badPayload() error {
	return &RuntimeError{Code: transport.SystemError, Message: "actor 返回类型非法"}
}

// ask 发请求并拆开 RoomReply：失败结果转成房间域错误，成功返回 payload。
func (r *Runtime) ask(ctx context.Context, msg any) (any, error) {
	res, err := r.request(r.manager, msg, r.timeoutFromContext(ctx))
	if err != nil {
		return nil, err
	}
	reply, ok := res.(*messages.RoomReply)
	if !ok || reply == nil {
		return nil, badPayload()
	}
	if !reply.Result.Ok {
		return nil, app.FromReason(reply.Result.Reason, reply.Result.Message)
	}
	return reply.Payload, nil
}

func (r *Runtime) request(pid *protoactor.PID, msg any, timeout time.Duration) (any, error) {
	if r == nil || r.root == nil {
		return nil, &RuntimeError{Code: transport.SystemError, Message: "actor runtime 未初始化"}
	}
	if pid == nil {
		return nil, &RuntimeError{Code: transport.SystemError, Message: "actor pid 为空"}
	}

	future := r.root.RequestFuture(pid, msg, timeout)
	res, err := future.Result()
	if err != nil {
		code := transport.SystemError
		if errors.Is(err, protoactor.ErrTimeout) {
			code = transport.UpstreamTimeout
		}
		return nil, &RuntimeError{
			Code:    code,
			Message: "actor 请求失败",
			Cause:   err,
		}
	}
	return res, nil
}

func (r *Runtime) timeoutFromContext(ctx context.Context) time.Duration {
	if r == nil || r.timeout <= 0 {
		return defaultAskTimeout
	}
	if ctx == nil {
		return r.timeout
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return r.timeout
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	if remain < r.timeout {
		return remain
	}
	return r.timeout
}

func CodeFromError(err error) int {
	if err == nil {
		return transport.OK
	}
	var re *RuntimeError
	if errors.As(err, &re) && re != nil && re.Code != 0 {
		return re.Code
	}
	var xe *errx.Error
	if errors.As(err, &xe) && xe.IsBiz() {
		return transport.InvalidParam
	}
	return transport.SystemError
}
