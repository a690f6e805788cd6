package actors

import (
	"IslandConquest/internal/shared/actor/messages"
	"reflect"

	"github.com/asynkron/protoactor-go/actor"
)

type Dispatcher struct {
	handlers map[reflect.Type]Handler
}

type Handler struct {
	fn      reflect.Value
	reqType reflect.Type
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[reflect.Type]Handler),
	}
	d.registerAll()
	return d
}

func (d *Dispatcher) registerAll() {
	register(d, RH.HandleJoinRoom)
	register(d, RH.HandleStartGame)
	register(d, RH.HandleMoveUnit)
	register(d, RH.HandleProduceUnit)
	register(d, RH.HandleEndTurn)
	register(d, RH.HandleRoomView)
}

func register[Req messages.RoomMessage](
	d *Dispatcher,
	fn func(ctx actor.Context, p *RoomActor, req Req),
) {
	reqType := reflect.TypeOf((*Req)(nil)).Elem()
	if reqType == nil {
		panic("dispatcher req type cannot be nil")
	}

	d.handlers[reqType] = Handler{
		fn:      reflect.ValueOf(fn),
		reqType: reqType,
	}
}

func (d *Dispatcher) Dispatch(ctx actor.Context, p *RoomActor, req messages.RoomMessage) {
	if req == nil {
		ctx.Respond(fail(errNilRequest))
		return
	}

	bodyType := reflect.TypeOf(req)
	handler, ok := d.handlers[bodyType]
	if !ok {
		ctx.Respond(fail(errNoHandler))
		return
	}

	handler.fn.Call([]reflect.Value{
		reflect.ValueOf(ctx),
		reflect.ValueOf(p),
		reflect.ValueOf(req),
	})
}
