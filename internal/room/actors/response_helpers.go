package actors

import (
	"errors"

	"IslandConquest/internal/room/app"
	"IslandConquest/internal/shared/actor/messages"
)

var (
	errNilRequest  = app.ErrInternal.WithCause(errors.New("nil request"))
	errNoHandler   = app.ErrInternal.WithCause(errors.New("no handler for request"))
	errRoomOffline = app.ErrRoomNotFound
)

func ok(payload any) *messages.RoomReply {
	return &messages.RoomReply{
		Result:  messages.BizResult{Ok: true},
		Payload: payload,
	}
}

func fail(err error) *messages.RoomReply {
	reason := app.ReasonOf(err)
	if reason == "" {
		reason = app.ReasonRoomInternal.Code
	}
	msg := app.MessageOf(err)
	if !app.IsBiz(err) && err != nil {
		msg = err.Error()
	}
	return &messages.RoomReply{
		Result: messages.BizResult{
			Ok:      false,
			Reason:  reason,
			Message: msg,
		},
	}
}
