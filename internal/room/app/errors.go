package app

import (
	"errors"

	"IslandConquest/modules/kit/errx"
)

const (
	CodeRoomNotFound   errx.Code = "ROOM_NOT_FOUND"
	CodeRoomFull       errx.Code = "ROOM_FULL"
	CodeRoomStarted    errx.Code = "ROOM_STARTED"
	CodeNotStarted     errx.Code = "NOT_STARTED"
	CodeNotInRoom      errx.Code = "NOT_IN_ROOM"
	CodeNotHost        errx.Code = "NOT_HOST"
	CodeInvalidCommand errx.Code = "INVALID_COMMAND"
	CodeMapGeneration  errx.Code = "MAP_GENERATION"
)

var (
	ErrRoomNotFound = errx.NewBiz(CodeRoomNotFound, ReasonRoomNotFound.Message).WithReason(ReasonRoomNotFound)
	ErrRoomFull     = errx.NewBiz(CodeRoomFull, ReasonRoomFull.Message).WithReason(ReasonRoomFull)
	ErrRoomStarted  = errx.NewBiz(CodeRoomStarted, ReasonRoomStarted.Message).WithReason(ReasonRoomStarted)
	ErrNotStarted   = errx.NewBiz(CodeNotStarted, ReasonNotStarted.Message).WithReason(ReasonNotStarted)
	ErrNotInRoom    = errx.NewBiz(CodeNotInRoom, ReasonNotInRoom.Message).WithReason(ReasonNotInRoom)
	ErrNotHost      = errx.NewBiz(CodeNotHost, ReasonNotHost.Message).WithReason(ReasonNotHost)

	// ErrInvalidCommand 只用于 errors.Is 判断，具体原因见 Rejected。
	ErrInvalidCommand = errx.NewBiz(CodeInvalidCommand, "非法指令")

	ErrMapGeneration = errx.NewSys(CodeMapGeneration, ReasonMapGeneration.Message).WithReason(ReasonMapGeneration)
	ErrInternal      = errx.ErrInternal.WithReason(ReasonRoomInternal)
)

// Rejected 构造带具体原因的指令拒绝错误。
func Rejected(reason Reason) *errx.Error {
	return errx.NewBiz(CodeInvalidCommand, reason.Message).WithReason(reason)
}

// FromReason 把跨 actor 传回来的 reason code 还原成错误。
func FromReason(code, message string) error {
	switch code {
	case "":
		return nil
	case ReasonRoomNotFound.Code:
		return ErrRoomNotFound
	case ReasonRoomFull.Code:
		return ErrRoomFull
	case ReasonRoomStarted.Code:
		return ErrRoomStarted
	case ReasonNotStarted.Code:
		return ErrNotStarted
	case ReasonNotInRoom.Code:
		return ErrNotInRoom
	case ReasonNotHost.Code:
		return ErrNotHost
	case ReasonMapGeneration.Code:
		return ErrMapGeneration.WithCause(errors.New(message))
	}
	if r, ok := LookupReason(code); ok && r != ReasonRoomInternal {
		return Rejected(r)
	}
	if message == "" {
		message = code
	}
	return ErrInternal.WithCause(errors.New(message))
}

// ReasonOf 取错误上挂的 reason code；没有则返回空串。
func ReasonOf(err error) string {
	var rp interface{ Reason() string }
	if !errors.As(err, &rp) {
		return ""
	}
	return rp.Reason()
}

// MessageOf 取错误的对外文案。
func MessageOf(err error) string {
	var mp interface{ Msg() string }
	if !errors.As(err, &mp) {
		return ""
	}
	return mp.Msg()
}

// IsBiz 判断是否业务拒绝。
func IsBiz(err error) bool {
	var e *errx.Error
	if !errors.As(err, &e) {
		return false
	}
	return e.IsBiz()
}
